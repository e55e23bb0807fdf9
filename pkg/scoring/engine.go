// Package scoring computes the deterministic priority score for a placement.
//
// The score is a 0-100 composite of six independently computed factors. Each
// factor carries a human-readable description embedding the raw value it was
// computed from, so the breakdown can be shown to a broker as-is. Rounding
// happens per factor; the total is the plain sum of the rounded factor
// scores.
package scoring

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/SafeGiantJacket/renewaldesk/pkg/placement"
)

// Factor score ceilings. The six maximums sum to 100.
const (
	MaxPremiumScore    = 25
	MaxTimeScore       = 25
	MaxIncumbentScore  = 15
	MaxCarrierScore    = 15
	MaxSegmentScore    = 10
	MaxCommissionScore = 10
)

// DaysUnknown is the sentinel for a missing or unparseable expiry date,
// meaning "far future / unknown". Downstream scoring depends on this exact
// value, so it must be preserved wherever expiry dates are interpreted.
const DaysUnknown = 999

// UrgencyLevel bands a placement by how soon it needs broker attention.
type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyLow      UrgencyLevel = "low"
)

// premiumPrinter renders premium amounts with locale grouping for factor
// descriptions ("$67,311.79 total premium").
var premiumPrinter = message.NewPrinter(language.English)

// Breakdown computes the full score breakdown for a placement. It is a pure
// function: no side effects, deterministic for a given record.
func Breakdown(rec *placement.Record) placement.ScoreBreakdown {
	factors := make([]placement.ScoreFactor, 0, 6)

	// Premium at Risk: linear in total premium, capped at $100k.
	premiumScore := math.Min(MaxPremiumScore, rec.TotalPremium/100000*MaxPremiumScore)
	premiumImpact := placement.ImpactNeutral
	if premiumScore > 15 {
		premiumImpact = placement.ImpactPositive
	}
	factors = append(factors, placement.ScoreFactor{
		Name:        "Premium at Risk",
		Score:       int(math.Round(premiumScore)),
		MaxScore:    MaxPremiumScore,
		Description: premiumPrinter.Sprintf("$%v total premium", number.Decimal(rec.TotalPremium)),
		Impact:      premiumImpact,
	})

	// Time to Expiry: stepped thresholds. Score magnitude encodes urgency,
	// not desirability, so a close expiry scores high with negative impact.
	daysUntil := rec.DaysUntilExpiry
	if daysUntil == 0 && rec.PlacementExpiryDate == "" {
		daysUntil = DaysUnknown
	}
	var timeScore int
	switch {
	case daysUntil <= 30:
		timeScore = 25
	case daysUntil <= 60:
		timeScore = 20
	case daysUntil <= 90:
		timeScore = 15
	case daysUntil <= 180:
		timeScore = 10
	default:
		timeScore = 5
	}
	timeImpact := placement.ImpactPositive
	if daysUntil <= 30 {
		timeImpact = placement.ImpactNegative
	} else if daysUntil <= 90 {
		timeImpact = placement.ImpactNeutral
	}
	factors = append(factors, placement.ScoreFactor{
		Name:        "Time to Expiry",
		Score:       timeScore,
		MaxScore:    MaxTimeScore,
		Description: strconv.Itoa(daysUntil) + " days until expiry",
		Impact:      timeImpact,
	})

	// Incumbent Status: renewing an existing relationship beats new business.
	incumbent := rec.IncumbentIndicator == "Y"
	incumbentScore := 5
	incumbentDesc := "New business"
	incumbentImpact := placement.ImpactNeutral
	if incumbent {
		incumbentScore = 15
		incumbentDesc = "Renewal - existing relationship"
		incumbentImpact = placement.ImpactPositive
	}
	factors = append(factors, placement.ScoreFactor{
		Name:        "Incumbent Status",
		Score:       incumbentScore,
		MaxScore:    MaxIncumbentScore,
		Description: incumbentDesc,
		Impact:      incumbentImpact,
	})

	// Carrier Responsiveness: keyed off the placement status.
	carrierScore := 10
	switch rec.PlacementStatus {
	case "Quote":
		carrierScore = 15
	case "Submitted":
		carrierScore = 10
	case "Declined":
		carrierScore = 0
	}
	carrierImpact := placement.ImpactNeutral
	if carrierScore >= 15 {
		carrierImpact = placement.ImpactPositive
	} else if carrierScore == 0 {
		carrierImpact = placement.ImpactNegative
	}
	factors = append(factors, placement.ScoreFactor{
		Name:        "Carrier Responsiveness",
		Score:       carrierScore,
		MaxScore:    MaxCarrierScore,
		Description: "Status: " + rec.PlacementStatus,
		Impact:      carrierImpact,
	})

	// Client Segment: substring match on the raw segment code.
	segmentScore := 5
	if strings.Contains(rec.PlacementClientSegmentCode, "RISK_MGMT") {
		segmentScore = 10
	} else if strings.Contains(rec.PlacementClientSegmentCode, "MIDDLE_MKT") {
		segmentScore = 7
	}
	segmentImpact := placement.ImpactNeutral
	if segmentScore >= 8 {
		segmentImpact = placement.ImpactPositive
	}
	factors = append(factors, placement.ScoreFactor{
		Name:        "Client Segment",
		Score:       segmentScore,
		MaxScore:    MaxSegmentScore,
		Description: formatSegmentCode(rec.PlacementClientSegmentCode),
		Impact:      segmentImpact,
	})

	// Commission Potential: linear in commission percent, capped at 20%.
	commissionScore := math.Min(MaxCommissionScore, rec.CommissionPercent/20*MaxCommissionScore)
	commissionImpact := placement.ImpactNeutral
	if commissionScore >= 7 {
		commissionImpact = placement.ImpactPositive
	}
	factors = append(factors, placement.ScoreFactor{
		Name:        "Commission Potential",
		Score:       int(math.Round(commissionScore)),
		MaxScore:    MaxCommissionScore,
		Description: strconv.FormatFloat(rec.CommissionPercent, 'f', -1, 64) + "% commission rate",
		Impact:      commissionImpact,
	})

	total := 0
	for _, f := range factors {
		total += f.Score
	}

	return placement.ScoreBreakdown{Total: total, Factors: factors}
}

// Apply computes and attaches the score breakdown to a record.
func Apply(rec *placement.Record) {
	breakdown := Breakdown(rec)
	rec.ScoreBreakdown = &breakdown
	rec.PriorityScore = breakdown.Total
}

// Urgency bands a placement by days until expiry.
func Urgency(daysUntilExpiry int) UrgencyLevel {
	switch {
	case daysUntilExpiry >= DaysUnknown:
		return UrgencyLow
	case daysUntilExpiry <= 7:
		return UrgencyCritical
	case daysUntilExpiry <= 30:
		return UrgencyHigh
	case daysUntilExpiry <= 90:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// formatSegmentCode turns a raw segment code like CLIENT_SEGMENT_RISK_MGMT
// into a display string like "Risk Mgmt".
func formatSegmentCode(code string) string {
	if code == "" {
		return "Unknown"
	}
	s := strings.Replace(code, "CLIENT_SEGMENT_", "", 1)
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(strings.ToLower(s))
}
