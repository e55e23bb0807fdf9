package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/SafeGiantJacket/renewaldesk/pkg/ingest/csvline"
	"github.com/SafeGiantJacket/renewaldesk/pkg/placement"
	"github.com/SafeGiantJacket/renewaldesk/pkg/scoring"
)

// buildRecord maps one header/value row pair onto a typed placement record.
// All date fields stay as the raw export strings; monetary and percentage
// fields get parseFloat-style coercion with a 0 default.
func buildRecord(m *csvline.FieldMapper, row []string) *placement.Record {
	get := func(name string) string { return m.Value(name, row) }

	rec := &placement.Record{
		Client:                             get("Client"),
		PlacementClientLocalID:             get("PlacementClientLocalID"),
		PlacementName:                      get("PlacementName"),
		Coverage:                           get("Coverage"),
		ProductLine:                        get("ProductLine"),
		CarrierGroup:                       get("CarrierGroup"),
		PlacementCreatedDateTime:           get("PlacementCreatedDate/Time"),
		PlacementCreatedBy:                 get("PlacementCreatedBy"),
		PlacementCreatedByID:               get("PlacementCreatedBy(ID)"),
		ResponseReceivedDate:               get("ResponseReceivedDate"),
		PlacementSpecialist:                get("PlacementSpecialist"),
		PlacementRenewingStatus:            get("PlacementRenewingStatus"),
		PlacementStatus:                    get("PlacementStatus"),
		DeclinationReason:                  get("DeclinationReason"),
		PlacementID:                        get("PlacementId"),
		PlacementEffectiveDate:             get("PlacementEffectiveDate"),
		PlacementExpiryDate:                get("PlacementExpiryDate"),
		IncumbentIndicator:                 get("IncumbentIndicator"),
		ParticipationStatusCode:            get("ParticipationStatusCode"),
		PlacementClientSegmentCode:         get("PlacementClientSegmentCode"),
		PlacementRenewingStatusCode:        get("PlacementRenewingStatusCode"),
		Limit:                              parseFloat(get("Limit")),
		CoveragePremiumAmount:              parseFloat(get("CoveragePremiumAmount")),
		TriaPremium:                        parseFloat(get("TriaPremium")),
		TotalPremium:                       parseFloat(get("TotalPremium")),
		CommissionPercent:                  parseFloat(get("Comission%")),
		CommissionAmount:                   parseFloat(get("ComissionAmount")),
		CarrierGroupLocalID:                get("CarrierGroupLocalID"),
		ProductionCode:                     get("ProductionCode"),
		SubmissionSentDate:                 get("SubmissionSentDate"),
		ProgramProductLocalCodeText:        get("ProgramProductLocalCodeText"),
		ApproachNonAdmittedMarketIndicator: get("ApproachNonAdmittedMarketIndicator"),
		CarrierIntegration:                 get("CarrierIntegration"),
	}

	// Participation defaults to full when missing or zero, matching the
	// export convention of leaving the column blank for sole placements.
	rec.ParticipationPercentage = parseFloat(get("ParticipationPercentage"))
	if rec.ParticipationPercentage == 0 {
		rec.ParticipationPercentage = 100
	}

	return rec
}

// parseFloat coerces a raw CSV field to a float. Like the JS parseFloat the
// CRM tooling grew up with, it accepts a numeric prefix and ignores trailing
// text ("100 USD" parses as 100); anything else yields 0.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	// Longest parseable numeric prefix.
	for i := len(s) - 1; i > 0; i-- {
		if v, err := strconv.ParseFloat(s[:i], 64); err == nil {
			return v
		}
	}
	return 0
}

// DaysUntilExpiry interprets an expiry date in DD/MM/YY or DD/MM/YYYY form
// and returns the number of days from now until that date, rounded up.
// Two-digit years are taken as 20xx. Missing, "-", or non three-part inputs
// return the scoring.DaysUnknown sentinel.
func DaysUntilExpiry(expiry string, now time.Time) int {
	if expiry == "" || expiry == "-" {
		return scoring.DaysUnknown
	}

	parts := strings.Split(expiry, "/")
	if len(parts) != 3 {
		return scoring.DaysUnknown
	}

	day, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])
	if year < 100 {
		year += 2000
	}

	expiryDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	diff := expiryDate.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}
