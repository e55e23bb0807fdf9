// Package placement defines the core data model for the renewal pipeline:
// placement records ingested from CRM CSV exports, their priority score
// breakdowns, and the email/calendar records used for connector insights.
package placement

// Impact classifies how a score factor affects the renewal outlook.
type Impact string

const (
	// ImpactPositive marks a factor working in the broker's favour.
	ImpactPositive Impact = "positive"
	// ImpactNeutral marks a factor with no strong signal either way.
	ImpactNeutral Impact = "neutral"
	// ImpactNegative marks a factor that needs attention.
	ImpactNegative Impact = "negative"
)

// Sentiment is the pre-labelled tone of an email record. Classification
// happens upstream (the connector pipeline); this package only carries the
// label through.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ScoreFactor is one component of a placement's priority score.
type ScoreFactor struct {
	Name        string `json:"name" yaml:"name"`
	Score       int    `json:"score" yaml:"score"`
	MaxScore    int    `json:"max_score" yaml:"max_score"`
	Description string `json:"description" yaml:"description"`
	Impact      Impact `json:"impact" yaml:"impact"`
}

// ScoreBreakdown is the full priority score for a placement. Total is always
// the arithmetic sum of the factor scores; rounding happens per factor, never
// on the total.
type ScoreBreakdown struct {
	Total   int           `json:"total" yaml:"total"`
	Factors []ScoreFactor `json:"factors" yaml:"factors"`
}

// CarrierVariant captures one carrier/premium combination seen across
// duplicate rows for the same placement.
type CarrierVariant struct {
	CarrierGroup     string  `json:"carrier_group" yaml:"carrier_group"`
	TotalPremium     float64 `json:"total_premium" yaml:"total_premium"`
	CommissionAmount float64 `json:"commission_amount" yaml:"commission_amount"`
	Limit            float64 `json:"limit" yaml:"limit"`
}

// Record is one insurance renewal candidate parsed from a CRM CSV export.
//
// Date fields are kept as the raw strings from the export (mixed locale
// formats, sometimes "-"); only the expiry date is interpreted, into
// DaysUntilExpiry. Records are built once during ingestion, annotated during
// deduplication, and immutable afterwards. They are never persisted.
type Record struct {
	Client                             string `json:"client" yaml:"client"`
	PlacementClientLocalID             string `json:"placement_client_local_id" yaml:"placement_client_local_id"`
	PlacementName                      string `json:"placement_name" yaml:"placement_name"`
	Coverage                           string `json:"coverage" yaml:"coverage"`
	ProductLine                        string `json:"product_line" yaml:"product_line"`
	CarrierGroup                       string `json:"carrier_group" yaml:"carrier_group"`
	PlacementCreatedDateTime           string `json:"placement_created_date_time" yaml:"placement_created_date_time"`
	PlacementCreatedBy                 string `json:"placement_created_by" yaml:"placement_created_by"`
	PlacementCreatedByID               string `json:"placement_created_by_id" yaml:"placement_created_by_id"`
	ResponseReceivedDate               string `json:"response_received_date" yaml:"response_received_date"`
	PlacementSpecialist                string `json:"placement_specialist" yaml:"placement_specialist"`
	PlacementRenewingStatus            string `json:"placement_renewing_status" yaml:"placement_renewing_status"`
	PlacementStatus                    string `json:"placement_status" yaml:"placement_status"`
	DeclinationReason                  string `json:"declination_reason" yaml:"declination_reason"`
	PlacementID                        string `json:"placement_id" yaml:"placement_id"`
	PlacementEffectiveDate             string `json:"placement_effective_date" yaml:"placement_effective_date"`
	PlacementExpiryDate                string `json:"placement_expiry_date" yaml:"placement_expiry_date"`
	IncumbentIndicator                 string `json:"incumbent_indicator" yaml:"incumbent_indicator"`
	ParticipationStatusCode            string `json:"participation_status_code" yaml:"participation_status_code"`
	PlacementClientSegmentCode         string `json:"placement_client_segment_code" yaml:"placement_client_segment_code"`
	PlacementRenewingStatusCode        string `json:"placement_renewing_status_code" yaml:"placement_renewing_status_code"`
	Limit                              float64 `json:"limit" yaml:"limit"`
	CoveragePremiumAmount              float64 `json:"coverage_premium_amount" yaml:"coverage_premium_amount"`
	TriaPremium                        float64 `json:"tria_premium" yaml:"tria_premium"`
	TotalPremium                       float64 `json:"total_premium" yaml:"total_premium"`
	CommissionPercent                  float64 `json:"commission_percent" yaml:"commission_percent"`
	CommissionAmount                   float64 `json:"commission_amount" yaml:"commission_amount"`
	ParticipationPercentage            float64 `json:"participation_percentage" yaml:"participation_percentage"`
	CarrierGroupLocalID                string `json:"carrier_group_local_id" yaml:"carrier_group_local_id"`
	ProductionCode                     string `json:"production_code" yaml:"production_code"`
	SubmissionSentDate                 string `json:"submission_sent_date" yaml:"submission_sent_date"`
	ProgramProductLocalCodeText        string `json:"program_product_local_code_text" yaml:"program_product_local_code_text"`
	ApproachNonAdmittedMarketIndicator string `json:"approach_non_admitted_market_indicator" yaml:"approach_non_admitted_market_indicator"`
	CarrierIntegration                 string `json:"carrier_integration" yaml:"carrier_integration"`

	// Computed during ingestion.
	DaysUntilExpiry int             `json:"days_until_expiry" yaml:"days_until_expiry"`
	PriorityScore   int             `json:"priority_score" yaml:"priority_score"`
	ScoreBreakdown  *ScoreBreakdown `json:"score_breakdown,omitempty" yaml:"score_breakdown,omitempty"`

	// Added during deduplication when the same placement ID appears on
	// multiple rows.
	CarrierVariants   []CarrierVariant `json:"carrier_variants,omitempty" yaml:"carrier_variants,omitempty"`
	DuplicateCount    int              `json:"duplicate_count,omitempty" yaml:"duplicate_count,omitempty"`
	HasMultipleQuotes bool             `json:"has_multiple_quotes,omitempty" yaml:"has_multiple_quotes,omitempty"`
}

// Email is one pre-labelled email record linked to a placement.
type Email struct {
	EmailID     string    `json:"email_id" yaml:"email_id"`
	Subject     string    `json:"subject" yaml:"subject"`
	ClientName  string    `json:"client_name" yaml:"client_name"`
	ReceivedAt  string    `json:"received_at" yaml:"received_at"`
	PolicyID    string    `json:"policy_id" yaml:"policy_id"`
	Summary     string    `json:"summary" yaml:"summary"`
	Sentiment   Sentiment `json:"sentiment" yaml:"sentiment"`
	ThreadCount int       `json:"thread_count" yaml:"thread_count"`
	SourceLink  string    `json:"source_link" yaml:"source_link"`
	SenderEmail string    `json:"sender_email,omitempty" yaml:"sender_email,omitempty"`
}

// CalendarEvent is one meeting record linked to a placement. MeetingDate is
// an ISO-parseable string supplied by the calendar connector.
type CalendarEvent struct {
	EventID      string   `json:"event_id" yaml:"event_id"`
	Title        string   `json:"title" yaml:"title"`
	ClientName   string   `json:"client_name" yaml:"client_name"`
	MeetingDate  string   `json:"meeting_date" yaml:"meeting_date"`
	PolicyID     string   `json:"policy_id" yaml:"policy_id"`
	MeetingNotes string   `json:"meeting_notes" yaml:"meeting_notes"`
	Participants []string `json:"participants" yaml:"participants"`
	SourceLink   string   `json:"source_link" yaml:"source_link"`
}
