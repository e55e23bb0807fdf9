// Package insights aggregates email and calendar connector signals into a
// secondary score for a placement. The secondary score enriches the CRM
// priority score, it never replaces it.
//
// Every function here is pure: inputs are never mutated and every call
// recomputes from scratch. Sentiment labels arrive pre-classified from the
// connector pipeline; this package only counts them.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/SafeGiantJacket/renewaldesk/pkg/placement"
)

// DaysUnknown marks an absent or unparseable date distance, mirroring the
// expiry sentinel in scoring.
const DaysUnknown = 999

// Engagement bands mean email thread depth.
type Engagement string

const (
	EngagementHigh   Engagement = "high"
	EngagementMedium Engagement = "medium"
	EngagementLow    Engagement = "low"
)

// MeetingImportance bands the proximity of the next meeting.
type MeetingImportance string

const (
	ImportanceCritical MeetingImportance = "critical"
	ImportanceHigh     MeetingImportance = "high"
	ImportanceMedium   MeetingImportance = "medium"
	ImportanceLow      MeetingImportance = "low"
)

// OverallSentiment extends the per-email tri-state with dominance grades.
type OverallSentiment string

const (
	OverallVeryPositive OverallSentiment = "very_positive"
	OverallPositive     OverallSentiment = "positive"
	OverallNeutral      OverallSentiment = "neutral"
	OverallNegative     OverallSentiment = "negative"
	OverallVeryNegative OverallSentiment = "very_negative"
)

// EmailAnalysis is the aggregated email signal for a placement.
type EmailAnalysis struct {
	EmailScore      float64             `json:"email_score" yaml:"email_score"`
	Sentiment       placement.Sentiment `json:"sentiment" yaml:"sentiment"`
	EngagementLevel Engagement          `json:"engagement_level" yaml:"engagement_level"`
	UrgencyBoost    int                 `json:"urgency_boost" yaml:"urgency_boost"`
	KeyInsights     []string            `json:"key_insights" yaml:"key_insights"`
}

// CalendarAnalysis is the aggregated calendar signal for a placement.
type CalendarAnalysis struct {
	CalendarScore       float64           `json:"calendar_score" yaml:"calendar_score"`
	DaysToNextMeeting   int               `json:"days_to_next_meeting" yaml:"days_to_next_meeting"`
	MeetingImportance   MeetingImportance `json:"meeting_importance" yaml:"meeting_importance"`
	AttendanceIndicator int               `json:"attendance_indicator" yaml:"attendance_indicator"`
	UrgencyBoost        int               `json:"urgency_boost" yaml:"urgency_boost"`
	KeyInsights         []string          `json:"key_insights" yaml:"key_insights"`
}

// ConnectorInsights combines both signals for a placement.
type ConnectorInsights struct {
	CombinedScore      int               `json:"combined_score" yaml:"combined_score"`
	EmailAnalysis      *EmailAnalysis    `json:"email_analysis,omitempty" yaml:"email_analysis,omitempty"`
	CalendarAnalysis   *CalendarAnalysis `json:"calendar_analysis,omitempty" yaml:"calendar_analysis,omitempty"`
	OverallSentiment   OverallSentiment  `json:"overall_sentiment" yaml:"overall_sentiment"`
	RiskFactors        []string          `json:"risk_factors" yaml:"risk_factors"`
	RecommendedActions []string          `json:"recommended_actions" yaml:"recommended_actions"`
	NextMeetingDate    string            `json:"next_meeting_date,omitempty" yaml:"next_meeting_date,omitempty"`
	CommunicationGap   int               `json:"communication_gap" yaml:"communication_gap"`
}

// AnalyzeEmails aggregates pre-labelled email records into an email signal.
// The dominant sentiment wins only when its net count clears a threshold of
// max(1, 20% of the email count).
func AnalyzeEmails(emails []placement.Email) EmailAnalysis {
	if len(emails) == 0 {
		return EmailAnalysis{
			Sentiment:       placement.SentimentNeutral,
			EngagementLevel: EngagementLow,
			KeyInsights:     []string{"No email history found"},
		}
	}

	var positive, neutral, negative int
	threadSum := 0
	for _, e := range emails {
		switch e.Sentiment {
		case placement.SentimentPositive:
			positive++
		case placement.SentimentNegative:
			negative++
		default:
			neutral++
		}
		threadSum += e.ThreadCount
	}

	net := float64(positive - negative)
	threshold := math.Max(1, float64(len(emails))*0.2)

	sentiment := placement.SentimentNeutral
	if net > threshold {
		sentiment = placement.SentimentPositive
	} else if net < -threshold {
		sentiment = placement.SentimentNegative
	}

	avgThreads := float64(threadSum) / float64(len(emails))
	engagement := EngagementLow
	if avgThreads >= 5 {
		engagement = EngagementHigh
	} else if avgThreads >= 2 {
		engagement = EngagementMedium
	}

	sentimentBoost := net / float64(len(emails)) * 30
	engagementBoost := 0.0
	switch engagement {
	case EngagementHigh:
		engagementBoost = 15
	case EngagementMedium:
		engagementBoost = 5
	}

	// Negative sentiment raises renewal urgency; positive sentiment is good
	// news but not urgent.
	urgencyBoost := 0
	if sentiment == placement.SentimentNegative {
		urgencyBoost = 30
	}

	insights := make([]string, 0, 8)
	if negative > 0 {
		insights = append(insights, fmt.Sprintf("%d negative email(s) - requires immediate attention", negative))
	}
	if positive > 0 {
		insights = append(insights, fmt.Sprintf("%d positive email(s) - good engagement", positive))
	}
	if neutral > 0 {
		insights = append(insights, fmt.Sprintf("%d neutral email(s)", neutral))
	}
	if negative > positive && negative > 0 {
		insights = append(insights, "Negative sentiment dominates - client concerns present")
	}
	if positive > negative && positive > 0 {
		insights = append(insights, "Positive sentiment trend - favorable for renewal")
	}
	if negative > 0 && positive > 0 {
		insights = append(insights, "Mixed sentiment - varied client responses requiring investigation")
	}
	if engagement == EngagementHigh {
		insights = append(insights, "High engagement - frequent communication")
	}

	return EmailAnalysis{
		EmailScore:      clamp(50+sentimentBoost+engagementBoost, 0, 100),
		Sentiment:       sentiment,
		EngagementLevel: engagement,
		UrgencyBoost:    urgencyBoost,
		KeyInsights:     insights,
	}
}

// AnalyzeCalendar aggregates meeting records into a calendar signal keyed on
// proximity of the soonest meeting.
func AnalyzeCalendar(events []placement.CalendarEvent, now time.Time) CalendarAnalysis {
	if len(events) == 0 {
		return CalendarAnalysis{
			DaysToNextMeeting: DaysUnknown,
			MeetingImportance: ImportanceLow,
			KeyInsights:       []string{"No scheduled meetings"},
		}
	}

	sorted := make([]placement.CalendarEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, iok := parseWhen(sorted[i].MeetingDate)
		tj, jok := parseWhen(sorted[j].MeetingDate)
		if iok != jok {
			return iok // unparseable dates sort last
		}
		return ti.Before(tj)
	})
	next := sorted[0]

	daysToNext := DaysUnknown
	if meetingTime, ok := parseWhen(next.MeetingDate); ok {
		daysToNext = int(math.Ceil(meetingTime.Sub(now).Hours() / 24))
	}

	importance := ImportanceLow
	switch {
	case daysToNext <= 7:
		importance = ImportanceCritical
	case daysToNext <= 14:
		importance = ImportanceHigh
	case daysToNext <= 30:
		importance = ImportanceMedium
	}

	participantSum := 0
	for _, e := range events {
		participantSum += len(e.Participants)
	}
	avgParticipants := float64(participantSum) / float64(len(events))
	attendance := math.Min(100, avgParticipants*20)

	baseScore := 50.0
	if daysToNext <= 7 {
		baseScore += 30
	} else if daysToNext <= 30 {
		baseScore += 15
	}

	urgencyBoost := 0
	if daysToNext <= 7 {
		urgencyBoost = 15
	} else if daysToNext <= 14 {
		urgencyBoost = 10
	}

	insights := make([]string, 0, 3)
	if daysToNext <= 7 {
		insights = append(insights, fmt.Sprintf("Urgent meeting scheduled in %d day(s)", daysToNext))
	}
	if len(events) > 3 {
		insights = append(insights, "Frequent client interaction pattern")
	}
	if strings.Contains(strings.ToLower(next.MeetingNotes), "renewal") {
		insights = append(insights, "Renewal discussion scheduled")
	}

	if daysToNext < 0 {
		daysToNext = 0
	}

	return CalendarAnalysis{
		CalendarScore:       clamp(baseScore+float64(urgencyBoost), 0, 100),
		DaysToNextMeeting:   daysToNext,
		MeetingImportance:   importance,
		AttendanceIndicator: int(math.Round(attendance)),
		UrgencyBoost:        urgencyBoost,
		KeyInsights:         insights,
	}
}

// Generate combines the email and calendar signals for a placement. When a
// meeting is within 7 days the calendar signal carries 60% of the combined
// score; otherwise the signals weigh equally. A single present signal passes
// through unchanged; with neither signal the combined score is 0.
func Generate(emails []placement.Email, events []placement.CalendarEvent, now time.Time) ConnectorInsights {
	var emailAnalysis *EmailAnalysis
	var calendarAnalysis *CalendarAnalysis

	if len(emails) > 0 {
		ea := AnalyzeEmails(emails)
		emailAnalysis = &ea
	}
	if len(events) > 0 {
		ca := AnalyzeCalendar(events, now)
		calendarAnalysis = &ca
	}

	combined := 0.0
	switch {
	case emailAnalysis != nil && calendarAnalysis != nil:
		weight := 0.5
		if calendarAnalysis.DaysToNextMeeting <= 7 {
			weight = 0.6
		}
		combined = emailAnalysis.EmailScore*(1-weight) + calendarAnalysis.CalendarScore*weight
	case emailAnalysis != nil:
		combined = emailAnalysis.EmailScore
	case calendarAnalysis != nil:
		combined = calendarAnalysis.CalendarScore
	}

	var positive, negative int
	for _, e := range emails {
		switch e.Sentiment {
		case placement.SentimentPositive:
			positive++
		case placement.SentimentNegative:
			negative++
		}
	}

	overall := OverallNeutral
	if emailAnalysis != nil {
		switch emailAnalysis.Sentiment {
		case placement.SentimentPositive:
			overall = OverallPositive
			if float64(positive) > float64(negative)*1.5 {
				overall = OverallVeryPositive
			}
		case placement.SentimentNegative:
			overall = OverallNegative
			if float64(negative) > float64(positive)*1.5 {
				overall = OverallVeryNegative
			}
		}
	}

	riskFactors := make([]string, 0, 4)
	if emailAnalysis != nil && emailAnalysis.Sentiment == placement.SentimentNegative {
		riskFactors = append(riskFactors, "Negative communication trend")
	}
	if calendarAnalysis != nil && calendarAnalysis.DaysToNextMeeting == DaysUnknown {
		riskFactors = append(riskFactors, "No scheduled communication")
	}
	if len(emails) == 0 && len(events) == 0 {
		riskFactors = append(riskFactors, "No recent email or calendar data")
	}
	if negative > 2 {
		riskFactors = append(riskFactors, fmt.Sprintf("Multiple negative emails (%d) - escalation risk", negative))
	}

	// Days since the last email in the export; DaysUnknown when there is no
	// email or its timestamp cannot be read.
	gap := DaysUnknown
	if len(emails) > 0 {
		if lastTime, ok := parseWhen(emails[len(emails)-1].ReceivedAt); ok {
			gap = int(math.Ceil(now.Sub(lastTime).Hours() / 24))
		}
	}

	actions := make([]string, 0, 5)
	if overall == OverallNegative || overall == OverallVeryNegative {
		actions = append(actions, "Schedule urgent clarification call to address concerns")
	}
	if calendarAnalysis != nil && calendarAnalysis.DaysToNextMeeting > 0 && calendarAnalysis.DaysToNextMeeting <= 7 {
		actions = append(actions, "Prepare renewal proposal before meeting")
	}
	if gap > 30 {
		actions = append(actions, "Initiate contact - significant gap in communication")
	}
	if overall == OverallPositive && calendarAnalysis != nil &&
		calendarAnalysis.DaysToNextMeeting > 0 && calendarAnalysis.DaysToNextMeeting <= 14 {
		actions = append(actions, "Opportunity for upsell or expanded coverage")
	}
	if negative > 0 && negative <= 2 {
		actions = append(actions, "Follow up on specific client concerns from recent emails")
	}

	nextMeetingDate := ""
	if len(events) > 0 {
		nextMeetingDate = events[0].MeetingDate
	}

	return ConnectorInsights{
		CombinedScore:      int(math.Round(combined)),
		EmailAnalysis:      emailAnalysis,
		CalendarAnalysis:   calendarAnalysis,
		OverallSentiment:   overall,
		RiskFactors:        riskFactors,
		RecommendedActions: actions,
		NextMeetingDate:    nextMeetingDate,
		CommunicationGap:   gap,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// whenLayouts covers the timestamp shapes the connectors emit.
var whenLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 03:04 PM",
	"2006-01-02",
	"02/01/2006",
}

// parseWhen parses a connector timestamp, trying each known layout.
func parseWhen(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range whenLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
