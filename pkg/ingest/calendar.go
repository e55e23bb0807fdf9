package ingest

import (
	"strconv"
	"strings"

	"github.com/SafeGiantJacket/renewaldesk/pkg/ingest/csvline"
	"github.com/SafeGiantJacket/renewaldesk/pkg/placement"
)

// Calendar parses a calendar-connector CSV export using the same fuzzy
// header scheme as Emails. Participant lists are semicolon separated inside
// a single column. Rows without at least a title or a client name are
// dropped.
func (p *Parser) Calendar(csvText string) []placement.CalendarEvent {
	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	if len(lines) < 2 {
		return []placement.CalendarEvent{}
	}

	mapper := csvline.NewFieldMapper(splitHeader(lines[0]))
	events := make([]placement.CalendarEvent, 0, len(lines)-1)

	for i := 1; i < len(lines); i++ {
		values := csvline.SplitFields(lines[i])
		if len(values) < 3 {
			p.metrics.skipped("calendar", SkipReasonTooFewColumns)
			continue
		}
		get := func(keys ...string) string { return mapper.ValueFuzzy(keys, values) }

		event := placement.CalendarEvent{
			EventID:      get("eventid", "id", "calendarid"),
			Title:        get("title", "subject", "name", "meeting"),
			ClientName:   get("clientname", "client", "organizer", "with"),
			MeetingDate:  get("meetingdate", "date", "datetime", "start", "startdate"),
			PolicyID:     get("policyid", "policy", "placementid"),
			MeetingNotes: get("meetingnotes", "notes", "description", "agenda"),
			Participants: splitParticipants(get("participants", "attendees", "emails")),
			SourceLink:   get("sourcelink", "link", "url"),
		}
		if event.EventID == "" {
			event.EventID = "EVT-" + strconv.Itoa(i)
		}
		if event.SourceLink == "" {
			event.SourceLink = "https://calendar.example.com/" + strconv.Itoa(i)
		}

		if event.Title == "" && event.ClientName == "" {
			p.metrics.skipped("calendar", SkipReasonNoIdentity)
			continue
		}
		events = append(events, event)
		p.metrics.ingested("calendar")
	}

	return events
}

// splitParticipants splits a semicolon-separated participant list, dropping
// empty entries.
func splitParticipants(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
