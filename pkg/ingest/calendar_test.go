package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafeGiantJacket/renewaldesk/pkg/logging"
)

func TestCalendar_SampleExport(t *testing.T) {
	p := NewParser(logging.NewNopLogger())

	events := p.Calendar(SampleCalendarCSV())
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "EVT-101", first.EventID)
	assert.Equal(t, "Renewal strategy review", first.Title)
	assert.Equal(t, "Alpha Manufacturing Ltd", first.ClientName)
	assert.Equal(t, "2025-02-10", first.MeetingDate)
	assert.Equal(t, []string{"anna@brokerage.com", "contact@alphamfg.com"}, first.Participants)
}

func TestCalendar_FuzzyHeaderAliases(t *testing.T) {
	csvText := `CalendarId,Name,Organizer,Start,Attendees
C-1,Renewal sync,Acme Corp,2026-09-10,a@x.com; b@x.com`

	p := NewParser(logging.NewNopLogger())
	events := p.Calendar(csvText)
	require.Len(t, events, 1)

	assert.Equal(t, "C-1", events[0].EventID)
	assert.Equal(t, "Renewal sync", events[0].Title)
	assert.Equal(t, "Acme Corp", events[0].ClientName)
	assert.Equal(t, "2026-09-10", events[0].MeetingDate)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, events[0].Participants)
}

func TestCalendar_DefaultsForMissingFields(t *testing.T) {
	csvText := `Title,ClientName,MeetingNotes
Renewal sync,Acme Corp,quick agenda`

	p := NewParser(logging.NewNopLogger())
	events := p.Calendar(csvText)
	require.Len(t, events, 1)

	assert.Equal(t, "EVT-1", events[0].EventID)
	assert.NotEmpty(t, events[0].SourceLink)
	assert.Empty(t, events[0].Participants)
}

func TestCalendar_DropsRowsWithoutIdentity(t *testing.T) {
	csvText := `Title,ClientName,MeetingNotes
,,orphaned notes`

	p := NewParser(logging.NewNopLogger())
	assert.Empty(t, p.Calendar(csvText))
}

func TestCalendar_EmptyInput(t *testing.T) {
	p := NewParser(logging.NewNopLogger())
	assert.Empty(t, p.Calendar(""))
}

func TestSplitParticipants(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, splitParticipants("a@x.com; b@x.com"))
	assert.Equal(t, []string{"solo@x.com"}, splitParticipants("solo@x.com"))
	assert.Empty(t, splitParticipants(""))
	assert.Empty(t, splitParticipants(" ; ; "))
}
