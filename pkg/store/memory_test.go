package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rderrors "github.com/SafeGiantJacket/renewaldesk/pkg/errors"
)

func TestMemoryStore_NoteLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	saved, err := s.AddNote(ctx, BrokerNote{
		PlacementID: "PLC-1",
		Title:       "Call before expiry",
		Content:     "Client wants competing quotes",
		Category:    NoteFollowup,
		Tags:        []string{"renewal"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	notes, err := s.ListNotes(ctx, "PLC-1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Call before expiry", notes[0].Title)

	require.NoError(t, s.DeleteNote(ctx, saved.ID))

	notes, err = s.ListNotes(ctx, "PLC-1")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestMemoryStore_AddNoteValidation(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.AddNote(context.Background(), BrokerNote{Title: "no placement"})
	assert.True(t, rderrors.IsValidation(err))

	_, err = s.AddNote(context.Background(), BrokerNote{PlacementID: "PLC-1"})
	assert.True(t, rderrors.IsValidation(err))
}

func TestMemoryStore_NoteDefaultsCategory(t *testing.T) {
	s := NewMemoryStore()

	saved, err := s.AddNote(context.Background(), BrokerNote{
		PlacementID: "PLC-1",
		Title:       "untyped",
	})
	require.NoError(t, err)
	assert.Equal(t, NoteGeneral, saved.Category)
}

func TestMemoryStore_ListNotesFilters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.AddNote(ctx, BrokerNote{PlacementID: "PLC-1", Title: "a"})
	require.NoError(t, err)
	_, err = s.AddNote(ctx, BrokerNote{PlacementID: "PLC-2", Title: "b"})
	require.NoError(t, err)

	all, err := s.ListNotes(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := s.ListNotes(ctx, "PLC-2")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "b", one[0].Title)
}

func TestMemoryStore_DeleteNoteNotFound(t *testing.T) {
	s := NewMemoryStore()
	err := s.DeleteNote(context.Background(), "missing")
	assert.True(t, rderrors.IsNotFound(err))
}

func TestMemoryStore_EventLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	saved, err := s.AddEvent(ctx, ScheduledEvent{
		PlacementID: "PLC-1",
		Title:       "Renewal review",
		EventDate:   time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
		Type:        EventRenewal,
		Priority:    PriorityHigh,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, StatusScheduled, saved.Status)

	require.NoError(t, s.UpdateEventStatus(ctx, saved.ID, StatusCompleted))

	events, err := s.ListEvents(ctx, "PLC-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, StatusCompleted, events[0].Status)

	require.NoError(t, s.DeleteEvent(ctx, saved.ID))
	assert.True(t, rderrors.IsNotFound(s.DeleteEvent(ctx, saved.ID)))
}

func TestMemoryStore_ListEventsSortedByDate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	later := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	sooner := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.AddEvent(ctx, ScheduledEvent{PlacementID: "PLC-1", Title: "later", EventDate: later})
	require.NoError(t, err)
	_, err = s.AddEvent(ctx, ScheduledEvent{PlacementID: "PLC-1", Title: "sooner", EventDate: sooner})
	require.NoError(t, err)

	events, err := s.ListEvents(ctx, "PLC-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "sooner", events[0].Title)
}

func TestMemoryStore_UpdateEventStatusNotFound(t *testing.T) {
	s := NewMemoryStore()
	err := s.UpdateEventStatus(context.Background(), "missing", StatusCancelled)
	assert.True(t, rderrors.IsNotFound(err))
}

func TestMemoryStore_Clear(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.AddNote(ctx, BrokerNote{PlacementID: "PLC-1", Title: "n"})
	require.NoError(t, err)
	_, err = s.AddEvent(ctx, ScheduledEvent{PlacementID: "PLC-1", Title: "e", EventDate: time.Now()})
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))

	notes, err := s.ListNotes(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, notes)
	events, err := s.ListEvents(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, events)
}
