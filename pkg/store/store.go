// Package store persists broker notes and scheduled events for placements.
//
// The interface replaces the session-storage singleton of the original
// dashboard: callers construct a concrete backend (memory, Postgres or
// Redis), own its lifecycle, and pass it to whatever needs persistence.
// Placement records themselves are never stored; they are recomputed from
// the CSV exports on every ingestion.
package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	rderrors "github.com/SafeGiantJacket/renewaldesk/pkg/errors"
)

// NoteCategory classifies a broker note.
type NoteCategory string

const (
	NoteGeneral   NoteCategory = "general"
	NoteImportant NoteCategory = "important"
	NoteFollowup  NoteCategory = "followup"
	NoteIssue     NoteCategory = "issue"
)

// EventType classifies a scheduled event.
type EventType string

const (
	EventRenewal  EventType = "renewal"
	EventMeeting  EventType = "meeting"
	EventCall     EventType = "call"
	EventFollowup EventType = "followup"
	EventOther    EventType = "other"
)

// EventPriority ranks a scheduled event.
type EventPriority string

const (
	PriorityLow    EventPriority = "low"
	PriorityMedium EventPriority = "medium"
	PriorityHigh   EventPriority = "high"
)

// EventStatus tracks a scheduled event through its lifecycle.
type EventStatus string

const (
	StatusScheduled EventStatus = "scheduled"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

// BrokerNote is a free-form note a broker attaches to a placement.
type BrokerNote struct {
	ID          string       `json:"id" yaml:"id"`
	PlacementID string       `json:"placement_id" yaml:"placement_id"`
	Title       string       `json:"title" yaml:"title"`
	Content     string       `json:"content" yaml:"content"`
	Category    NoteCategory `json:"category" yaml:"category"`
	Tags        []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	BrokerID    string       `json:"broker_id,omitempty" yaml:"broker_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at" yaml:"created_at"`
}

// ScheduledEvent is a broker-scheduled follow-up tied to a placement.
type ScheduledEvent struct {
	ID          string        `json:"id" yaml:"id"`
	PlacementID string        `json:"placement_id" yaml:"placement_id"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	EventDate   time.Time     `json:"event_date" yaml:"event_date"`
	Type        EventType     `json:"type" yaml:"type"`
	Priority    EventPriority `json:"priority" yaml:"priority"`
	Status      EventStatus   `json:"status" yaml:"status"`
	BrokerID    string        `json:"broker_id,omitempty" yaml:"broker_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at" yaml:"created_at"`
}

// Store persists broker notes and scheduled events. Implementations must be
// safe for concurrent use. List methods with an empty placementID return all
// records.
type Store interface {
	// AddNote stores a note, assigning its ID and creation time.
	AddNote(ctx context.Context, note BrokerNote) (BrokerNote, error)

	// ListNotes returns notes, optionally filtered by placement ID.
	ListNotes(ctx context.Context, placementID string) ([]BrokerNote, error)

	// DeleteNote removes a note by ID. Returns ErrNotFound if absent.
	DeleteNote(ctx context.Context, id string) error

	// AddEvent stores a scheduled event, assigning its ID and creation time.
	AddEvent(ctx context.Context, event ScheduledEvent) (ScheduledEvent, error)

	// ListEvents returns scheduled events, optionally filtered by placement ID.
	ListEvents(ctx context.Context, placementID string) ([]ScheduledEvent, error)

	// UpdateEventStatus moves an event through its lifecycle. Returns
	// ErrNotFound if absent.
	UpdateEventStatus(ctx context.Context, id string, status EventStatus) error

	// DeleteEvent removes an event by ID. Returns ErrNotFound if absent.
	DeleteEvent(ctx context.Context, id string) error

	// Clear removes all notes and events. The caller owns when this happens.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// validateNote checks required note fields.
func validateNote(note BrokerNote) error {
	if note.PlacementID == "" {
		return fmt.Errorf("note placement_id is required: %w", rderrors.ErrValidation)
	}
	if note.Title == "" {
		return fmt.Errorf("note title is required: %w", rderrors.ErrValidation)
	}
	return nil
}

// validateEvent checks required event fields.
func validateEvent(event ScheduledEvent) error {
	if event.PlacementID == "" {
		return fmt.Errorf("event placement_id is required: %w", rderrors.ErrValidation)
	}
	if event.Title == "" {
		return fmt.Errorf("event title is required: %w", rderrors.ErrValidation)
	}
	return nil
}

// normalizeNote applies defaults for optional enum fields.
func normalizeNote(note *BrokerNote) {
	if note.Category == "" {
		note.Category = NoteGeneral
	}
}

// normalizeEvent applies defaults for optional enum fields.
func normalizeEvent(event *ScheduledEvent) {
	if event.Type == "" {
		event.Type = EventOther
	}
	if event.Priority == "" {
		event.Priority = PriorityMedium
	}
	if event.Status == "" {
		event.Status = StatusScheduled
	}
}

// sortNotesByCreated orders notes newest first.
func sortNotesByCreated(notes []BrokerNote) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
}

// sortEventsByDate orders events soonest first.
func sortEventsByDate(events []ScheduledEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EventDate.Before(events[j].EventDate)
	})
}
