package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	rderrors "github.com/SafeGiantJacket/renewaldesk/pkg/errors"
)

// MemoryStore is an in-process Store for single-user CLI sessions and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	notes  map[string]BrokerNote
	events map[string]ScheduledEvent
	now    func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		notes:  make(map[string]BrokerNote),
		events: make(map[string]ScheduledEvent),
		now:    time.Now,
	}
}

// AddNote stores a note, assigning its ID and creation time.
func (s *MemoryStore) AddNote(ctx context.Context, note BrokerNote) (BrokerNote, error) {
	if err := validateNote(note); err != nil {
		return BrokerNote{}, err
	}
	normalizeNote(&note)
	note.ID = uuid.NewString()
	note.CreatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.ID] = note
	return note, nil
}

// ListNotes returns notes, optionally filtered by placement ID, newest first.
func (s *MemoryStore) ListNotes(ctx context.Context, placementID string) ([]BrokerNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]BrokerNote, 0, len(s.notes))
	for _, note := range s.notes {
		if placementID == "" || note.PlacementID == placementID {
			notes = append(notes, note)
		}
	}
	sortNotesByCreated(notes)
	return notes, nil
}

// DeleteNote removes a note by ID.
func (s *MemoryStore) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return fmt.Errorf("note %q: %w", id, rderrors.ErrNotFound)
	}
	delete(s.notes, id)
	return nil
}

// AddEvent stores a scheduled event, assigning its ID and creation time.
func (s *MemoryStore) AddEvent(ctx context.Context, event ScheduledEvent) (ScheduledEvent, error) {
	if err := validateEvent(event); err != nil {
		return ScheduledEvent{}, err
	}
	normalizeEvent(&event)
	event.ID = uuid.NewString()
	event.CreatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = event
	return event, nil
}

// ListEvents returns events, optionally filtered by placement ID, soonest first.
func (s *MemoryStore) ListEvents(ctx context.Context, placementID string) ([]ScheduledEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]ScheduledEvent, 0, len(s.events))
	for _, event := range s.events {
		if placementID == "" || event.PlacementID == placementID {
			events = append(events, event)
		}
	}
	sortEventsByDate(events)
	return events, nil
}

// UpdateEventStatus moves an event through its lifecycle.
func (s *MemoryStore) UpdateEventStatus(ctx context.Context, id string, status EventStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return fmt.Errorf("event %q: %w", id, rderrors.ErrNotFound)
	}
	event.Status = status
	s.events[id] = event
	return nil
}

// DeleteEvent removes an event by ID.
func (s *MemoryStore) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return fmt.Errorf("event %q: %w", id, rderrors.ErrNotFound)
	}
	delete(s.events, id)
	return nil
}

// Clear removes all notes and events.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = make(map[string]BrokerNote)
	s.events = make(map[string]ScheduledEvent)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
