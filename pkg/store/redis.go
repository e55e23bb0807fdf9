package store

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	rderrors "github.com/SafeGiantJacket/renewaldesk/pkg/errors"
)

// Redis hash keys. One hash per record kind, field = record ID, value = JSON.
const (
	redisNotesKey  = "renewaldesk:notes"
	redisEventsKey = "renewaldesk:events"
)

// RedisStore persists notes and events in Redis. A natural fit for the
// session-like lifetime the dashboard wants: data survives restarts of the
// CLI or server but lives in one shared, easily cleared place.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// RedisConfig holds connection settings for the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w: %w", rderrors.ErrStoreUnavailable, err)
	}
	return &RedisStore{client: client, now: time.Now}, nil
}

// AddNote stores a note, assigning its ID and creation time.
func (s *RedisStore) AddNote(ctx context.Context, note BrokerNote) (BrokerNote, error) {
	if err := validateNote(note); err != nil {
		return BrokerNote{}, err
	}
	normalizeNote(&note)
	note.ID = uuid.NewString()
	note.CreatedAt = s.now().UTC()

	payload, err := json.Marshal(note)
	if err != nil {
		return BrokerNote{}, fmt.Errorf("marshal note: %w", err)
	}
	if err := s.client.HSet(ctx, redisNotesKey, note.ID, payload).Err(); err != nil {
		return BrokerNote{}, fmt.Errorf("store note: %w", err)
	}
	return note, nil
}

// ListNotes returns notes, optionally filtered by placement ID, newest first.
func (s *RedisStore) ListNotes(ctx context.Context, placementID string) ([]BrokerNote, error) {
	raw, err := s.client.HGetAll(ctx, redisNotesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]BrokerNote, 0, len(raw))
	for _, payload := range raw {
		var note BrokerNote
		if err := json.Unmarshal([]byte(payload), &note); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		if placementID == "" || note.PlacementID == placementID {
			notes = append(notes, note)
		}
	}
	sortNotesByCreated(notes)
	return notes, nil
}

// DeleteNote removes a note by ID.
func (s *RedisStore) DeleteNote(ctx context.Context, id string) error {
	removed, err := s.client.HDel(ctx, redisNotesKey, id).Result()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if removed == 0 {
		return fmt.Errorf("note %q: %w", id, rderrors.ErrNotFound)
	}
	return nil
}

// AddEvent stores a scheduled event, assigning its ID and creation time.
func (s *RedisStore) AddEvent(ctx context.Context, event ScheduledEvent) (ScheduledEvent, error) {
	if err := validateEvent(event); err != nil {
		return ScheduledEvent{}, err
	}
	normalizeEvent(&event)
	event.ID = uuid.NewString()
	event.CreatedAt = s.now().UTC()

	payload, err := json.Marshal(event)
	if err != nil {
		return ScheduledEvent{}, fmt.Errorf("marshal event: %w", err)
	}
	if err := s.client.HSet(ctx, redisEventsKey, event.ID, payload).Err(); err != nil {
		return ScheduledEvent{}, fmt.Errorf("store event: %w", err)
	}
	return event, nil
}

// ListEvents returns events, optionally filtered by placement ID, soonest first.
func (s *RedisStore) ListEvents(ctx context.Context, placementID string) ([]ScheduledEvent, error) {
	raw, err := s.client.HGetAll(ctx, redisEventsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]ScheduledEvent, 0, len(raw))
	for _, payload := range raw {
		var event ScheduledEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		if placementID == "" || event.PlacementID == placementID {
			events = append(events, event)
		}
	}
	sortEventsByDate(events)
	return events, nil
}

// UpdateEventStatus moves an event through its lifecycle.
func (s *RedisStore) UpdateEventStatus(ctx context.Context, id string, status EventStatus) error {
	payload, err := s.client.HGet(ctx, redisEventsKey, id).Result()
	if err == redis.Nil {
		return fmt.Errorf("event %q: %w", id, rderrors.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("load event: %w", err)
	}

	var event ScheduledEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	event.Status = status

	updated, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := s.client.HSet(ctx, redisEventsKey, id, updated).Err(); err != nil {
		return fmt.Errorf("store event: %w", err)
	}
	return nil
}

// DeleteEvent removes an event by ID.
func (s *RedisStore) DeleteEvent(ctx context.Context, id string) error {
	removed, err := s.client.HDel(ctx, redisEventsKey, id).Result()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if removed == 0 {
		return fmt.Errorf("event %q: %w", id, rderrors.ErrNotFound)
	}
	return nil
}

// Clear removes all notes and events.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, redisNotesKey, redisEventsKey).Err(); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
