package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	rderrors "github.com/SafeGiantJacket/renewaldesk/pkg/errors"
)

// PostgresStore persists notes and events in PostgreSQL via a pgx pool.
// Suitable when several brokers share one renewaldesk deployment.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// schema creates the backing tables. Enum values are enforced in Go, not in
// the database, so adding a category never needs a migration.
const schema = `
CREATE TABLE IF NOT EXISTS broker_notes (
	id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	placement_id TEXT NOT NULL,
	title        TEXT NOT NULL,
	content      TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT 'general',
	tags         TEXT[] NOT NULL DEFAULT '{}',
	broker_id    TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS broker_notes_placement_idx ON broker_notes (placement_id);

CREATE TABLE IF NOT EXISTS scheduled_events (
	id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	placement_id TEXT NOT NULL,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	event_date   TIMESTAMPTZ NOT NULL,
	event_type   TEXT NOT NULL DEFAULT 'other',
	priority     TEXT NOT NULL DEFAULT 'medium',
	status       TEXT NOT NULL DEFAULT 'scheduled',
	broker_id    TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS scheduled_events_placement_idx ON scheduled_events (placement_id);
`

// PostgresConfig holds connection settings for the Postgres backend.
type PostgresConfig struct {
	DSN             string
	ConnectTimeout  time.Duration
	MaxConns        int32
	MaxConnLifetime time.Duration
}

// NewPostgresStore connects to PostgreSQL, verifies the connection and
// ensures the schema exists.
func NewPostgresStore(ctx context.Context, cfg PostgresConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w: %w", rderrors.ErrStoreUnavailable, err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Pool exposes the underlying pool for metrics collection.
func (s *PostgresStore) Pool() *pgxpool.Pool { return s.pool }

// AddNote stores a note, assigning its ID and creation time.
func (s *PostgresStore) AddNote(ctx context.Context, note BrokerNote) (BrokerNote, error) {
	if err := validateNote(note); err != nil {
		return BrokerNote{}, err
	}
	normalizeNote(&note)

	row := s.pool.QueryRow(ctx,
		`INSERT INTO broker_notes (placement_id, title, content, category, tags, broker_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		note.PlacementID, note.Title, note.Content, string(note.Category), note.Tags, note.BrokerID)
	if err := row.Scan(&note.ID, &note.CreatedAt); err != nil {
		return BrokerNote{}, fmt.Errorf("insert note: %w", err)
	}
	return note, nil
}

// ListNotes returns notes, optionally filtered by placement ID, newest first.
func (s *PostgresStore) ListNotes(ctx context.Context, placementID string) ([]BrokerNote, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, placement_id, title, content, category, tags, broker_id, created_at
		 FROM broker_notes
		 WHERE $1 = '' OR placement_id = $1
		 ORDER BY created_at DESC`,
		placementID)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	notes := make([]BrokerNote, 0)
	for rows.Next() {
		var note BrokerNote
		var category string
		if err := rows.Scan(&note.ID, &note.PlacementID, &note.Title, &note.Content,
			&category, &note.Tags, &note.BrokerID, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		note.Category = NoteCategory(category)
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// DeleteNote removes a note by ID.
func (s *PostgresStore) DeleteNote(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM broker_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %q: %w", id, rderrors.ErrNotFound)
	}
	return nil
}

// AddEvent stores a scheduled event, assigning its ID and creation time.
func (s *PostgresStore) AddEvent(ctx context.Context, event ScheduledEvent) (ScheduledEvent, error) {
	if err := validateEvent(event); err != nil {
		return ScheduledEvent{}, err
	}
	normalizeEvent(&event)

	row := s.pool.QueryRow(ctx,
		`INSERT INTO scheduled_events (placement_id, title, description, event_date, event_type, priority, status, broker_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		event.PlacementID, event.Title, event.Description, event.EventDate,
		string(event.Type), string(event.Priority), string(event.Status), event.BrokerID)
	if err := row.Scan(&event.ID, &event.CreatedAt); err != nil {
		return ScheduledEvent{}, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

// ListEvents returns events, optionally filtered by placement ID, soonest first.
func (s *PostgresStore) ListEvents(ctx context.Context, placementID string) ([]ScheduledEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, placement_id, title, description, event_date, event_type, priority, status, broker_id, created_at
		 FROM scheduled_events
		 WHERE $1 = '' OR placement_id = $1
		 ORDER BY event_date ASC`,
		placementID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := make([]ScheduledEvent, 0)
	for rows.Next() {
		var event ScheduledEvent
		var eventType, priority, status string
		if err := rows.Scan(&event.ID, &event.PlacementID, &event.Title, &event.Description,
			&event.EventDate, &eventType, &priority, &status, &event.BrokerID, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		event.Type = EventType(eventType)
		event.Priority = EventPriority(priority)
		event.Status = EventStatus(status)
		events = append(events, event)
	}
	return events, rows.Err()
}

// UpdateEventStatus moves an event through its lifecycle.
func (s *PostgresStore) UpdateEventStatus(ctx context.Context, id string, status EventStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE scheduled_events SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("event %q: %w", id, rderrors.ErrNotFound)
		}
		return fmt.Errorf("update event status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %q: %w", id, rderrors.ErrNotFound)
	}
	return nil
}

// DeleteEvent removes an event by ID.
func (s *PostgresStore) DeleteEvent(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM scheduled_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %q: %w", id, rderrors.ErrNotFound)
	}
	return nil
}

// Clear removes all notes and events.
func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE broker_notes, scheduled_events`); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
