// Package ingest turns raw CRM, email and calendar CSV exports into typed
// records. Parsing is fault tolerant per line: a malformed row is logged and
// skipped, never fatal for the file.
package ingest

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/SafeGiantJacket/renewaldesk/pkg/dedup"
	"github.com/SafeGiantJacket/renewaldesk/pkg/ingest/csvline"
	"github.com/SafeGiantJacket/renewaldesk/pkg/logging"
	"github.com/SafeGiantJacket/renewaldesk/pkg/placement"
	"github.com/SafeGiantJacket/renewaldesk/pkg/scoring"
)

var tracer = otel.Tracer("github.com/SafeGiantJacket/renewaldesk/pkg/ingest")

// Parser ingests CSV exports. The zero value is not usable; construct with
// NewParser.
type Parser struct {
	log     logging.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithMetrics attaches Prometheus counters to the parser.
func WithMetrics(m *Metrics) Option {
	return func(p *Parser) { p.metrics = m }
}

// WithClock overrides the time source used for expiry calculations.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

// NewParser creates a Parser. A nil logger disables ingestion logging.
func NewParser(log logging.Logger, opts ...Option) *Parser {
	if log == nil {
		log = logging.NewNopLogger()
	}
	p := &Parser{log: log, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Placements parses a placement CSV export into scored, deduplicated
// records. The first line must be a header row; with fewer than two lines
// the result is empty, not an error.
//
// Per-row policy: rows with under half the header's column count are logged
// and skipped; rows with neither a placement ID nor a placement name are
// dropped silently; a panic while building a row is recovered, logged, and
// ingestion continues with the next row.
func (p *Parser) Placements(ctx context.Context, csvText string) []*placement.Record {
	_, span := tracer.Start(ctx, "ingest.placements")
	defer span.End()

	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	if len(lines) < 2 {
		return []*placement.Record{}
	}

	headers := splitHeader(lines[0])
	mapper := csvline.NewFieldMapper(headers)
	minColumns := len(headers) / 2

	records := make([]*placement.Record, 0, len(lines)-1)
	now := p.now()

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if rec := p.parseRow(mapper, line, i, minColumns, now); rec != nil {
			records = append(records, rec)
			p.metrics.ingested("placement")
		}
	}

	deduplicated := dedup.Deduplicate(records)

	span.SetAttributes(
		attribute.Int("rows.parsed", len(records)),
		attribute.Int("rows.deduplicated", len(deduplicated)),
	)
	p.log.Debug("placement ingestion complete",
		logging.F("rows", len(lines)-1),
		logging.F("parsed", len(records)),
		logging.F("deduplicated", len(deduplicated)))

	return deduplicated
}

// parseRow converts one data line, isolating any panic to this row.
func (p *Parser) parseRow(mapper *csvline.FieldMapper, line string, lineNo, minColumns int, now time.Time) (rec *placement.Record) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("error parsing CSV line",
				logging.F("line", lineNo),
				logging.F("panic", r))
			p.metrics.skipped("placement", SkipReasonRowPanic)
			rec = nil
		}
	}()

	values := csvline.SplitFields(line)
	if len(values) < minColumns {
		p.log.Warn("skipping malformed CSV line: too few columns",
			logging.F("line", lineNo),
			logging.F("columns", len(values)))
		p.metrics.skipped("placement", SkipReasonTooFewColumns)
		return nil
	}

	rec = buildRecord(mapper, values)
	if rec.PlacementID == "" && rec.PlacementName == "" {
		p.metrics.skipped("placement", SkipReasonNoIdentity)
		return nil
	}

	rec.DaysUntilExpiry = DaysUntilExpiry(rec.PlacementExpiryDate, now)
	scoring.Apply(rec)
	return rec
}

// splitHeader splits the header row. Header rows in these exports never
// carry quoted commas, so a plain split matches the source behavior.
func splitHeader(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
