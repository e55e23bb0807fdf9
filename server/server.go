// Package server exposes the renewal pipeline over an HTTP JSON API.
// The ingestion endpoints are stateless: CSV in, scored records out. Only
// broker notes and scheduled events touch the configured store.
package server

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/SafeGiantJacket/renewaldesk/pkg/buildinfo"
	rderrors "github.com/SafeGiantJacket/renewaldesk/pkg/errors"
	"github.com/SafeGiantJacket/renewaldesk/pkg/ingest"
	"github.com/SafeGiantJacket/renewaldesk/pkg/insights"
	"github.com/SafeGiantJacket/renewaldesk/pkg/logging"
	"github.com/SafeGiantJacket/renewaldesk/pkg/placement"
	"github.com/SafeGiantJacket/renewaldesk/pkg/store"
)

// Server wires the ingestion pipeline, insight aggregator and store behind
// HTTP handlers.
type Server struct {
	log     logging.Logger
	parser  *ingest.Parser
	store   store.Store
	metrics fasthttp.RequestHandler
	now     func() time.Time
}

// New creates a Server. The store may be nil, in which case the notes and
// events endpoints respond 503. The registry gatherer backs /metrics.
func New(log logging.Logger, parser *ingest.Parser, st store.Store, gatherer prometheus.Gatherer) *Server {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		log:    log,
		parser: parser,
		store:  st,
		metrics: fasthttpadaptor.NewFastHTTPHandler(
			promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
		now: time.Now,
	}
}

// Handler returns the root request handler with all routes attached.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		path := string(ctx.Path())
		method := string(ctx.Method())

		s.route(ctx, method, path)

		s.log.Debug("request handled",
			logging.F("method", method),
			logging.F("path", path),
			logging.F("status", ctx.Response.StatusCode()),
			logging.F("duration", time.Since(start)))
	}
}

func (s *Server) route(ctx *fasthttp.RequestCtx, method, path string) {
	switch {
	case path == "/healthz" && method == fasthttp.MethodGet:
		s.writeJSON(ctx, fasthttp.StatusOK, buildinfo.Get())
	case path == "/metrics" && method == fasthttp.MethodGet:
		s.metrics(ctx)
	case path == "/api/ingest/placements" && method == fasthttp.MethodPost:
		s.handleIngestPlacements(ctx)
	case path == "/api/ingest/emails" && method == fasthttp.MethodPost:
		s.handleIngestEmails(ctx)
	case path == "/api/ingest/calendar" && method == fasthttp.MethodPost:
		s.handleIngestCalendar(ctx)
	case path == "/api/insights" && method == fasthttp.MethodPost:
		s.handleInsights(ctx)
	case path == "/api/sample/placements" && method == fasthttp.MethodGet:
		s.writeCSV(ctx, ingest.SamplePlacementCSV())
	case path == "/api/notes" && method == fasthttp.MethodGet:
		s.handleListNotes(ctx)
	case path == "/api/notes" && method == fasthttp.MethodPost:
		s.handleAddNote(ctx)
	case path == "/api/notes" && method == fasthttp.MethodDelete:
		s.handleDeleteNote(ctx)
	case path == "/api/events" && method == fasthttp.MethodGet:
		s.handleListEvents(ctx)
	case path == "/api/events" && method == fasthttp.MethodPost:
		s.handleAddEvent(ctx)
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

// IngestResponse wraps the placement ingestion result.
type IngestResponse struct {
	Count      int                 `json:"count"`
	Placements []*placement.Record `json:"placements"`
}

func (s *Server) handleIngestPlacements(ctx *fasthttp.RequestCtx) {
	records := s.parser.Placements(requestContext(ctx), string(ctx.PostBody()))
	s.writeJSON(ctx, fasthttp.StatusOK, IngestResponse{Count: len(records), Placements: records})
}

func (s *Server) handleIngestEmails(ctx *fasthttp.RequestCtx) {
	emails := s.parser.Emails(string(ctx.PostBody()))
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"count":  len(emails),
		"emails": emails,
	})
}

func (s *Server) handleIngestCalendar(ctx *fasthttp.RequestCtx) {
	events := s.parser.Calendar(string(ctx.PostBody()))
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"count":  len(events),
		"events": events,
	})
}

// InsightsRequest carries the connector records for one placement.
type InsightsRequest struct {
	Emails []placement.Email         `json:"emails"`
	Events []placement.CalendarEvent `json:"events"`
}

func (s *Server) handleInsights(ctx *fasthttp.RequestCtx) {
	var req InsightsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	result := insights.Generate(req.Emails, req.Events, s.now())
	s.writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleListNotes(ctx *fasthttp.RequestCtx) {
	st, ok := s.requireStore(ctx)
	if !ok {
		return
	}
	notes, err := st.ListNotes(requestContext(ctx), string(ctx.QueryArgs().Peek("placement_id")))
	if err != nil {
		s.writeStoreError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, notes)
}

func (s *Server) handleAddNote(ctx *fasthttp.RequestCtx) {
	st, ok := s.requireStore(ctx)
	if !ok {
		return
	}
	var note store.BrokerNote
	if err := json.Unmarshal(ctx.PostBody(), &note); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	saved, err := st.AddNote(requestContext(ctx), note)
	if err != nil {
		s.writeStoreError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusCreated, saved)
}

func (s *Server) handleDeleteNote(ctx *fasthttp.RequestCtx) {
	st, ok := s.requireStore(ctx)
	if !ok {
		return
	}
	id := string(ctx.QueryArgs().Peek("id"))
	if id == "" {
		s.writeError(ctx, fasthttp.StatusBadRequest, "id query parameter is required")
		return
	}
	if err := st.DeleteNote(requestContext(ctx), id); err != nil {
		s.writeStoreError(ctx, err)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (s *Server) handleListEvents(ctx *fasthttp.RequestCtx) {
	st, ok := s.requireStore(ctx)
	if !ok {
		return
	}
	events, err := st.ListEvents(requestContext(ctx), string(ctx.QueryArgs().Peek("placement_id")))
	if err != nil {
		s.writeStoreError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, events)
}

func (s *Server) handleAddEvent(ctx *fasthttp.RequestCtx) {
	st, ok := s.requireStore(ctx)
	if !ok {
		return
	}
	var event store.ScheduledEvent
	if err := json.Unmarshal(ctx.PostBody(), &event); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	saved, err := st.AddEvent(requestContext(ctx), event)
	if err != nil {
		s.writeStoreError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusCreated, saved)
}

// requireStore responds 503 when no store backend is configured.
func (s *Server) requireStore(ctx *fasthttp.RequestCtx) (store.Store, bool) {
	if s.store == nil {
		s.writeError(ctx, fasthttp.StatusServiceUnavailable, "no store backend configured")
		return nil, false
	}
	return s.store, true
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (s *Server) writeStoreError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case rderrors.IsNotFound(err):
		s.writeError(ctx, fasthttp.StatusNotFound, err.Error())
	case rderrors.IsValidation(err):
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	case rderrors.IsStoreUnavailable(err):
		s.writeError(ctx, fasthttp.StatusServiceUnavailable, err.Error())
	default:
		s.log.Error("store operation failed", logging.Err(err))
		s.writeError(ctx, fasthttp.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	s.writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("encoding response failed", logging.Err(err))
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func (s *Server) writeCSV(ctx *fasthttp.RequestCtx, csv string) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("text/csv")
	ctx.SetBodyString(csv)
}

// requestContext extracts the context from a fasthttp request.
func requestContext(ctx *fasthttp.RequestCtx) context.Context {
	return ctx
}

// ListenAndServe starts the server on addr and blocks until it stops.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("server listening", logging.F("addr", addr))
	return fasthttp.ListenAndServe(addr, s.Handler())
}
