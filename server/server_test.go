package server

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/SafeGiantJacket/renewaldesk/pkg/ingest"
	"github.com/SafeGiantJacket/renewaldesk/pkg/insights"
	"github.com/SafeGiantJacket/renewaldesk/pkg/logging"
	"github.com/SafeGiantJacket/renewaldesk/pkg/placement"
	"github.com/SafeGiantJacket/renewaldesk/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	parser := ingest.NewParser(logging.NewNopLogger())
	return New(logging.NewNopLogger(), parser, store.NewMemoryStore(), reg)
}

func doRequest(t *testing.T, s *Server, method, uri, body string) *fasthttp.RequestCtx {
	t.Helper()
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	s.Handler()(ctx)
	return ctx
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(t, s, fasthttp.MethodGet, "/healthz", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "version")
}

func TestUnknownRouteReturns404(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(t, s, fasthttp.MethodGet, "/nope", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestIngestPlacements(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/ingest/placements", ingest.SamplePlacementCSV())
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp IngestResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.NotEmpty(t, resp.Placements)
	assert.Equal(t, len(resp.Placements), resp.Count)
	for _, rec := range resp.Placements {
		assert.GreaterOrEqual(t, rec.PriorityScore, 0)
		assert.LessOrEqual(t, rec.PriorityScore, 100)
	}
}

func TestIngestPlacementsEmptyBody(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/ingest/placements", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp IngestResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Zero(t, resp.Count)
}

func TestIngestEmails(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/ingest/emails", ingest.SampleEmailCSV())
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp struct {
		Count  int               `json:"count"`
		Emails []placement.Email `json:"emails"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.NotZero(t, resp.Count)
}

func TestInsights(t *testing.T) {
	s := newTestServer(t)
	s.now = func() time.Time { return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) }

	req := InsightsRequest{
		Emails: []placement.Email{
			{EmailID: "EM-1", Subject: "Quote ready", Sentiment: placement.SentimentPositive, ThreadCount: 2},
		},
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/insights", string(body))
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var result insights.ConnectorInsights
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &result))
	require.NotNil(t, result.EmailAnalysis)
	assert.Greater(t, result.CombinedScore, 0)
}

func TestInsightsBadBody(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/insights", "{not json")
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestSamplePlacementsCSV(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(t, s, fasthttp.MethodGet, "/api/sample/placements", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "text/csv", string(ctx.Response.Header.ContentType()))
}

func TestNotesCRUD(t *testing.T) {
	s := newTestServer(t)

	body, err := json.Marshal(store.BrokerNote{
		PlacementID: "PLC-1",
		Title:       "Chase the quote",
		Category:    store.NoteFollowup,
	})
	require.NoError(t, err)

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/notes", string(body))
	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())

	var saved store.BrokerNote
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &saved))
	require.NotEmpty(t, saved.ID)

	ctx = doRequest(t, s, fasthttp.MethodGet, "/api/notes?placement_id=PLC-1", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var notes []store.BrokerNote
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &notes))
	assert.Len(t, notes, 1)

	ctx = doRequest(t, s, fasthttp.MethodDelete, "/api/notes?id="+saved.ID, "")
	assert.Equal(t, fasthttp.StatusNoContent, ctx.Response.StatusCode())

	ctx = doRequest(t, s, fasthttp.MethodDelete, "/api/notes?id="+saved.ID, "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestAddNoteValidationError(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/notes", `{"title":"no placement"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestDeleteNoteRequiresID(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(t, s, fasthttp.MethodDelete, "/api/notes", "")
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestAddEvent(t *testing.T) {
	s := newTestServer(t)

	body, err := json.Marshal(store.ScheduledEvent{
		PlacementID: "PLC-1",
		Title:       "Renewal review",
		EventDate:   time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
		Type:        store.EventRenewal,
	})
	require.NoError(t, err)

	ctx := doRequest(t, s, fasthttp.MethodPost, "/api/events", string(body))
	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())

	ctx = doRequest(t, s, fasthttp.MethodGet, "/api/events?placement_id=PLC-1", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var events []store.ScheduledEvent
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &events))
	assert.Len(t, events, 1)
}

func TestNilStoreReturns503(t *testing.T) {
	parser := ingest.NewParser(logging.NewNopLogger())
	s := New(logging.NewNopLogger(), parser, nil, prometheus.NewRegistry())

	ctx := doRequest(t, s, fasthttp.MethodGet, "/api/notes", "")
	assert.Equal(t, fasthttp.StatusServiceUnavailable, ctx.Response.StatusCode())
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	parser := ingest.NewParser(logging.NewNopLogger(), ingest.WithMetrics(ingest.NewMetrics(reg)))
	s := New(logging.NewNopLogger(), parser, nil, reg)

	doRequest(t, s, fasthttp.MethodPost, "/api/ingest/placements", ingest.SamplePlacementCSV())

	ctx := doRequest(t, s, fasthttp.MethodGet, "/metrics", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "renewaldesk_ingest_rows_ingested_total")
}

func TestHealthzReportsBuildInfo(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(t, s, fasthttp.MethodGet, "/healthz", "")

	var info map[string]string
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &info))
	assert.NotEmpty(t, info["version"])
}
