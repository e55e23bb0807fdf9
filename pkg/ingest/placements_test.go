package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafeGiantJacket/renewaldesk/pkg/logging"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	}
}

func TestPlacements_SampleExport(t *testing.T) {
	p := NewParser(logging.NewNopLogger(), WithClock(fixedClock()))

	records := p.Placements(context.Background(), SamplePlacementCSV())
	require.Len(t, records, 2)

	byID := map[string]bool{}
	for _, rec := range records {
		byID[rec.PlacementID] = true
		assert.NotNil(t, rec.ScoreBreakdown)
		assert.Equal(t, rec.ScoreBreakdown.Total, rec.PriorityScore)
	}
	assert.True(t, byID["SCR-76fd0b40a1cb"])
	assert.True(t, byID["SCR-90aa17e5b3fd"])
}

func TestPlacements_FieldMapping(t *testing.T) {
	p := NewParser(logging.NewNopLogger(), WithClock(fixedClock()))

	records := p.Placements(context.Background(), SamplePlacementCSV())
	require.Len(t, records, 2)

	var rec = records[0]
	if rec.PlacementID != "SCR-76fd0b40a1cb" {
		rec = records[1]
	}

	assert.Equal(t, "Global Technologies", rec.Client)
	assert.Equal(t, "Eastern Risk Management", rec.CarrierGroup)
	assert.Equal(t, "Quote", rec.PlacementStatus)
	assert.Equal(t, "30/09/26", rec.PlacementExpiryDate)
	assert.InDelta(t, 67311.79, rec.TotalPremium, 0.001)
	assert.InDelta(t, 8, rec.CommissionPercent, 0.001)
	assert.InDelta(t, 100, rec.ParticipationPercentage, 0.001)
	assert.Equal(t, 29, rec.DaysUntilExpiry)
}

func TestPlacements_QuotedCommasInFields(t *testing.T) {
	csvText := `Client,Placement Id,Placement Status,Total Premium,Placement Expiry Date
"Acme, Inc.",PLC-1,Quote,50000,30/09/26`

	p := NewParser(logging.NewNopLogger(), WithClock(fixedClock()))
	records := p.Placements(context.Background(), csvText)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme, Inc.", records[0].Client)
}

func TestPlacements_DeduplicatesByID(t *testing.T) {
	csvText := `Client,Placement Id,Placement Status,Carrier Group,Total Premium
Acme,PLC-1,Submitted,Carrier A,60000
Acme,PLC-1,Quote,Carrier B,40000`

	p := NewParser(logging.NewNopLogger(), WithClock(fixedClock()))
	records := p.Placements(context.Background(), csvText)
	require.Len(t, records, 1)
	assert.Equal(t, "Carrier B", records[0].CarrierGroup)
	assert.Equal(t, 2, records[0].DuplicateCount)
}

func TestPlacements_SkipsRowsWithTooFewColumns(t *testing.T) {
	csvText := `Client,Placement Id,Placement Status,Total Premium,Placement Expiry Date,Carrier Group
Acme,PLC-1,Quote,50000,30/09/26,Carrier A
bad row`

	p := NewParser(logging.NewNopLogger(), WithClock(fixedClock()))
	records := p.Placements(context.Background(), csvText)
	assert.Len(t, records, 1)
}

func TestPlacements_SkipsRowsWithoutIdentity(t *testing.T) {
	csvText := `Client,Placement Id,Placement Name,Placement Status,Total Premium
Acme,,,Quote,50000`

	p := NewParser(logging.NewNopLogger())
	records := p.Placements(context.Background(), csvText)
	assert.Empty(t, records)
}

func TestPlacements_EmptyAndHeaderOnlyInputs(t *testing.T) {
	p := NewParser(logging.NewNopLogger())

	assert.Empty(t, p.Placements(context.Background(), ""))
	assert.Empty(t, p.Placements(context.Background(), "Client,Placement Id"))
}

func TestPlacements_BlankLinesIgnored(t *testing.T) {
	csvText := "Client,Placement Id,Placement Status,Total Premium\nAcme,PLC-1,Quote,50000\n\n\n"

	p := NewParser(logging.NewNopLogger())
	records := p.Placements(context.Background(), csvText)
	assert.Len(t, records, 1)
}

func TestPlacements_MetricsCountRows(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewParser(logging.NewNopLogger(),
		WithMetrics(NewMetrics(reg)),
		WithClock(fixedClock()))

	p.Placements(context.Background(), SamplePlacementCSV())

	ingested := testutil.ToFloat64(p.metrics.RowsIngested.WithLabelValues("placement"))
	assert.Equal(t, float64(2), ingested)
}
