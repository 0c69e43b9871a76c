package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, agg metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := agg.(metricdata.Sum[int64])
	require.True(t, ok, "unexpected aggregation %T", agg)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecord(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := New(mp)
	require.NoError(t, err)

	ctx := context.Background()
	m.Record(ctx, Observation{Found: true, Probes: 20, BytesScanned: 4096, MatchedLines: 3, Elapsed: time.Millisecond})
	m.Record(ctx, Observation{Probes: 5, BytesScanned: 100})
	m.Record(ctx, Observation{Err: errors.New("boom")})

	data := collect(t, reader)
	assert.Equal(t, int64(3), sumOf(t, data["logfind_extractions_total"]))
	assert.Equal(t, int64(25), sumOf(t, data["logfind_probes_total"]))
	assert.Equal(t, int64(4196), sumOf(t, data["logfind_bytes_scanned_total"]))
	assert.Equal(t, int64(3), sumOf(t, data["logfind_matched_lines_total"]))

	hist, ok := data["logfind_extraction_duration_seconds"].(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(3), count)
}

func TestRecordNil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Record(context.Background(), Observation{}) })
}
