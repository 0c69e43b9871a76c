// Package metrics holds the OpenTelemetry instruments recorded for each
// extraction. Instruments come from the supplied MeterProvider, so with the
// default global provider they are no-ops until an SDK is installed.
package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/minuteman3/log-find-date"

// Metrics groups the extraction instruments.
type Metrics struct {
	Extractions  metric.Int64Counter
	Probes       metric.Int64Counter
	BytesScanned metric.Int64Counter
	MatchedLines metric.Int64Counter
	Duration     metric.Float64Histogram
}

// Observation is one finished extraction.
type Observation struct {
	Found        bool
	Probes       int
	BytesScanned int64
	MatchedLines int
	Elapsed      time.Duration
	Err          error
}

// New creates the instruments on a meter from mp.
func New(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(meterName)

	extractions, err := meter.Int64Counter("logfind_extractions_total",
		metric.WithDescription("Extractions run, by outcome"))
	if err != nil {
		return nil, err
	}
	probes, err := meter.Int64Counter("logfind_probes_total",
		metric.WithDescription("Binary search and backtrack probes"))
	if err != nil {
		return nil, err
	}
	scanned, err := meter.Int64Counter("logfind_bytes_scanned_total",
		metric.WithDescription("Bytes read from log files"), metric.WithUnit("By"))
	if err != nil {
		return nil, err
	}
	matched, err := meter.Int64Counter("logfind_matched_lines_total",
		metric.WithDescription("Lines written to sinks"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("logfind_extraction_duration_seconds",
		metric.WithDescription("Wall-clock duration of an extraction"), metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Extractions:  extractions,
		Probes:       probes,
		BytesScanned: scanned,
		MatchedLines: matched,
		Duration:     duration,
	}, nil
}

// Record adds o to the instruments. A nil receiver is a no-op.
func (m *Metrics) Record(ctx context.Context, o Observation) {
	if m == nil {
		return
	}
	outcome := "not_found"
	switch {
	case o.Err != nil:
		outcome = "error"
	case o.Found:
		outcome = "found"
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))

	m.Extractions.Add(ctx, 1, attrs)
	m.Probes.Add(ctx, int64(o.Probes))
	m.BytesScanned.Add(ctx, o.BytesScanned)
	m.MatchedLines.Add(ctx, int64(o.MatchedLines))
	m.Duration.Record(ctx, o.Elapsed.Seconds(), attrs)
}
