package worker

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/wildpost/wildpost/internal/event"
	"github.com/wildpost/wildpost/internal/push"
)

const meterName = "github.com/wildpost/wildpost/internal/worker"

// Metrics holds the pipeline's OpenTelemetry counters.
type Metrics struct {
	eventsProcessed metric.Int64Counter
	duplicates      metric.Int64Counter
	pushSuccess     metric.Int64Counter
	pushFailure     metric.Int64Counter
}

// NewMetrics creates pipeline metrics instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)

	eventsProcessed, err := meter.Int64Counter(
		"pipeline.events.processed",
		metric.WithDescription("Source events processed to completion"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	duplicates, err := meter.Int64Counter(
		"pipeline.events.duplicates",
		metric.WithDescription("Redelivered events rejected by the idempotency gate"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	pushSuccess, err := meter.Int64Counter(
		"pipeline.push.success",
		metric.WithDescription("Per-token push deliveries that succeeded"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return nil, err
	}

	pushFailure, err := meter.Int64Counter(
		"pipeline.push.failure",
		metric.WithDescription("Per-token push deliveries that failed"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		eventsProcessed: eventsProcessed,
		duplicates:      duplicates,
		pushSuccess:     pushSuccess,
		pushFailure:     pushFailure,
	}, nil
}

func streamAttr(stream event.Stream) metric.AddOption {
	return metric.WithAttributes(attribute.String("stream", string(stream)))
}

func (m *Metrics) recordProcessed(ctx context.Context, stream event.Stream) {
	if m == nil {
		return
	}
	m.eventsProcessed.Add(ctx, 1, streamAttr(stream))
}

func (m *Metrics) recordDuplicate(ctx context.Context, stream event.Stream) {
	if m == nil {
		return
	}
	m.duplicates.Add(ctx, 1, streamAttr(stream))
}

func (m *Metrics) recordDispatch(ctx context.Context, stream event.Stream, result push.DispatchResult) {
	if m == nil {
		return
	}
	m.pushSuccess.Add(ctx, int64(result.SuccessCount), streamAttr(stream))
	m.pushFailure.Add(ctx, int64(result.FailureCount), streamAttr(stream))
}
