// Package worker runs the admin notification pipeline: for every source
// event it writes one in-app notification and fans one push out to every
// registered administrator device.
package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wildpost/wildpost/internal/dedupe"
	"github.com/wildpost/wildpost/internal/event"
	"github.com/wildpost/wildpost/internal/notification"
	"github.com/wildpost/wildpost/internal/push"
)

// ErrMalformedEvent marks an event whose payload cannot be decoded.
// Redelivery cannot fix it, so the subscriber acks instead of nacking.
var ErrMalformedEvent = errors.New("malformed event payload")

// TokenLister supplies the current admin token set.
type TokenLister interface {
	ListTokens(ctx context.Context) ([]string, error)
}

// Pipeline processes source events. Each invocation is stateless; racing
// invocations for the same event are serialized by the idempotency gate.
type Pipeline struct {
	gate          *dedupe.Gate
	notifications *notification.Service
	tokens        TokenLister
	dispatcher    *push.Dispatcher
	logger        zerolog.Logger
	metrics       *Metrics
}

// PipelineConfig holds pipeline dependencies.
type PipelineConfig struct {
	Gate          *dedupe.Gate
	Notifications *notification.Service
	Tokens        TokenLister
	Dispatcher    *push.Dispatcher
	Logger        zerolog.Logger

	// Metrics is optional; nil disables pipeline counters.
	Metrics *Metrics
}

// NewPipeline creates a new pipeline.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	return &Pipeline{
		gate:          cfg.Gate,
		notifications: cfg.Notifications,
		tokens:        cfg.Tokens,
		dispatcher:    cfg.Dispatcher,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
	}
}

// Process runs one event through gate → notification write → token load →
// push dispatch.
//
// The dedup marker is committed at entry, before the notification write.
// This is what makes the concurrent-redelivery guarantee hold: the atomic
// create is the only step that can serialize two racing deliveries. The
// cost is that a failed notification write leaves the marker in place and
// blocks reprocessing until the marker expires.
//
// Only the write path (marker + notification) can fail the invocation.
// Token loading and push dispatch are best-effort: the durable record is
// already committed, and failing here would make the transport redeliver
// and duplicate it.
func (p *Pipeline) Process(ctx context.Context, evt event.Event) error {
	if err := evt.Validate(); err != nil {
		return err
	}

	logger := p.logger.With().
		Str("stream", string(evt.Stream)).
		Str("event_id", evt.ID).
		Logger()

	summary, err := Summarize(evt)
	if err != nil {
		return err
	}

	ok, err := p.gate.ShouldProcessOnce(ctx, evt.DedupKey())
	if err != nil {
		return err
	}
	if !ok {
		logger.Info().Msg("duplicate delivery, skipping")
		p.metrics.recordDuplicate(ctx, evt.Stream)
		return nil
	}

	n, err := p.notifications.Write(ctx, notification.WriteInput{
		Type:          summary.Type,
		Title:         summary.Title,
		Body:          summary.Body,
		URL:           summary.URL,
		SourceEventID: evt.ID,
	})
	if err != nil {
		return fmt.Errorf("write notification for %s: %w", evt.DedupKey(), err)
	}
	p.metrics.recordProcessed(ctx, evt.Stream)

	tokens, err := p.tokens.ListTokens(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load admin tokens, notification written without push")
		return nil
	}
	if len(tokens) == 0 {
		logger.Debug().Msg("no admin tokens registered, skipping push")
		return nil
	}

	result, err := p.dispatcher.Dispatch(ctx, tokens,
		summary.Title,
		event.Truncate(summary.Body, event.PushBodyLimit),
		summary.Data,
	)
	if err != nil {
		logger.Error().Err(err).Msg("push dispatch failed, notification written without push")
		return nil
	}

	p.metrics.recordDispatch(ctx, evt.Stream, result)
	logger.Info().
		Str("notification_id", n.ID).
		Int("success", result.SuccessCount).
		Int("failure", result.FailureCount).
		Msg("event processed")

	return nil
}
