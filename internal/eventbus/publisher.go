// Package eventbus publishes "document created" events to the transport
// the notification worker consumes. Publishing is the producer side of the
// at-least-once contract: it retries aggressively because the consumer-side
// idempotency gate absorbs any resulting double delivery.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/wildpost/wildpost/internal/event"
	"github.com/wildpost/wildpost/internal/worker"
)

// ErrPublishUnavailable is returned when the circuit breaker is open and
// publishes are being shed.
var ErrPublishUnavailable = errors.New("event publishing unavailable")

// Config holds configuration for the publisher.
type Config struct {
	// ProjectID is the Pub/Sub project.
	ProjectID string

	// TopicName is the topic carrying created events.
	TopicName string

	// MaxRetries is the retry attempts per publish. Default: 3.
	MaxRetries uint64

	// InitialInterval is the initial retry backoff. Default: 100ms.
	InitialInterval time.Duration

	// MaxInterval is the retry backoff ceiling. Default: 2s.
	MaxInterval time.Duration

	Logger zerolog.Logger
}

// sender performs one publish attempt. Split out so retry and breaker
// behavior is testable without a live transport.
type sender interface {
	send(ctx context.Context, evt event.Event) error
}

// Publisher publishes created events with retry and circuit breaking.
type Publisher struct {
	client  *pubsub.Client
	sender  sender
	breaker *gobreaker.CircuitBreaker[any]
	cfg     Config
	logger  zerolog.Logger
}

// NewPublisher creates a publisher for cfg.TopicName.
func NewPublisher(ctx context.Context, cfg Config) (*Publisher, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	p := newPublisher(cfg, &pubsubSender{publisher: client.Publisher(cfg.TopicName)})
	p.client = client
	return p, nil
}

func newPublisher(cfg Config, s sender) *Publisher {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 2 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "eventbus-" + cfg.TopicName,
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
	})

	return &Publisher{
		sender:  s,
		breaker: breaker,
		cfg:     cfg,
		logger:  cfg.Logger,
	}
}

// Close closes the underlying Pub/Sub client.
func (p *Publisher) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

// PublishCreated publishes one created event. Attempts are retried with
// exponential backoff; when the breaker is open the call fails fast with
// ErrPublishUnavailable.
func (p *Publisher) PublishCreated(ctx context.Context, evt event.Event) error {
	if err := evt.Validate(); err != nil {
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.cfg.InitialInterval
	bo.MaxInterval = p.cfg.MaxInterval
	bo.MaxElapsedTime = 0

	operation := func() error {
		_, err := p.breaker.Execute(func() (any, error) {
			return nil, p.sender.send(ctx, evt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrPublishUnavailable)
			}
			return err
		}
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, p.cfg.MaxRetries), ctx))
	if err != nil {
		return fmt.Errorf("publish %s: %w", evt.DedupKey(), err)
	}

	p.logger.Debug().
		Str("stream", string(evt.Stream)).
		Str("event_id", evt.ID).
		Msg("event published")
	return nil
}

// pubsubSender publishes through a live Pub/Sub topic.
type pubsubSender struct {
	publisher *pubsub.Publisher
}

func (s *pubsubSender) send(ctx context.Context, evt event.Event) error {
	result := s.publisher.Publish(ctx, &pubsub.Message{
		Data: evt.Payload,
		Attributes: map[string]string{
			worker.AttrEventID: evt.ID,
			worker.AttrStream:  string(evt.Stream),
		},
	})
	_, err := result.Get(ctx)
	return err
}
