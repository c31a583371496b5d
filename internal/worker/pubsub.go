package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"

	"github.com/wildpost/wildpost/internal/event"
)

// Message attributes carrying the event envelope. The message data is the
// raw source record payload.
const (
	AttrEventID = "event_id"
	AttrStream  = "stream"
)

// PubSubHandler consumes "document created" events for the pipeline.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	pipeline         *Pipeline
	logger           zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	Pipeline         *Pipeline
	Logger           zerolog.Logger
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)

	// Invocations for different events may run concurrently; the gate
	// handles racing deliveries of the same event.
	subscriber.ReceiveSettings.MaxOutstandingMessages = 10
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubHandler{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		pipeline:         cfg.Pipeline,
		logger:           cfg.Logger,
	}, nil
}

// Start begins processing Pub/Sub messages. It blocks until ctx is
// cancelled or the subscription fails.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting pubsub handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.handleMessage(ctx, msg)
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}

func (h *PubSubHandler) handleMessage(ctx context.Context, msg *pubsub.Message) {
	startTime := time.Now()

	evt := event.Event{
		ID:        msg.Attributes[AttrEventID],
		Stream:    event.Stream(msg.Attributes[AttrStream]),
		Payload:   msg.Data,
		CreatedAt: msg.PublishTime,
	}

	logger := h.logger.With().
		Str("message_id", msg.ID).
		Str("event_id", evt.ID).
		Str("stream", string(evt.Stream)).
		Logger()

	logger.Debug().Msg("received pubsub message")

	err := h.pipeline.Process(ctx, evt)
	switch {
	case err == nil:
		logger.Info().
			Dur("duration", time.Since(startTime)).
			Msg("event handled")
		msg.Ack()
	case errors.Is(err, event.ErrUnknownStream),
		errors.Is(err, event.ErrMissingID),
		errors.Is(err, ErrMalformedEvent):
		// Redelivery cannot fix an unroutable message.
		logger.Warn().Err(err).Msg("unprocessable event, dropping")
		msg.Ack()
	default:
		logger.Error().Err(err).Msg("event processing failed")
		msg.Nack()
	}
}
