// Package push sends multicast push notifications to administrator devices
// and prunes endpoints the provider reports as permanently dead.
package push

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Provider error codes that mean the endpoint will never accept delivery
// again. Everything else is treated as transient and left registered.
const (
	CodeUnregistered       = "UNREGISTERED"
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeTokenNotRegistered = "registration-token-not-registered"
)

// SendResponse is the provider's per-token outcome.
type SendResponse struct {
	Success   bool
	ErrorCode string
}

// MulticastResult is the provider's outcome for one multicast send.
type MulticastResult struct {
	SuccessCount int
	FailureCount int
	// Responses is positionally aligned with the token list passed to
	// SendMulticast.
	Responses []SendResponse
}

// Messenger is the external push provider.
type Messenger interface {
	// SendMulticast delivers a data-only payload to every token and
	// returns one response per token, in order.
	SendMulticast(ctx context.Context, tokens []string, data map[string]string) (*MulticastResult, error)
}

// Revoker removes dead token registrations.
type Revoker interface {
	RevokeTokens(ctx context.Context, tokens []string) error
}

// DispatchResult summarizes one dispatch.
type DispatchResult struct {
	SuccessCount int
	FailureCount int
}

// Dispatcher fans one message out to every registered admin device.
type Dispatcher struct {
	messenger Messenger
	revoker   Revoker
	logger    zerolog.Logger
}

// Config holds dispatcher dependencies.
type Config struct {
	Messenger Messenger
	Revoker   Revoker
	Logger    zerolog.Logger
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher(cfg Config) *Dispatcher {
	return &Dispatcher{
		messenger: cfg.Messenger,
		revoker:   cfg.Revoker,
		logger:    cfg.Logger,
	}
}

// Dispatch sends one multicast push carrying title, body and data to every
// token. The payload is data-only so the receiving device controls
// rendering and failure codes stay attributable per token. Tokens the
// provider reports as permanently invalid are revoked from the registry;
// that pruning is best-effort and never invalidates the dispatch result.
//
// Dispatch never retries. Redelivery of the source event is the retry
// mechanism, and the idempotency gate upstream keeps it from duplicating.
func (d *Dispatcher) Dispatch(ctx context.Context, tokens []string, title, body string, data map[string]string) (DispatchResult, error) {
	if len(tokens) == 0 {
		return DispatchResult{}, nil
	}

	payload := make(map[string]string, len(data)+2)
	for k, v := range data {
		payload[k] = v
	}
	payload["title"] = title
	payload["body"] = body

	result, err := d.messenger.SendMulticast(ctx, tokens, payload)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("multicast send: %w", err)
	}

	invalid := invalidTokens(tokens, result)
	if len(invalid) > 0 {
		if err := d.revoker.RevokeTokens(ctx, invalid); err != nil {
			d.logger.Warn().
				Err(err).
				Int("tokens", len(invalid)).
				Msg("failed to prune invalid tokens")
		} else {
			d.logger.Info().
				Int("tokens", len(invalid)).
				Msg("pruned invalid tokens")
		}
	}

	return DispatchResult{
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
	}, nil
}

// invalidTokens collects the tokens whose failure codes mark them as
// permanently dead.
func invalidTokens(tokens []string, result *MulticastResult) []string {
	var invalid []string
	for i, resp := range result.Responses {
		if resp.Success || i >= len(tokens) {
			continue
		}
		if IsPermanentFailure(resp.ErrorCode) {
			invalid = append(invalid, tokens[i])
		}
	}
	return invalid
}

// IsPermanentFailure reports whether code marks a token as permanently
// undeliverable.
func IsPermanentFailure(code string) bool {
	switch code {
	case CodeUnregistered, CodeInvalidArgument, CodeTokenNotRegistered:
		return true
	}
	return false
}
