// Package fcm provides a Firebase Cloud Messaging HTTP v1 client
// implementing the push.Messenger interface.
package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/wildpost/wildpost/internal/push"
)

const (
	// DefaultBaseURL is the base URL for the FCM HTTP v1 API.
	DefaultBaseURL = "https://fcm.googleapis.com"

	// messagingScope is the OAuth scope required to send messages.
	messagingScope = "https://www.googleapis.com/auth/firebase.messaging"

	// codeUnavailable stands in for transport-level failures, which are
	// transient by definition and must never trigger token pruning.
	codeUnavailable = "UNAVAILABLE"
)

// ClientConfig holds configuration for the FCM client.
type ClientConfig struct {
	// ProjectID is the Firebase project to send through.
	ProjectID string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a plain client with Timeout is used. Deliberately not a
	// retrying client: redelivery of the source event is the only retry
	// path for pushes.
	HTTPClient HTTPDoer

	// TokenSource supplies OAuth2 access tokens. If nil, Google
	// application-default credentials are used.
	TokenSource oauth2.TokenSource

	// Timeout for individual send requests (default: 10s).
	Timeout time.Duration
}

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is an FCM HTTP v1 API client. The v1 API has no server-side
// multicast endpoint, so SendMulticast issues one request per token and
// aggregates the per-token outcomes into a single result.
type Client struct {
	projectID   string
	baseURL     string
	httpClient  HTTPDoer
	tokenSource oauth2.TokenSource
}

// NewClient creates a new FCM client.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("fcm: project id is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	tokenSource := cfg.TokenSource
	if tokenSource == nil {
		ts, err := google.DefaultTokenSource(ctx, messagingScope)
		if err != nil {
			return nil, fmt.Errorf("fcm: load default credentials: %w", err)
		}
		tokenSource = ts
	}

	return &Client{
		projectID:   cfg.ProjectID,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  httpClient,
		tokenSource: tokenSource,
	}, nil
}

// API request/response types (FCM HTTP v1).

type sendRequest struct {
	Message message `json:"message"`
}

type message struct {
	Token string            `json:"token"`
	Data  map[string]string `json:"data"`
}

type errorResponse struct {
	Error struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Details []struct {
			Type      string `json:"@type"`
			ErrorCode string `json:"errorCode"`
		} `json:"details"`
	} `json:"error"`
}

// SendMulticast sends the data-only payload to every token and returns one
// response per token, positionally aligned with the input. A per-token
// failure never aborts the remaining sends; only a credentials failure
// fails the whole call.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, data map[string]string) (*push.MulticastResult, error) {
	accessToken, err := c.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("fcm: fetch access token: %w", err)
	}

	result := &push.MulticastResult{
		Responses: make([]push.SendResponse, 0, len(tokens)),
	}

	for _, tok := range tokens {
		resp := c.sendOne(ctx, accessToken.AccessToken, tok, data)
		if resp.Success {
			result.SuccessCount++
		} else {
			result.FailureCount++
		}
		result.Responses = append(result.Responses, resp)
	}

	return result, nil
}

func (c *Client) sendOne(ctx context.Context, accessToken, deviceToken string, data map[string]string) push.SendResponse {
	body, err := json.Marshal(sendRequest{Message: message{Token: deviceToken, Data: data}})
	if err != nil {
		return push.SendResponse{ErrorCode: push.CodeInvalidArgument}
	}

	url := fmt.Sprintf("%s/v1/projects/%s/messages:send", c.baseURL, c.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return push.SendResponse{ErrorCode: codeUnavailable}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return push.SendResponse{ErrorCode: codeUnavailable}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 {
		return push.SendResponse{Success: true}
	}

	return push.SendResponse{ErrorCode: decodeErrorCode(httpResp)}
}

// decodeErrorCode extracts the provider error code from a failed send.
// The FCM error detail's errorCode (e.g. UNREGISTERED) is preferred; the
// RPC status (e.g. INVALID_ARGUMENT) is the fallback.
func decodeErrorCode(resp *http.Response) string {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return codeUnavailable
	}

	for _, detail := range body.Error.Details {
		if detail.ErrorCode != "" {
			return detail.ErrorCode
		}
	}
	if body.Error.Status != "" {
		return body.Error.Status
	}
	return codeUnavailable
}

// Ensure Client implements push.Messenger.
var _ push.Messenger = (*Client)(nil)
