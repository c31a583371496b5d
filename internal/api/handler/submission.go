package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wildpost/wildpost/internal/api/models"
	"github.com/wildpost/wildpost/internal/api/response"
	"github.com/wildpost/wildpost/internal/event"
	"github.com/wildpost/wildpost/internal/inbox"
)

// EventPublisher publishes a created-event for an accepted submission.
type EventPublisher interface {
	PublishCreated(ctx context.Context, evt event.Event) error
}

// SubmissionHandler handles the public submission endpoints. Each accepted
// submission is persisted first; the created-event publish that drives the
// admin notification pipeline is best-effort from the submitter's point of
// view (a failed publish is logged and surfaced in metrics, the record
// itself is already durable).
type SubmissionHandler struct {
	inbox     *inbox.Service
	publisher EventPublisher
	logger    zerolog.Logger
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(inboxService *inbox.Service, publisher EventPublisher, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		inbox:     inboxService,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateContact handles POST /v1/contacts.
func (h *SubmissionHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	var fieldErrors []models.FieldError
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "name", Message: "required"})
	}
	if strings.TrimSpace(req.Message) == "" {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "message", Message: "required"})
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "missing required fields", fieldErrors)
		return
	}

	h.accept(w, r, event.StreamContact, event.ContactPayload{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
}

// CreateAllowRequest handles POST /v1/allow-requests.
func (h *SubmissionHandler) CreateAllowRequest(w http.ResponseWriter, r *http.Request) {
	var req models.AllowRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		response.BadRequest(w, r, "missing required fields", []models.FieldError{
			{Field: "email", Message: "required"},
		})
		return
	}

	h.accept(w, r, event.StreamAllowRequest, event.AllowRequestPayload{
		Email: req.Email,
		Note:  req.Note,
	})
}

// CreatePartRequest handles POST /v1/part-requests.
func (h *SubmissionHandler) CreatePartRequest(w http.ResponseWriter, r *http.Request) {
	var req models.PartRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if req.Grams < 0 {
		response.BadRequest(w, r, "grams must not be negative", []models.FieldError{
			{Field: "grams", Message: "must be >= 0"},
		})
		return
	}

	// An empty part request is still deliverable; the notification body
	// falls back to a placeholder.
	h.accept(w, r, event.StreamPartRequest, event.PartRequestPayload{
		Animal: req.Animal,
		Part:   req.Part,
		Grams:  req.Grams,
		Email:  req.Email,
	})
}

// accept persists the submission and publishes its created-event.
func (h *SubmissionHandler) accept(w http.ResponseWriter, r *http.Request, stream event.Stream, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		response.InternalError(w, r, "failed to encode submission")
		return
	}

	sub, err := h.inbox.Submit(r.Context(), stream, raw)
	if err != nil {
		h.logger.Error().Err(err).Str("stream", string(stream)).Msg("failed to persist submission")
		response.ServiceUnavailable(w, r, "submission could not be stored")
		return
	}

	if err := h.publisher.PublishCreated(r.Context(), sub.Event()); err != nil {
		// The record is durable; the pipeline just won't fire for it.
		h.logger.Error().
			Err(err).
			Str("stream", string(stream)).
			Str("event_id", sub.ID).
			Msg("failed to publish created event")
	}

	response.Created(w, r, "", models.SubmissionResponse{
		ID:        sub.ID,
		Stream:    string(sub.Stream),
		CreatedAt: models.Timestamp(sub.CreatedAt),
	})
}
