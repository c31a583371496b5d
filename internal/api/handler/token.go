package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wildpost/wildpost/internal/api/middleware"
	"github.com/wildpost/wildpost/internal/api/models"
	"github.com/wildpost/wildpost/internal/api/response"
	"github.com/wildpost/wildpost/internal/token"
)

// TokenHandler handles admin push-token registration endpoints.
type TokenHandler struct {
	registry *token.Registry
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(registry *token.Registry) *TokenHandler {
	return &TokenHandler{registry: registry}
}

// RegisterToken handles POST /v1/admin/push-tokens. The token is keyed to
// the authenticated admin; re-registering the same token refreshes its
// metadata.
func (h *TokenHandler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		response.BadRequest(w, r, "token is required", []models.FieldError{
			{Field: "token", Message: "required"},
		})
		return
	}

	email := middleware.GetAdminEmail(r.Context())
	if err := h.registry.RegisterToken(r.Context(), req.Token, email, email); err != nil {
		if errors.Is(err, token.ErrEmptyToken) {
			response.BadRequest(w, r, "token is required", nil)
			return
		}
		response.InternalError(w, r, "failed to register token")
		return
	}
	response.NoContent(w, r)
}

// RevokeTokens handles DELETE /v1/admin/push-tokens. Revoking tokens that
// are already gone is not an error.
func (h *TokenHandler) RevokeTokens(w http.ResponseWriter, r *http.Request) {
	var req models.RevokeTokensRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if err := h.registry.RevokeTokens(r.Context(), req.Tokens); err != nil {
		response.InternalError(w, r, "failed to revoke tokens")
		return
	}
	response.NoContent(w, r)
}
