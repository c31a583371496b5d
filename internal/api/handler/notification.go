package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wildpost/wildpost/internal/api/models"
	"github.com/wildpost/wildpost/internal/api/response"
	"github.com/wildpost/wildpost/internal/notification"
)

// NotificationHandler handles the admin notification console endpoints.
type NotificationHandler struct {
	service *notification.Service
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *notification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// ListNotifications handles GET /v1/admin/notifications.
// Query parameters: limit (default 50, max 200), unread (true to filter).
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	opts := notification.ListOptions{Limit: 50}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			response.BadRequest(w, r, "limit must be a positive integer", []models.FieldError{
				{Field: "limit", Message: "must be a positive integer"},
			})
			return
		}
		if limit > 200 {
			limit = 200
		}
		opts.Limit = limit
	}
	opts.UnreadOnly = r.URL.Query().Get("unread") == "true"

	items, err := h.service.List(r.Context(), opts)
	if err != nil {
		response.InternalError(w, r, "failed to list notifications")
		return
	}

	out := models.NotificationListResponse{
		Notifications: make([]models.NotificationResponse, 0, len(items)),
	}
	for _, n := range items {
		out.Notifications = append(out.Notifications, models.NotificationResponse{
			ID:            n.ID,
			Type:          string(n.Type),
			Title:         n.Title,
			Body:          n.Body,
			URL:           n.URL,
			SourceEventID: n.SourceEventID,
			Read:          n.Read,
			CreatedAt:     models.Timestamp(n.CreatedAt),
		})
	}
	response.JSON(w, r, http.StatusOK, out)
}

// MarkNotificationRead handles POST /v1/admin/notifications/{notificationId}/read.
func (h *NotificationHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "notificationId")

	if err := h.service.MarkRead(r.Context(), id); err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			response.NotFound(w, r, "notification not found")
			return
		}
		response.InternalError(w, r, "failed to mark notification read")
		return
	}
	response.NoContent(w, r)
}

// DeleteNotification handles DELETE /v1/admin/notifications/{notificationId}.
func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "notificationId")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			response.NotFound(w, r, "notification not found")
			return
		}
		response.InternalError(w, r, "failed to delete notification")
		return
	}
	response.NoContent(w, r)
}
