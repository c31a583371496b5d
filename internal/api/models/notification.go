package models

// NotificationResponse represents one admin notification.
type NotificationResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	URL           string    `json:"url"`
	SourceEventID string    `json:"sourceEventId"`
	Read          bool      `json:"read"`
	CreatedAt     Timestamp `json:"createdAt"`
}

// NotificationListResponse is the body of GET /v1/admin/notifications.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}
