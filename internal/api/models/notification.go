package models

import (
	"github.com/autocare/autocare/internal/notification"
)

// NotificationResponse is the API representation of a notification.
type NotificationResponse struct {
	ID        string    `json:"notificationId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RelatedID *string   `json:"relatedId,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt Timestamp `json:"createdAt"`
}

// NewNotificationResponse converts a domain notification.
func NewNotificationResponse(n *notification.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		RelatedID: n.RelatedID,
		Read:      n.Read,
		CreatedAt: Timestamp(n.CreatedAt),
	}
}

// NewNotificationListResponse converts a slice of domain notifications.
func NewNotificationListResponse(notifications []*notification.Notification) []*NotificationResponse {
	out := make([]*NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, NewNotificationResponse(n))
	}
	return out
}

// MarkReadResponse reports whether marking a notification read changed
// its state.
type MarkReadResponse struct {
	Changed bool `json:"changed"`
}

// MarkAllReadResponse reports how many notifications were marked read.
type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}

// UnreadCountResponse carries the number of unread notifications.
type UnreadCountResponse struct {
	Count int `json:"count"`
}
