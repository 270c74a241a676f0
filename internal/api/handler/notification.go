package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autocare/autocare/internal/api/models"
	"github.com/autocare/autocare/internal/api/response"
	"github.com/autocare/autocare/internal/notification"
)

// NotificationHandler handles notification log endpoints.
type NotificationHandler struct {
	notifications *notification.Service
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications *notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListNotifications handles GET /v1/notifications.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifications.List(r.Context())
	if err != nil {
		response.InternalError(w, r, "unable to list notifications")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewNotificationListResponse(notifications))
}

// MarkRead handles POST /v1/notifications/{notificationId}/read.
// Marking an already-read notification is a no-op reported as
// changed=false.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	changed, err := h.notifications.MarkRead(r.Context(), chi.URLParam(r, "notificationId"))
	if err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			response.NotFound(w, r, "notification not found")
			return
		}
		response.InternalError(w, r, "unable to mark notification read")
		return
	}
	response.JSON(w, r, http.StatusOK, models.MarkReadResponse{Changed: changed})
}

// MarkAllRead handles POST /v1/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	updated, err := h.notifications.MarkAllRead(r.Context())
	if err != nil {
		response.InternalError(w, r, "unable to mark notifications read")
		return
	}
	response.JSON(w, r, http.StatusOK, models.MarkAllReadResponse{Updated: updated})
}

// UnreadCount handles GET /v1/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notifications.UnreadCount(r.Context())
	if err != nil {
		response.InternalError(w, r, "unable to count unread notifications")
		return
	}
	response.JSON(w, r, http.StatusOK, models.UnreadCountResponse{Count: count})
}
