package dto

import (
	"github.com/maninivas13/farmasthi/internal/models"
)

// ---------------- Requests ----------------

type ListNotificationsRequest struct {
	UnreadOnly bool `form:"unread_only"`
}

// ---------------- Responses ----------------

type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	UnreadCount   int64                 `json:"unread_count"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"page_size"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}
