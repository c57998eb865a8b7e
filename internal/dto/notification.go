package dto

import (
	"github.com/lucasmrt/planify-api/internal/models"
)

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID        uint64 `json:"id"`
	Content   string `json:"content"`
	UserID    uint64 `json:"user_id"`
	IsRead    bool   `json:"is_read"`
	ReadAt    *int64 `json:"read_at"`
	CreatedAt int64  `json:"created_at"`
}

// NotificationListResponse represents a paginated list of notifications
type NotificationListResponse struct {
	Notifications []NotificationDTO `json:"notifications"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
}

// ToNotificationDTO converts a notification to DTO
func ToNotificationDTO(notification models.Notification) NotificationDTO {
	dto := NotificationDTO{
		ID:        notification.ID,
		Content:   notification.Content,
		UserID:    notification.UserID,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt.Unix(),
	}
	if notification.ReadAt != nil {
		readAt := notification.ReadAt.Unix()
		dto.ReadAt = &readAt
	}
	return dto
}
