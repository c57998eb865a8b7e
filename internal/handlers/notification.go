package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lucasmrt/planify-api/internal/dto"
	apierrors "github.com/lucasmrt/planify-api/internal/errors"
	"github.com/lucasmrt/planify-api/internal/middleware"
	"github.com/lucasmrt/planify-api/internal/services"
	"github.com/lucasmrt/planify-api/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns the caller's notifications, newest first
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	notifications, err := h.notificationService.List(caller, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	notificationDTOs := make([]dto.NotificationDTO, len(notifications))
	for i, notification := range notifications {
		notificationDTOs[i] = dto.ToNotificationDTO(notification)
	}

	c.JSON(http.StatusOK, dto.NotificationListResponse{
		Notifications: notificationDTOs,
		Page:          params.Page,
		PageSize:      params.Limit,
	})
}

// CreateNotificationRequest represents the notification creation request body
type CreateNotificationRequest struct {
	Content string `json:"content" binding:"required"`
	UserID  uint64 `json:"user_id" binding:"required"`
}

// CreateNotification records a notification for a user
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	notification, err := h.notificationService.Create(caller, services.CreateNotificationInput{
		Content: req.Content,
		UserID:  req.UserID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNotificationDTO(*notification))
}

// MarkRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification id")
		return
	}

	notification, err := h.notificationService.MarkRead(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationDTO(*notification))
}

// DeleteNotification removes a notification. Owner or maintainer.
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification id")
		return
	}

	if err := h.notificationService.Delete(caller, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
