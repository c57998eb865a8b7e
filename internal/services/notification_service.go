package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lucasmrt/planify-api/internal/models"
	"github.com/lucasmrt/planify-api/internal/policy"
	"github.com/lucasmrt/planify-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrEmptyNotification    = errors.New("notification content cannot be empty")
)

// NotificationService provides business logic for user notifications.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo, userRepo: userRepo}
}

// List returns the caller's notifications, newest first.
func (s *NotificationService) List(caller policy.Caller, page, pageSize int) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(caller.ID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// CreateNotificationInput represents parameters to create a notification.
type CreateNotificationInput struct {
	Content string
	UserID  uint64
}

// Create records a notification for a user. Maintainer only.
func (s *NotificationService) Create(caller policy.Caller, input CreateNotificationInput) (*models.Notification, error) {
	if !policy.CanCreateNotificationFor(caller, input.UserID) {
		return nil, ErrForbidden
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyNotification
	}

	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	notification := &models.Notification{
		Content: content,
		UserID:  input.UserID,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return notification, nil
}

// MarkRead marks one of the caller's notifications as read.
func (s *NotificationService) MarkRead(caller policy.Caller, id uint64) (*models.Notification, error) {
	notification, err := s.findOwned(caller, id, policy.CanReadNotification)
	if err != nil {
		return nil, err
	}

	if !notification.IsRead {
		now := time.Now()
		notification.IsRead = true
		notification.ReadAt = &now
		if err := s.notificationRepo.Save(notification); err != nil {
			return nil, fmt.Errorf("failed to mark notification as read: %w", err)
		}
	}

	return notification, nil
}

// Delete removes a notification. Owner or maintainer.
func (s *NotificationService) Delete(caller policy.Caller, id uint64) error {
	notification, err := s.findOwned(caller, id, policy.CanDeleteNotification)
	if err != nil {
		return err
	}

	if err := s.notificationRepo.Delete(notification.ID); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	return nil
}

func (s *NotificationService) findOwned(caller policy.Caller, id uint64, allowed func(policy.Caller, uint64) bool) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	if !allowed(caller, notification.UserID) {
		return nil, ErrNotificationNotFound
	}

	return notification, nil
}
