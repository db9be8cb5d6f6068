package services

import (
	"errors"

	"github.com/maninivas13/farmasthi/internal/models"
	"github.com/maninivas13/farmasthi/internal/repositories"
	"github.com/maninivas13/farmasthi/internal/services/dto"
	"github.com/maninivas13/farmasthi/pkg/apperrors"
)

type NotificationService interface {
	GetUserNotifications(userID string, role models.UserRole, unreadOnly bool, page, pageSize int) (*dto.NotificationListResponse, error)
	MarkAsRead(userID string, role models.UserRole, notificationID string) error
	MarkAllAsRead(userID string, role models.UserRole) error
	GetUnreadCount(userID string, role models.UserRole) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

// officerBroadcast reports whether listings for this role include rows
// addressed to the all-officers broadcast recipient.
func officerBroadcast(role models.UserRole) bool {
	return role == models.UserRoleOfficer || role == models.UserRoleAdmin
}

func (s *notificationService) GetUserNotifications(userID string, role models.UserRole, unreadOnly bool, page, pageSize int) (*dto.NotificationListResponse, error) {
	criteria := repositories.NotificationCriteria{
		IncludeOfficerBroadcast: officerBroadcast(role),
		UnreadOnly:              unreadOnly,
		Page:                    page,
		PageSize:                pageSize,
	}

	notifications, total, err := s.notificationRepo.FindUserNotifications(userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unread, err := s.notificationRepo.UnreadCount(userID, criteria.IncludeOfficerBroadcast)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.NotificationListResponse{
		Notifications: notifications,
		Total:         total,
		UnreadCount:   unread,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *notificationService) MarkAsRead(userID string, role models.UserRole, notificationID string) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}

	// A broadcast row belongs to every officer; marking it read marks
	// it for all of them.
	owned := notification.UserID == userID ||
		(notification.UserID == models.RecipientAllOfficers && officerBroadcast(role))
	if !owned {
		return apperrors.ErrNotificationAccessDenied
	}

	if err := s.notificationRepo.MarkAsRead(notificationID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// MarkAllAsRead clears the same recipient scope the listings and unread
// count use, so an officer's broadcast rows are cleared too.
func (s *notificationService) MarkAllAsRead(userID string, role models.UserRole) error {
	if err := s.notificationRepo.MarkAllAsRead(userID, officerBroadcast(role)); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) GetUnreadCount(userID string, role models.UserRole) (int64, error) {
	count, err := s.notificationRepo.UnreadCount(userID, officerBroadcast(role))
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
