package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/maninivas13/farmasthi/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationCriteria narrows notification listings.
type NotificationCriteria struct {
	// IncludeOfficerBroadcast adds rows addressed to the all-officers
	// broadcast token to a per-user listing.
	IncludeOfficerBroadcast bool
	UnreadOnly              bool
	Page                    int
	PageSize                int
}

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByID(id string) (*models.Notification, error)
	FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(notificationID string) error
	MarkAllAsRead(userID string, includeOfficerBroadcast bool) error
	UnreadCount(userID string, includeOfficerBroadcast bool) (int64, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) recipientScope(userID string, includeBroadcast bool) *gorm.DB {
	if includeBroadcast {
		return r.db.Model(&models.Notification{}).
			Where("user_id IN ?", []string{userID, models.RecipientAllOfficers})
	}
	return r.db.Model(&models.Notification{}).Where("user_id = ?", userID)
}

func (r *NotificationRepositoryImpl) FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	q := r.recipientScope(userID, criteria.IncludeOfficerBroadcast)

	if criteria.UnreadOnly {
		q = q.Where("read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var notifications []models.Notification
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *NotificationRepositoryImpl) MarkAsRead(notificationID string) error {
	now := time.Now()
	res := r.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Updates(map[string]interface{}{"read": true, "read_at": &now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string, includeOfficerBroadcast bool) error {
	now := time.Now()
	return r.recipientScope(userID, includeOfficerBroadcast).
		Where("read = ?", false).
		Updates(map[string]interface{}{"read": true, "read_at": &now}).Error
}

func (r *NotificationRepositoryImpl) UnreadCount(userID string, includeOfficerBroadcast bool) (int64, error) {
	var count int64
	err := r.recipientScope(userID, includeOfficerBroadcast).
		Where("read = ?", false).
		Count(&count).Error
	return count, err
}
