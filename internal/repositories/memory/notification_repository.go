package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maninivas13/farmasthi/internal/models"
	"github.com/maninivas13/farmasthi/internal/repositories"
)

type NotificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]*models.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{notifications: make(map[string]*models.Notification)}
}

func (r *NotificationRepository) Create(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	stored := *notification
	r.notifications[notification.ID] = &stored
	return nil
}

func (r *NotificationRepository) FindByID(id string) (*models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notification, ok := r.notifications[id]
	if !ok {
		return nil, repositories.ErrNotificationNotFound
	}
	copied := *notification
	return &copied, nil
}

func (r *NotificationRepository) matches(n *models.Notification, userID string, includeBroadcast bool) bool {
	if n.UserID == userID {
		return true
	}
	return includeBroadcast && n.UserID == models.RecipientAllOfficers
}

func (r *NotificationRepository) FindUserNotifications(userID string, criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Notification
	for _, n := range r.notifications {
		if !r.matches(n, userID, criteria.IncludeOfficerBroadcast) {
			continue
		}
		if criteria.UnreadOnly && n.Read {
			continue
		}
		result = append(result, *n)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	total := int64(len(result))

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start >= len(result) {
		return []models.Notification{}, total, nil
	}
	end := start + pageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

func (r *NotificationRepository) MarkAsRead(notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notification, ok := r.notifications[notificationID]
	if !ok {
		return repositories.ErrNotificationNotFound
	}
	now := time.Now()
	notification.Read = true
	notification.ReadAt = &now
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(userID string, includeOfficerBroadcast bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, n := range r.notifications {
		if r.matches(n, userID, includeOfficerBroadcast) && !n.Read {
			n.Read = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (r *NotificationRepository) UnreadCount(userID string, includeOfficerBroadcast bool) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, n := range r.notifications {
		if r.matches(n, userID, includeOfficerBroadcast) && !n.Read {
			count++
		}
	}
	return count, nil
}
