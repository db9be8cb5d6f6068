package repositories

import (
	"gorm.io/gorm"

	"github.com/maninivas13/farmasthi/internal/models"
)

type ChatRepository interface {
	Create(message *models.ChatMessage) error
	FindByUser(userID string, limit int) ([]models.ChatMessage, error)
	DeleteByUser(userID string) (int64, error)
}

type ChatRepositoryImpl struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &ChatRepositoryImpl{db: db}
}

func (r *ChatRepositoryImpl) Create(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

func (r *ChatRepositoryImpl) FindByUser(userID string, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 20
	}
	var messages []models.ChatMessage
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *ChatRepositoryImpl) DeleteByUser(userID string) (int64, error) {
	res := r.db.Where("user_id = ?", userID).Delete(&models.ChatMessage{})
	return res.RowsAffected, res.Error
}
