package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maninivas13/farmasthi/internal/models"
)

type ChatRepository struct {
	mu       sync.RWMutex
	messages map[string]*models.ChatMessage
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{messages: make(map[string]*models.ChatMessage)}
}

func (r *ChatRepository) Create(message *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	stored := *message
	r.messages[message.ID] = &stored
	return nil
}

func (r *ChatRepository) FindByUser(userID string, limit int) ([]models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	var result []models.ChatMessage
	for _, m := range r.messages {
		if m.UserID == userID {
			result = append(result, *m)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *ChatRepository) DeleteByUser(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, m := range r.messages {
		if m.UserID == userID {
			delete(r.messages, id)
			deleted++
		}
	}
	return deleted, nil
}
