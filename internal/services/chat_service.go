package services

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/maninivas13/farmasthi/internal/chatbot"
	"github.com/maninivas13/farmasthi/internal/logger"
	"github.com/maninivas13/farmasthi/internal/models"
	"github.com/maninivas13/farmasthi/internal/repositories"
	"github.com/maninivas13/farmasthi/internal/services/dto"
	"github.com/maninivas13/farmasthi/pkg/apperrors"
)

type ChatService interface {
	SendMessage(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error)
	GetHistory(userID string, limit int) (*dto.ChatHistoryResponse, error)
	ClearHistory(userID string) (int64, error)
}

type chatService struct {
	chatRepo  repositories.ChatRepository
	userRepo  repositories.UserRepository
	assistant *chatbot.Assistant
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	userRepo repositories.UserRepository,
	assistant *chatbot.Assistant,
) ChatService {
	return &chatService{
		chatRepo:  chatRepo,
		userRepo:  userRepo,
		assistant: assistant,
	}
}

func (s *chatService) SendMessage(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	language := req.Language
	if language == "" {
		language = "en"
	}

	qctx := &chatbot.QuestionContext{
		Location: req.Location,
		CropType: req.CropType,
	}
	if qctx.Location == "" {
		if user, err := s.userRepo.FindByID(userID); err == nil {
			qctx.Location = user.Location
		}
	}

	answer, err := s.assistant.Reply(ctx, req.Message, language, qctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	message := &models.ChatMessage{
		UserID:       userID,
		UserMessage:  req.Message,
		BotResponse:  answer.Text,
		Language:     language,
		ResponseType: answer.Type,
	}
	if answer.Data != nil {
		if raw, err := json.Marshal(answer.Data); err == nil {
			message.Data = datatypes.JSON(raw)
		}
	}

	// History is best-effort; the farmer still gets the answer.
	if err := s.chatRepo.Create(message); err != nil {
		logger.Warn("failed to persist chat message", "user_id", userID, "error", err.Error())
	}

	return &dto.ChatResponse{
		Response: answer.Text,
		Type:     answer.Type,
		Language: language,
		Data:     answer.Data,
	}, nil
}

func (s *chatService) GetHistory(userID string, limit int) (*dto.ChatHistoryResponse, error) {
	messages, err := s.chatRepo.FindByUser(userID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ChatHistoryResponse{
		Messages: messages,
		Total:    len(messages),
	}, nil
}

func (s *chatService) ClearHistory(userID string) (int64, error) {
	deleted, err := s.chatRepo.DeleteByUser(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return deleted, nil
}
