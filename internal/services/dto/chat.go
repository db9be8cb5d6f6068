package dto

import (
	"github.com/maninivas13/farmasthi/internal/models"
)

// ---------------- Requests ----------------

type ChatRequest struct {
	Message  string `json:"message" validate:"required,min=1,max=1000"`
	Language string `json:"language,omitempty" validate:"omitempty,oneof=en hi"`
	Location string `json:"location,omitempty" validate:"omitempty,max=100"`
	CropType string `json:"crop_type,omitempty" validate:"omitempty,max=50"`
}

// ---------------- Responses ----------------

type ChatResponse struct {
	Response string         `json:"response"`
	Type     string         `json:"type"`
	Language string         `json:"language"`
	Data     map[string]any `json:"data,omitempty"`
}

type ChatHistoryResponse struct {
	Messages []models.ChatMessage `json:"messages"`
	Total    int                  `json:"total"`
}

type ClearHistoryResponse struct {
	Deleted int64 `json:"deleted"`
}
