package models

import (
	"gorm.io/datatypes"
)

// ChatMessage is one exchange with the AI assistant.
type ChatMessage struct {
	BaseModel
	UserID       string         `gorm:"not null;index" json:"user_id"`
	UserMessage  string         `gorm:"not null" json:"user_message"`
	BotResponse  string         `json:"bot_response"`
	Language     string         `gorm:"type:varchar(5);default:'en'" json:"language"`
	ResponseType string         `gorm:"type:varchar(20)" json:"response_type"`
	Data         datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`
	AudioURL     string         `json:"audio_url,omitempty"`
}
