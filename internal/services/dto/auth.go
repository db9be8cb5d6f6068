package dto

import (
	"time"

	"github.com/maninivas13/farmasthi/internal/models"
)

// ---------------- Requests ----------------

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Phone    string          `json:"phone" validate:"required,phone"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     models.UserRole `json:"role" validate:"required,oneof=farmer officer"`

	// Farmer fields
	Location string `json:"location,omitempty" validate:"omitempty,max=100"`

	// Officer fields
	Department string `json:"department,omitempty" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Phone    string          `json:"phone" validate:"required,phone"`
	Password string          `json:"password" validate:"required"`
	Role     models.UserRole `json:"role" validate:"required,oneof=farmer officer admin"`
}

// ---------------- Responses ----------------

type AuthResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        UserDTO `json:"user"`
}

type UserDTO struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Role       models.UserRole `json:"role"`
	Location   string          `json:"location,omitempty"`
	Department string          `json:"department,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Name:       u.Name,
		Phone:      u.Phone,
		Role:       u.Role,
		Location:   u.Location,
		Department: u.Department,
		CreatedAt:  u.CreatedAt,
	}
}
