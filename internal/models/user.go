package models

type User struct {
	BaseModel
	Name         string   `gorm:"not null" json:"name"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `gorm:"uniqueIndex;not null" json:"phone"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	Location     string   `json:"location,omitempty"`
	Department   string   `json:"department,omitempty"` // officers only
	IsActive     bool     `gorm:"default:true" json:"is_active"`
}
