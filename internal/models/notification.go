package models

import (
	"time"

	"gorm.io/datatypes"
)

// RecipientAllOfficers is the role-broadcast recipient token persisted for
// notifications addressed to every officer rather than one user.
const RecipientAllOfficers = "all_officers"

type Notification struct {
	BaseModel
	UserID  string           `gorm:"not null;index" json:"user_id"`
	Type    NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `json:"message"`
	QueryID string           `gorm:"index" json:"query_id,omitempty"`
	Data    datatypes.JSON   `gorm:"type:jsonb" json:"data,omitempty"`
	Read    bool             `gorm:"default:false" json:"read"`
	ReadAt  *time.Time       `json:"read_at,omitempty"`
}
