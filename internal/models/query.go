package models

// Query is a farmer's agricultural question moving through
// open -> assigned -> resolved, with closed as the administrative
// terminal state.
type Query struct {
	BaseModel
	FarmerID   string        `gorm:"not null;index" json:"farmer_id"`
	FarmerName string        `gorm:"not null" json:"farmer_name"`
	Location   string        `json:"location,omitempty"`
	CropType   string        `json:"crop_type,omitempty"`
	QueryText  string        `gorm:"not null" json:"query_text"`
	Category   QueryCategory `gorm:"type:varchar(20);default:'general'" json:"category"`
	Urgency    QueryUrgency  `gorm:"type:varchar(20);default:'normal';index" json:"urgency"`
	ImagePath  string        `json:"image_path,omitempty"`
	AudioPath  string        `json:"audio_path,omitempty"`
	Status     QueryStatus   `gorm:"type:varchar(20);default:'open';index" json:"status"`

	// Set on assignment, never cleared afterwards.
	AssignedTo  string `gorm:"index" json:"assigned_to,omitempty"`
	OfficerName string `json:"officer_name,omitempty"`

	Reply      string `json:"reply,omitempty"`
	AIAnalysis string `json:"ai_analysis,omitempty"`
}
