package dto

import (
	"github.com/maninivas13/farmasthi/internal/models"
	"github.com/maninivas13/farmasthi/internal/repositories"
)

// ---------------- Requests ----------------

type SubmitQueryRequest struct {
	QueryText string               `json:"query_text" validate:"required,min=10,max=2000"`
	Category  models.QueryCategory `json:"category,omitempty" validate:"omitempty,oneof=pest disease nutrient weather market general"`
	Urgency   models.QueryUrgency  `json:"urgency,omitempty" validate:"omitempty,oneof=normal high urgent"`
	CropType  string               `json:"crop_type,omitempty" validate:"omitempty,max=50"`
	Location  string               `json:"location,omitempty" validate:"omitempty,max=100"`
	ImagePath string               `json:"image_path,omitempty"`
	AudioPath string               `json:"audio_path,omitempty"`
}

type ReplyRequest struct {
	ReplyText    string `json:"reply_text" validate:"required,min=20,max=5000"`
	MarkResolved bool   `json:"mark_resolved"`
}

type ListQueriesRequest struct {
	Status models.QueryStatus `form:"status" validate:"omitempty,oneof=open assigned resolved closed"`
	Limit  int                `form:"limit" validate:"omitempty,min=1,max=100"`
}

// ---------------- Responses ----------------

type QueryListResponse struct {
	Queries []models.Query `json:"queries"`
	Total   int            `json:"total"`
}

type StatisticsResponse struct {
	Total          int64   `json:"total_queries"`
	Open           int64   `json:"open"`
	Assigned       int64   `json:"assigned"`
	Resolved       int64   `json:"resolved"`
	Urgent         int64   `json:"urgent"`
	ResolutionRate float64 `json:"resolution_rate"`
	ActiveOfficers int64   `json:"active_officers"`
}

func NewStatisticsResponse(stats *repositories.QueryStatistics, resolutionRate float64, activeOfficers int64) *StatisticsResponse {
	return &StatisticsResponse{
		Total:          stats.Total,
		Open:           stats.Open,
		Assigned:       stats.Assigned,
		Resolved:       stats.Resolved,
		Urgent:         stats.Urgent,
		ResolutionRate: resolutionRate,
		ActiveOfficers: activeOfficers,
	}
}
