package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/maninivas13/farmasthi/internal/models"
)

var (
	ErrQueryNotFound = errors.New("query not found")
	// ErrQueryNotOpen is returned when a conditional status update found the
	// query in a different state than the transition requires.
	ErrQueryNotOpen   = errors.New("query is not open")
	ErrQueryNotActive = errors.New("query is not assigned or resolved")
	ErrQueryClosed    = errors.New("query is closed")
)

// QueryFilter narrows history listings.
type QueryFilter struct {
	FarmerID string
	Status   models.QueryStatus
	Limit    int
}

// QueryStatistics is the raw aggregate for the officer dashboard.
type QueryStatistics struct {
	Total    int64 `json:"total"`
	Open     int64 `json:"open"`
	Assigned int64 `json:"assigned"`
	Resolved int64 `json:"resolved"`
	Urgent   int64 `json:"urgent"`
}

type QueryRepository interface {
	Create(query *models.Query) error
	FindByID(id string) (*models.Query, error)
	Find(filter QueryFilter) ([]models.Query, error)

	// AssignIfOpen performs the conditional open -> assigned update. It only
	// succeeds if the query is still open at update time, so two concurrent
	// assignments resolve to exactly one winner.
	AssignIfOpen(queryID, officerID, officerName string) (*models.Query, error)

	// SaveReply stores the reply on an assigned or resolved query, optionally
	// transitioning to resolved.
	SaveReply(queryID, reply string, markResolved bool) (*models.Query, error)

	// CloseIfActive transitions any non-terminal query to closed.
	CloseIfActive(queryID string) (*models.Query, error)

	Statistics() (*QueryStatistics, error)
}

type QueryRepositoryImpl struct {
	db *gorm.DB
}

func NewQueryRepository(db *gorm.DB) QueryRepository {
	return &QueryRepositoryImpl{db: db}
}

func (r *QueryRepositoryImpl) Create(query *models.Query) error {
	return r.db.Create(query).Error
}

func (r *QueryRepositoryImpl) FindByID(id string) (*models.Query, error) {
	var query models.Query
	err := r.db.First(&query, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQueryNotFound
		}
		return nil, err
	}
	return &query, nil
}

func (r *QueryRepositoryImpl) Find(filter QueryFilter) ([]models.Query, error) {
	q := r.db.Model(&models.Query{}).Order("created_at DESC")

	if filter.FarmerID != "" {
		q = q.Where("farmer_id = ?", filter.FarmerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var queries []models.Query
	if err := q.Find(&queries).Error; err != nil {
		return nil, err
	}
	return queries, nil
}

func (r *QueryRepositoryImpl) AssignIfOpen(queryID, officerID, officerName string) (*models.Query, error) {
	res := r.db.Model(&models.Query{}).
		Where("id = ? AND status = ?", queryID, models.QueryStatusOpen).
		Updates(map[string]interface{}{
			"status":       models.QueryStatusAssigned,
			"assigned_to":  officerID,
			"officer_name": officerName,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing query from a lost race.
		if _, err := r.FindByID(queryID); err != nil {
			return nil, err
		}
		return nil, ErrQueryNotOpen
	}
	return r.FindByID(queryID)
}

func (r *QueryRepositoryImpl) SaveReply(queryID, reply string, markResolved bool) (*models.Query, error) {
	updates := map[string]interface{}{
		"reply": reply,
	}
	if markResolved {
		updates["status"] = models.QueryStatusResolved
	}

	res := r.db.Model(&models.Query{}).
		Where("id = ? AND status IN ?", queryID,
			[]models.QueryStatus{models.QueryStatusAssigned, models.QueryStatusResolved}).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(queryID); err != nil {
			return nil, err
		}
		return nil, ErrQueryNotActive
	}
	return r.FindByID(queryID)
}

func (r *QueryRepositoryImpl) CloseIfActive(queryID string) (*models.Query, error) {
	res := r.db.Model(&models.Query{}).
		Where("id = ? AND status <> ?", queryID, models.QueryStatusClosed).
		Update("status", models.QueryStatusClosed)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(queryID); err != nil {
			return nil, err
		}
		return nil, ErrQueryClosed
	}
	return r.FindByID(queryID)
}

func (r *QueryRepositoryImpl) Statistics() (*QueryStatistics, error) {
	stats := &QueryStatistics{}
	model := r.db.Model(&models.Query{})

	if err := model.Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		status models.QueryStatus
		dest   *int64
	}{
		{models.QueryStatusOpen, &stats.Open},
		{models.QueryStatusAssigned, &stats.Assigned},
		{models.QueryStatusResolved, &stats.Resolved},
	}
	for _, c := range counts {
		if err := r.db.Model(&models.Query{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	err := r.db.Model(&models.Query{}).
		Where("urgency IN ? AND status <> ?",
			[]models.QueryUrgency{models.QueryUrgencyHigh, models.QueryUrgencyUrgent},
			models.QueryStatusResolved).
		Count(&stats.Urgent).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
