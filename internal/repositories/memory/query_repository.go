package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maninivas13/farmasthi/internal/models"
	"github.com/maninivas13/farmasthi/internal/repositories"
)

type QueryRepository struct {
	mu      sync.RWMutex
	queries map[string]*models.Query
}

func NewQueryRepository() *QueryRepository {
	return &QueryRepository{queries: make(map[string]*models.Query)}
}

func (r *QueryRepository) Create(query *models.Query) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if query.ID == "" {
		query.ID = uuid.NewString()
	}
	if query.CreatedAt.IsZero() {
		query.CreatedAt = time.Now()
	}

	stored := *query
	r.queries[query.ID] = &stored
	return nil
}

func (r *QueryRepository) FindByID(id string) (*models.Query, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findLocked(id)
}

func (r *QueryRepository) findLocked(id string) (*models.Query, error) {
	query, ok := r.queries[id]
	if !ok {
		return nil, repositories.ErrQueryNotFound
	}
	copied := *query
	return &copied, nil
}

func (r *QueryRepository) Find(filter repositories.QueryFilter) ([]models.Query, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Query
	for _, query := range r.queries {
		if filter.FarmerID != "" && query.FarmerID != filter.FarmerID {
			continue
		}
		if filter.Status != "" && query.Status != filter.Status {
			continue
		}
		result = append(result, *query)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

// AssignIfOpen mirrors the conditional update of the persistent store: the
// mutation happens under the write lock, so concurrent assignments see
// exactly one winner.
func (r *QueryRepository) AssignIfOpen(queryID, officerID, officerName string) (*models.Query, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query, ok := r.queries[queryID]
	if !ok {
		return nil, repositories.ErrQueryNotFound
	}
	if query.Status != models.QueryStatusOpen {
		return nil, repositories.ErrQueryNotOpen
	}

	query.Status = models.QueryStatusAssigned
	query.AssignedTo = officerID
	query.OfficerName = officerName
	query.UpdatedAt = time.Now()

	copied := *query
	return &copied, nil
}

func (r *QueryRepository) SaveReply(queryID, reply string, markResolved bool) (*models.Query, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query, ok := r.queries[queryID]
	if !ok {
		return nil, repositories.ErrQueryNotFound
	}
	if query.Status != models.QueryStatusAssigned && query.Status != models.QueryStatusResolved {
		return nil, repositories.ErrQueryNotActive
	}

	query.Reply = reply
	if markResolved {
		query.Status = models.QueryStatusResolved
	}
	query.UpdatedAt = time.Now()

	copied := *query
	return &copied, nil
}

func (r *QueryRepository) CloseIfActive(queryID string) (*models.Query, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query, ok := r.queries[queryID]
	if !ok {
		return nil, repositories.ErrQueryNotFound
	}
	if query.Status == models.QueryStatusClosed {
		return nil, repositories.ErrQueryClosed
	}

	query.Status = models.QueryStatusClosed
	query.UpdatedAt = time.Now()

	copied := *query
	return &copied, nil
}

func (r *QueryRepository) Statistics() (*repositories.QueryStatistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &repositories.QueryStatistics{}
	for _, query := range r.queries {
		stats.Total++
		switch query.Status {
		case models.QueryStatusOpen:
			stats.Open++
		case models.QueryStatusAssigned:
			stats.Assigned++
		case models.QueryStatusResolved:
			stats.Resolved++
		}
		urgent := query.Urgency == models.QueryUrgencyHigh || query.Urgency == models.QueryUrgencyUrgent
		if urgent && query.Status != models.QueryStatusResolved {
			stats.Urgent++
		}
	}
	return stats, nil
}
