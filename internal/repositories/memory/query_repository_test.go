package memory

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maninivas13/farmasthi/internal/models"
	"github.com/maninivas13/farmasthi/internal/repositories"
)

func openQuery(t *testing.T, repo *QueryRepository) *models.Query {
	t.Helper()
	query := &models.Query{
		FarmerID:   "farmer-1",
		FarmerName: "Ravi",
		QueryText:  "Brown spots spreading across my rice paddy",
		Status:     models.QueryStatusOpen,
	}
	require.NoError(t, repo.Create(query))
	return query
}

func TestQueryRepository_ConcurrentAssignSingleWinner(t *testing.T) {
	t.Parallel()

	repo := NewQueryRepository()
	query := openQuery(t, repo)

	const officers = 16
	var wg sync.WaitGroup
	var winners, conflicts int
	var mu sync.Mutex

	for i := 0; i < officers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := repo.AssignIfOpen(query.ID, fmt.Sprintf("officer-%d", n), fmt.Sprintf("Officer %d", n))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners++
			case errors.Is(err, repositories.ErrQueryNotOpen):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, officers-1, conflicts)

	current, err := repo.FindByID(query.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QueryStatusAssigned, current.Status)
	assert.NotEmpty(t, current.AssignedTo)
}

func TestQueryRepository_SaveReplyRequiresActiveQuery(t *testing.T) {
	t.Parallel()

	repo := NewQueryRepository()
	query := openQuery(t, repo)

	_, err := repo.SaveReply(query.ID, "reply before assignment", false)
	assert.ErrorIs(t, err, repositories.ErrQueryNotActive)

	_, err = repo.AssignIfOpen(query.ID, "officer-1", "Anita")
	require.NoError(t, err)

	replied, err := repo.SaveReply(query.ID, "Spray tricyclazole at the label rate.", true)
	require.NoError(t, err)
	assert.Equal(t, models.QueryStatusResolved, replied.Status)

	// Replying again to a resolved query updates the reply in place.
	replied, err = repo.SaveReply(query.ID, "Also drain the field for three days.", false)
	require.NoError(t, err)
	assert.Equal(t, models.QueryStatusResolved, replied.Status)
	assert.Contains(t, replied.Reply, "drain")
}

func TestQueryRepository_CloseIfActive(t *testing.T) {
	t.Parallel()

	repo := NewQueryRepository()
	query := openQuery(t, repo)

	closed, err := repo.CloseIfActive(query.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QueryStatusClosed, closed.Status)

	_, err = repo.CloseIfActive(query.ID)
	assert.ErrorIs(t, err, repositories.ErrQueryClosed)

	_, err = repo.CloseIfActive("missing")
	assert.ErrorIs(t, err, repositories.ErrQueryNotFound)
}

func TestQueryRepository_FindFilters(t *testing.T) {
	t.Parallel()

	repo := NewQueryRepository()
	first := openQuery(t, repo)
	second := &models.Query{
		FarmerID:   "farmer-2",
		FarmerName: "Sita",
		QueryText:  "Whitefly infestation on my cotton crop",
		Status:     models.QueryStatusOpen,
	}
	require.NoError(t, repo.Create(second))
	_, err := repo.AssignIfOpen(second.ID, "officer-1", "Anita")
	require.NoError(t, err)

	mine, err := repo.Find(repositories.QueryFilter{FarmerID: "farmer-1"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	assigned, err := repo.Find(repositories.QueryFilter{Status: models.QueryStatusAssigned})
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, second.ID, assigned[0].ID)

	limited, err := repo.Find(repositories.QueryFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestQueryRepository_StatisticsCountsBothUrgencyTiers(t *testing.T) {
	t.Parallel()

	repo := NewQueryRepository()
	seed := func(urgency models.QueryUrgency, status models.QueryStatus) {
		require.NoError(t, repo.Create(&models.Query{
			FarmerID:  "farmer-1",
			QueryText: "Brown spots spreading across my rice paddy",
			Urgency:   urgency,
			Status:    status,
		}))
	}

	seed(models.QueryUrgencyNormal, models.QueryStatusOpen)
	seed(models.QueryUrgencyHigh, models.QueryStatusOpen)
	seed(models.QueryUrgencyUrgent, models.QueryStatusAssigned)
	// Resolved queries no longer need attention, whatever their urgency.
	seed(models.QueryUrgencyUrgent, models.QueryStatusResolved)

	stats, err := repo.Statistics()
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Urgent)
}
