package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maninivas13/farmasthi/internal/events"
	"github.com/maninivas13/farmasthi/internal/models"
	"github.com/maninivas13/farmasthi/internal/repositories"
	"github.com/maninivas13/farmasthi/internal/repositories/memory"
)

// failingNotificationRepo rejects every write.
type failingNotificationRepo struct{}

var errStoreDown = errors.New("store down")

func (failingNotificationRepo) Create(*models.Notification) error { return errStoreDown }
func (failingNotificationRepo) FindByID(string) (*models.Notification, error) {
	return nil, errStoreDown
}
func (failingNotificationRepo) FindUserNotifications(string, repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	return nil, 0, errStoreDown
}
func (failingNotificationRepo) MarkAsRead(string) error          { return errStoreDown }
func (failingNotificationRepo) MarkAllAsRead(string, bool) error { return errStoreDown }
func (failingNotificationRepo) UnreadCount(string, bool) (int64, error) {
	return 0, errStoreDown
}

func testQuery(farmerID string) *models.Query {
	return &models.Query{
		FarmerID:    farmerID,
		FarmerName:  "Ravi",
		QueryText:   "Brown spots spreading across my rice paddy",
		Status:      models.QueryStatusAssigned,
		AssignedTo:  "officer-1",
		OfficerName: "Anita",
	}
}

func TestNotifier_PersistsBeforeDelivering(t *testing.T) {
	t.Parallel()

	notifications := memory.NewNotificationRepository()
	delivery := &stubDelivery{}
	notifier := NewNotifierService(notifications, delivery, func(n *models.Notification) any { return n })

	query := testQuery("farmer-1")
	require.NoError(t, notifier.Route(events.QueryAssigned{Query: query}))

	require.Equal(t, 1, delivery.sendCount())
	delivered, ok := delivery.sends[0].message.(*models.Notification)
	require.True(t, ok)

	// The delivered frame wraps the already-persisted record.
	assert.NotEmpty(t, delivered.ID)
	stored, err := notifications.FindByID(delivered.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationQueryAssigned, stored.Type)
	assert.Equal(t, "farmer-1", stored.UserID)
}

func TestNotifier_PersistFailureSkipsDelivery(t *testing.T) {
	t.Parallel()

	delivery := &stubDelivery{}
	notifier := NewNotifierService(failingNotificationRepo{}, delivery, func(n *models.Notification) any { return n })

	err := notifier.Route(events.QueryAssigned{Query: testQuery("farmer-1")})
	assert.Error(t, err)
	assert.Zero(t, delivery.sendCount())
}

func TestNotifier_SubmittedBroadcastsToOfficers(t *testing.T) {
	t.Parallel()

	notifications := memory.NewNotificationRepository()
	delivery := &stubDelivery{}
	notifier := NewNotifierService(notifications, delivery, func(n *models.Notification) any { return n })

	query := testQuery("farmer-1")
	query.Status = models.QueryStatusOpen
	require.NoError(t, notifier.Route(events.QuerySubmitted{Query: query}))

	require.Len(t, delivery.broadcasts, 1)
	assert.Equal(t, models.UserRoleOfficer, delivery.broadcasts[0].role)

	stored, ok := delivery.broadcasts[0].message.(*models.Notification)
	require.True(t, ok)
	assert.Equal(t, models.RecipientAllOfficers, stored.UserID)
	assert.Contains(t, stored.Message, "Ravi")
}

func TestNotifier_LongQueryTextIsTruncated(t *testing.T) {
	t.Parallel()

	notifications := memory.NewNotificationRepository()
	delivery := &stubDelivery{}
	notifier := NewNotifierService(notifications, delivery, func(n *models.Notification) any { return n })

	query := testQuery("farmer-1")
	query.Status = models.QueryStatusOpen
	for len(query.QueryText) < 500 {
		query.QueryText += " and the spots keep spreading further every day"
	}
	require.NoError(t, notifier.Route(events.QuerySubmitted{Query: query}))

	stored, ok := delivery.broadcasts[0].message.(*models.Notification)
	require.True(t, ok)
	assert.Less(t, len(stored.Message), 200)
	assert.Contains(t, stored.Message, "...")
}
