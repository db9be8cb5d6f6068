package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/maninivas13/farmasthi/internal/events"
	"github.com/maninivas13/farmasthi/internal/logger"
	"github.com/maninivas13/farmasthi/internal/models"
	"github.com/maninivas13/farmasthi/internal/repositories"
)

// Delivery pushes messages to live WebSocket connections. Satisfied by
// *ws.Registry; kept as an interface so the router is testable without
// real sockets.
type Delivery interface {
	SendToUser(userID string, message any)
	BroadcastToRole(role models.UserRole, message any)
	BroadcastAll(message any)
}

// NotificationFramer wraps a persisted notification into the wire frame
// sent over WebSocket connections.
type NotificationFramer func(n *models.Notification) any

// NotifierService routes query lifecycle events: it persists a
// notification row, then pushes the frame to the sockets of everyone it
// concerns. Persistence comes first so an offline recipient can still
// fetch the notification later.
type NotifierService interface {
	Route(event events.Event) error
}

type notifierService struct {
	notificationRepo repositories.NotificationRepository
	delivery         Delivery
	frame            NotificationFramer
}

func NewNotifierService(
	notificationRepo repositories.NotificationRepository,
	delivery Delivery,
	frame NotificationFramer,
) NotifierService {
	return &notifierService{
		notificationRepo: notificationRepo,
		delivery:         delivery,
		frame:            frame,
	}
}

func (s *notifierService) Route(event events.Event) error {
	switch e := event.(type) {
	case events.QuerySubmitted:
		return s.routeSubmitted(e.Query)
	case events.QueryAssigned:
		return s.routeToFarmer(e.Query, models.NotificationQueryAssigned,
			"Query Assigned",
			fmt.Sprintf("Your query has been assigned to %s", e.Query.OfficerName))
	case events.QueryReplied:
		return s.routeToFarmer(e.Query, models.NotificationQueryReplied,
			"New Reply",
			fmt.Sprintf("%s replied to your query", e.Query.OfficerName))
	case events.QueryResolved:
		return s.routeToFarmer(e.Query, models.NotificationQueryResolved,
			"Query Resolved",
			fmt.Sprintf("Your query has been resolved by %s", e.Query.OfficerName))
	default:
		logger.Warn("unroutable event", "event", event.Name())
		return nil
	}
}

// routeSubmitted notifies every officer. A single row with the broadcast
// recipient token is persisted instead of one row per officer.
func (s *notifierService) routeSubmitted(query *models.Query) error {
	notification := &models.Notification{
		UserID:  models.RecipientAllOfficers,
		Type:    models.NotificationQuerySubmitted,
		Title:   "New Query Submitted",
		Message: fmt.Sprintf("New query from %s: %s", query.FarmerName, snippet(query.QueryText, 80)),
		QueryID: query.ID,
		Data:    queryData(query),
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Error("failed to persist notification, delivery skipped",
			"event", "query.submitted", "query_id", query.ID, "error", err.Error())
		return err
	}

	s.delivery.BroadcastToRole(models.UserRoleOfficer, s.frame(notification))
	return nil
}

func (s *notifierService) routeToFarmer(query *models.Query, kind models.NotificationType, title, message string) error {
	notification := &models.Notification{
		UserID:  query.FarmerID,
		Type:    kind,
		Title:   title,
		Message: message,
		QueryID: query.ID,
		Data:    queryData(query),
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Error("failed to persist notification, delivery skipped",
			"event", string(kind), "query_id", query.ID, "error", err.Error())
		return err
	}

	s.delivery.SendToUser(query.FarmerID, s.frame(notification))
	return nil
}

func queryData(query *models.Query) datatypes.JSON {
	raw, err := json.Marshal(map[string]any{
		"query_id": query.ID,
		"status":   query.Status,
		"urgency":  query.Urgency,
		"category": query.Category,
	})
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func snippet(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
