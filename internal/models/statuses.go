package models

type UserRole string
type QueryStatus string
type QueryUrgency string
type QueryCategory string
type NotificationType string

const (
	UserRoleFarmer  UserRole = "farmer"
	UserRoleOfficer UserRole = "officer"
	UserRoleAdmin   UserRole = "admin"

	QueryStatusOpen     QueryStatus = "open"
	QueryStatusAssigned QueryStatus = "assigned"
	QueryStatusResolved QueryStatus = "resolved"
	QueryStatusClosed   QueryStatus = "closed"

	QueryUrgencyNormal QueryUrgency = "normal"
	QueryUrgencyHigh   QueryUrgency = "high"
	QueryUrgencyUrgent QueryUrgency = "urgent"

	QueryCategoryPest     QueryCategory = "pest"
	QueryCategoryDisease  QueryCategory = "disease"
	QueryCategoryNutrient QueryCategory = "nutrient"
	QueryCategoryWeather  QueryCategory = "weather"
	QueryCategoryMarket   QueryCategory = "market"
	QueryCategoryGeneral  QueryCategory = "general"

	NotificationQuerySubmitted NotificationType = "query_submitted"
	NotificationQueryAssigned  NotificationType = "query_assigned"
	NotificationQueryReplied   NotificationType = "query_replied"
	NotificationQueryResolved  NotificationType = "query_resolved"
	NotificationSystem         NotificationType = "system"
)

// IsTerminal reports whether no further transition is allowed from the status.
func (s QueryStatus) IsTerminal() bool {
	return s == QueryStatusClosed
}
