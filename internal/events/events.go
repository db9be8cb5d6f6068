// Package events defines the typed domain events emitted by successful
// query state transitions and consumed by the notification router.
package events

import (
	"github.com/maninivas13/farmasthi/internal/models"
)

// Event is a fact about a completed query transition.
type Event interface {
	Name() string
}

// QuerySubmitted is emitted when a farmer creates a query in the open state.
type QuerySubmitted struct {
	Query *models.Query
}

func (QuerySubmitted) Name() string { return "query.submitted" }

// QueryAssigned is emitted on the open -> assigned transition.
type QueryAssigned struct {
	Query *models.Query
}

func (QueryAssigned) Name() string { return "query.assigned" }

// QueryReplied is emitted when an officer replies without resolving.
type QueryReplied struct {
	Query *models.Query
}

func (QueryReplied) Name() string { return "query.replied" }

// QueryResolved is emitted when a reply also resolves the query.
type QueryResolved struct {
	Query *models.Query
}

func (QueryResolved) Name() string { return "query.resolved" }
