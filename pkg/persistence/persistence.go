// Package persistence provides the data storage abstraction for journeys.
package persistence

import (
	"context"

	"github.com/formforge/formforge/pkg/models"
)

// Persistence stores journey records keyed by their unique name. The core
// assumes nothing about backend latency or failure beyond "eventually
// completes or returns an error"; callers keep their in-memory state on
// failure so no edit is lost.
type Persistence interface {
	Journeys(ctx context.Context) ([]*models.Journey, error)
	JourneyByName(ctx context.Context, name string) (*models.Journey, error)
	SaveJourney(ctx context.Context, journey *models.Journey) error
	DeleteJourney(ctx context.Context, name string) error
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
