// Package redis provides a Redis-backed persistence implementation for
// journeys.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/formforge/formforge/pkg/models"
	"github.com/formforge/formforge/pkg/persistence"
	backend "github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "formforge:journey:"
	indexKey  = "formforge:journeys"
)

// Persistence implements persistence.Persistence on Redis: one JSON value
// per journey plus a set indexing the known names.
type Persistence struct {
	client backend.UniversalClient
}

// NewPersistence connects using a redis:// URL.
func NewPersistence(databaseURL string) (*Persistence, error) {
	opts, err := backend.ParseURL(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	return &Persistence{client: backend.NewClient(opts)}, nil
}

// NewFromClient wraps an existing client, used by tests.
func NewFromClient(client backend.UniversalClient) *Persistence {
	return &Persistence{client: client}
}

func journeyKey(name string) string {
	return keyPrefix + name
}

// Journeys loads every indexed journey.
func (p *Persistence) Journeys(ctx context.Context) ([]*models.Journey, error) {
	names, err := p.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list journeys: %w", err)
	}

	journeys := make([]*models.Journey, 0, len(names))

	for _, name := range names {
		journey, err := p.JourneyByName(ctx, name)
		if err != nil {
			return nil, err
		}

		if journey != nil {
			journeys = append(journeys, journey)
		}
	}

	return journeys, nil
}

// JourneyByName returns (nil, nil) for an unknown name, mirroring the file
// backend.
func (p *Persistence) JourneyByName(ctx context.Context, name string) (*models.Journey, error) {
	body, err := p.client.Get(ctx, journeyKey(name)).Bytes()
	if err != nil {
		if err == backend.Nil {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch journey %s: %w", name, err)
	}

	var journey models.Journey
	if err := json.Unmarshal(body, &journey); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journey %s: %w", name, err)
	}

	return &journey, nil
}

// SaveJourney writes the journey value and its index entry atomically.
func (p *Persistence) SaveJourney(ctx context.Context, journey *models.Journey) error {
	data, err := json.Marshal(journey)
	if err != nil {
		return fmt.Errorf("failed to marshal journey %s: %w", journey.Name, err)
	}

	pipe := p.client.TxPipeline()
	pipe.Set(ctx, journeyKey(journey.Name), data, 0)
	pipe.SAdd(ctx, indexKey, journey.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save journey %s: %w", journey.Name, err)
	}

	return nil
}

// DeleteJourney removes the value and its index entry.
func (p *Persistence) DeleteJourney(ctx context.Context, name string) error {
	removed, err := p.client.Del(ctx, journeyKey(name)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete journey %s: %w", name, err)
	}

	if err := p.client.SRem(ctx, indexKey, name).Err(); err != nil {
		return fmt.Errorf("failed to unindex journey %s: %w", name, err)
	}

	if removed == 0 {
		return persistence.NewJourneyError("Delete", name, persistence.ErrJourneyNotFound)
	}

	return nil
}

// HealthCheck pings the server.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close releases the client connection.
func (p *Persistence) Close(_ context.Context) error {
	return p.client.Close()
}
