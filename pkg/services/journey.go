package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/formforge/formforge/pkg/eventbus"
	"github.com/formforge/formforge/pkg/events"
	"github.com/formforge/formforge/pkg/fieldtree"
	"github.com/formforge/formforge/pkg/models"
	"github.com/formforge/formforge/pkg/persistence"
	"github.com/formforge/formforge/pkg/schemaio"
	"github.com/formforge/formforge/pkg/visibility"
	"github.com/google/uuid"
)

var (
	// ErrJourneyNotFound is returned when a journey is not found.
	ErrJourneyNotFound = persistence.ErrJourneyNotFound
)

type Journey struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	logger      *slog.Logger
}

// NewJourney creates a new journey service. The publisher may be nil when
// change notifications are not needed, e.g. in one-shot CLI tools.
func NewJourney(persistence persistence.Persistence, publisher eventbus.EventPublisher, logger *slog.Logger) *Journey {
	return &Journey{
		persistence: persistence,
		publisher:   publisher,
		logger:      logger,
	}
}

// HealthCheck checks the health of the persistence layer.
func (s *Journey) HealthCheck(ctx context.Context) (string, bool) {
	if s.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := s.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List retrieves all journeys, admin journeys first, then by name.
func (s *Journey) List(ctx context.Context) ([]*models.Journey, error) {
	journeys, err := s.persistence.Journeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list journeys: %w", err)
	}

	sort.SliceStable(journeys, func(i, j int) bool {
		if journeys[i].Type != journeys[j].Type {
			return journeys[i].Type == models.JourneyTypeAdmin
		}

		return journeys[i].Name < journeys[j].Name
	})

	return journeys, nil
}

// FetchByName retrieves a journey by its name.
func (s *Journey) FetchByName(ctx context.Context, name string) (*models.Journey, error) {
	journey, err := s.persistence.JourneyByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if journey == nil {
		return nil, ErrJourneyNotFound
	}

	return journey, nil
}

// CreateRequest carries everything needed to create a journey. Exactly one
// of the optional payloads applies: Fields (imported schema) or CloneFrom
// (copy another journey, optionally filtered by integration). With neither
// set, the journey starts from the default tree.
type CreateRequest struct {
	Name         string `validate:"required"`
	Type         models.JourneyType
	CreatedBy    string
	Fields       []models.Field
	CloneFrom    string
	Integrations []string
}

// Create adds a new journey. Names are unique; a clash is a conflict.
func (s *Journey) Create(ctx context.Context, req CreateRequest) (*models.Journey, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrJourneyNameRequired
	}

	journeyType := req.Type
	if journeyType == "" {
		journeyType = models.JourneyTypeStandard
	}

	if journeyType != models.JourneyTypeStandard && journeyType != models.JourneyTypeAdmin {
		return nil, NewValidationError(
			"Create",
			"INVALID_JOURNEY_TYPE",
			fmt.Sprintf("invalid journey type '%s', allowed: standard, admin", journeyType),
			ErrInvalidJourneyType,
		)
	}

	existing, err := s.persistence.JourneyByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check journey name: %w", err)
	}

	if existing != nil {
		return nil, NewValidationError(
			"Create",
			"JOURNEY_NAME_TAKEN",
			fmt.Sprintf("a journey named '%s' already exists", name),
			ErrJourneyNameTaken,
		)
	}

	fields, err := s.initialFields(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := visibility.ValidateConditions(fields); err != nil {
		return nil, NewValidationError("Create", "INVALID_CONDITION", err.Error(), ErrInvalidCondition)
	}

	journey := &models.Journey{
		ID:             uuid.New().String(),
		Name:           name,
		Fields:         fields,
		Type:           journeyType,
		Timestamp:      time.Now().UTC(),
		CreatedBy:      req.CreatedBy,
		LastModifiedBy: req.CreatedBy,
	}

	if err := s.persistence.SaveJourney(ctx, journey); err != nil {
		return nil, fmt.Errorf("failed to create journey: %w", err)
	}

	s.publish(ctx, events.JourneyCreated{
		BaseEvent:   s.baseEvent(events.JourneyCreatedEvent, journey.Name, req.CreatedBy),
		JourneyType: journey.Type,
		FieldCount:  len(fieldtree.Flatten(journey.Fields)),
	})

	return journey, nil
}

func (s *Journey) initialFields(ctx context.Context, req CreateRequest) ([]models.Field, error) {
	if req.CloneFrom != "" {
		source, err := s.persistence.JourneyByName(ctx, req.CloneFrom)
		if err != nil {
			return nil, fmt.Errorf("failed to load clone source: %w", err)
		}

		if source == nil {
			return nil, NewValidationError(
				"Create",
				"CLONE_SOURCE_NOT_FOUND",
				fmt.Sprintf("clone source '%s' does not exist", req.CloneFrom),
				ErrInvalidRequest,
			)
		}

		return fieldtree.FilterByIntegration(source.Fields, req.Integrations), nil
	}

	if req.Fields != nil {
		return req.Fields, nil
	}

	return models.DefaultFields(), nil
}

// Save replaces a journey's field tree wholesale. The stored record's name
// and creation metadata survive; the modifier and timestamp are refreshed.
func (s *Journey) Save(ctx context.Context, name string, fields []models.Field, modifiedBy string) (*models.Journey, error) {
	journey, err := s.FetchByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := visibility.ValidateConditions(fields); err != nil {
		return nil, NewValidationError("Save", "INVALID_CONDITION", err.Error(), ErrInvalidCondition)
	}

	journey.Fields = fields
	journey.Timestamp = time.Now().UTC()
	journey.LastModifiedBy = modifiedBy

	if err := s.persistence.SaveJourney(ctx, journey); err != nil {
		return nil, fmt.Errorf("failed to save journey: %w", err)
	}

	s.publish(ctx, events.JourneySaved{
		BaseEvent:  s.baseEvent(events.JourneySavedEvent, journey.Name, modifiedBy),
		FieldCount: len(fieldtree.Flatten(journey.Fields)),
	})

	return journey, nil
}

// Delete removes a journey by name.
func (s *Journey) Delete(ctx context.Context, name string, deletedBy string) error {
	existing, err := s.persistence.JourneyByName(ctx, name)
	if err != nil {
		return err
	}

	if existing == nil {
		return ErrJourneyNotFound
	}

	if err := s.persistence.DeleteJourney(ctx, name); err != nil {
		return fmt.Errorf("failed to delete journey: %w", err)
	}

	s.publish(ctx, events.JourneyDeleted{
		BaseEvent: s.baseEvent(events.JourneyDeletedEvent, name, deletedBy),
	})

	return nil
}

// Import parses raw schema JSON and creates a journey from it. The payload
// is rejected wholesale on any structural or conditional defect.
func (s *Journey) Import(ctx context.Context, name string, raw []byte, createdBy string) (*models.Journey, error) {
	fields, err := schemaio.ParseImport(raw)
	if err != nil {
		return nil, NewValidationError("Import", "INVALID_SCHEMA", err.Error(), ErrInvalidSchema)
	}

	return s.Create(ctx, CreateRequest{
		Name:      name,
		CreatedBy: createdBy,
		Fields:    fields,
	})
}

// ExportResult pairs a cleaned export document with its suggested filename.
type ExportResult struct {
	Export   schemaio.Export
	Filename string
}

// Export produces the cleaned, integration-ready projection of a journey.
// Saved reflects whether the client considers its working copy persisted.
func (s *Journey) Export(ctx context.Context, name string, saved bool, at time.Time) (*ExportResult, error) {
	journey, err := s.FetchByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Export:   schemaio.ExportSchema(*journey, at),
		Filename: schemaio.ExportFilename(journey.Name, !saved, at),
	}, nil
}

func (s *Journey) baseEvent(eventType events.EventType, journey, actor string) events.BaseEvent {
	return events.BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Journey:   journey,
		Actor:     actor,
	}
}

func (s *Journey) publish(ctx context.Context, event eventbus.Event) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, string(event.GetType()), event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish journey event",
			"event_type", event.GetType(), "error", err)
	}
}
