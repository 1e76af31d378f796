// Package main provides the FormForge API server implementation.
package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/formforge/formforge/pkg/eventbus"
	"github.com/formforge/formforge/pkg/events"
	"github.com/formforge/formforge/pkg/persistence"
	"github.com/formforge/formforge/pkg/services"
	"github.com/formforge/formforge/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	eventBus eventbus.EventBus,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		eventBus:    eventBus,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// SubscribeEvents registers audit logging for journey change events and
// starts consuming from the event bus.
func (a *API) SubscribeEvents(ctx context.Context) error {
	err := a.eventBus.Handle(events.JourneyCreatedEvent, func(ctx context.Context, event any) error {
		created, ok := event.(*events.JourneyCreated)
		if !ok {
			return nil
		}

		a.logger.InfoContext(ctx, "Journey created",
			"journey", created.Journey, "type", created.JourneyType,
			"fields", created.FieldCount, "actor", created.Actor)

		return nil
	})
	if err != nil {
		return err
	}

	err = a.eventBus.Handle(events.JourneySavedEvent, func(ctx context.Context, event any) error {
		saved, ok := event.(*events.JourneySaved)
		if !ok {
			return nil
		}

		a.logger.InfoContext(ctx, "Journey saved",
			"journey", saved.Journey, "fields", saved.FieldCount, "actor", saved.Actor)

		return nil
	})
	if err != nil {
		return err
	}

	err = a.eventBus.Handle(events.JourneyDeletedEvent, func(ctx context.Context, event any) error {
		deleted, ok := event.(*events.JourneyDeleted)
		if !ok {
			return nil
		}

		a.logger.InfoContext(ctx, "Journey deleted",
			"journey", deleted.Journey, "actor", deleted.Actor)

		return nil
	})
	if err != nil {
		return err
	}

	return a.eventBus.Subscribe(ctx)
}

func (a *API) App() *fiber.App {
	journeyService := services.NewJourney(a.persistence, a.eventBus, a.logger)

	handlers := web.NewAPIHandlers(journeyService, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("FormForge API")
	})

	j := app.Group("/journeys")
	j.Get("/", handlers.GetJourneys)
	j.Post("/", handlers.CreateJourney)
	j.Post("/import", handlers.ImportJourney)
	j.Get("/:name", handlers.GetJourney)
	j.Delete("/:name", handlers.DeleteJourney)
	j.Put("/:name/fields", handlers.SaveFields)
	j.Get("/:name/export", handlers.ExportJourney)
	j.Post("/:name/preview", handlers.PreviewJourney)

	// Field-level editing endpoints:
	j.Post("/:name/fields", handlers.AddField)
	j.Patch("/:name/fields/:id", handlers.PatchField)
	j.Put("/:name/fields/:id/type", handlers.ChangeFieldType)
	j.Delete("/:name/fields/:id", handlers.DeleteField)
	j.Get("/:name/fields/:id/triggers", handlers.GetTriggerCandidates)
	j.Post("/:name/fields/reorder", handlers.ReorderField)
	j.Post("/:name/sections/move", handlers.MoveSection)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
