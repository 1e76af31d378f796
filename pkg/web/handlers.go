// Package web provides HTTP handlers and REST API endpoints for journey management.
package web

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/formforge/formforge/pkg/fieldtree"
	"github.com/formforge/formforge/pkg/models"
	"github.com/formforge/formforge/pkg/persistence"
	"github.com/formforge/formforge/pkg/services"
	"github.com/formforge/formforge/pkg/visibility"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	journeyService *services.Journey
	validator      *validator.Validate
}

func NewAPIHandlers(journeyService *services.Journey, validator *validator.Validate) *APIHandlers {
	return &APIHandlers{
		journeyService: journeyService,
		validator:      validator,
	}
}

// journeyName extracts the journey name path parameter. Names are free
// text, so they arrive percent-encoded.
func journeyName(c fiber.Ctx) string {
	raw := c.Params("name")

	name, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}

	return name
}

func (h *APIHandlers) GetJourneys(c fiber.Ctx) error {
	journeys, err := h.journeyService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"journeys":    journeys,
		"total_count": len(journeys),
	})
}

func (h *APIHandlers) GetJourney(c fiber.Ctx) error {
	name := journeyName(c)
	if name == "" {
		return badRequest(c, "Journey name is required")
	}

	journey, err := h.journeyService.FetchByName(c.Context(), name)
	if err != nil {
		if persistence.IsJourneyNotFound(err) {
			return notFound(c, "Journey not found")
		}

		return internalError(c, err)
	}

	return c.JSON(journey)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.journeyService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "FormForge API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "FormForge API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) CreateJourney(c fiber.Ctx) error {
	var req CreateJourneyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.journeyService.Create(c.Context(), services.CreateRequest{
		Name:         req.Name,
		Type:         models.JourneyType(req.Type),
		CreatedBy:    req.CreatedBy,
		Fields:       req.Fields,
		CloneFrom:    req.CloneFrom,
		Integrations: req.Integrations,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) ImportJourney(c fiber.Ctx) error {
	var req ImportJourneyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.journeyService.Import(c.Context(), req.Name, req.Schema, req.CreatedBy)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) SaveFields(c fiber.Ctx) error {
	name := journeyName(c)
	if name == "" {
		return badRequest(c, "Journey name is required")
	}

	var req SaveFieldsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	journey, err := h.journeyService.Save(c.Context(), name, req.Fields, req.ModifiedBy)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(journey)
}

func (h *APIHandlers) DeleteJourney(c fiber.Ctx) error {
	name := journeyName(c)
	if name == "" {
		return badRequest(c, "Journey name is required")
	}

	err := h.journeyService.Delete(c.Context(), name, c.Query("deletedBy"))
	if err != nil {
		if persistence.IsJourneyNotFound(err) {
			return notFound(c, "Journey not found")
		}

		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) ExportJourney(c fiber.Ctx) error {
	name := journeyName(c)
	if name == "" {
		return badRequest(c, "Journey name is required")
	}

	saved := true

	if savedStr := c.Query("saved"); savedStr != "" {
		parsed, err := strconv.ParseBool(savedStr)
		if err != nil {
			return badRequest(c, "Invalid saved parameter: "+err.Error())
		}

		saved = parsed
	}

	result, err := h.journeyService.Export(c.Context(), name, saved, time.Now())
	if err != nil {
		return handleServiceError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.Filename+`"`)

	return c.JSON(result.Export)
}

func (h *APIHandlers) PreviewJourney(c fiber.Ctx) error {
	name := journeyName(c)
	if name == "" {
		return badRequest(c, "Journey name is required")
	}

	var req PreviewRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	fields, err := h.journeyService.Preview(c.Context(), name, services.PreviewRequest{
		Values: req.values(),
		Mode:   models.Mode(req.Mode),
		Rows:   req.Rows,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"fields": fields})
}

func (h *APIHandlers) AddField(c fiber.Ctx) error {
	name := journeyName(c)
	if name == "" {
		return badRequest(c, "Journey name is required")
	}

	var req AddFieldRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	journey, err := h.journeyService.AddField(c.Context(), name, services.AddFieldRequest{
		Type:     req.Type,
		AnchorID: req.AnchorID,
		Position: fieldtree.Position(req.Position),
	}, req.ModifiedBy)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(journey)
}

func (h *APIHandlers) PatchField(c fiber.Ctx) error {
	name := journeyName(c)
	if name == "" {
		return badRequest(c, "Journey name is required")
	}

	fieldID, err := fieldIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid field id: "+err.Error())
	}

	var req PatchFieldRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	journey, err := h.journeyService.PatchField(c.Context(), name, fieldID, services.FieldPatch{
		Label:               req.Label,
		Mandatory:           req.Mandatory,
		FMA:                 req.FMA,
		Bold:                req.Bold,
		Multiselect:         req.Multiselect,
		NumbersOnly:         req.NumbersOnly,
		AllowInternational:  req.AllowInternational,
		Tiptext:             req.Tiptext,
		Options:             req.Options,
		MaxEntries:          req.MaxEntries,
		RepeaterButtonLabel: req.RepeaterButtonLabel,
		Conditional:         req.Conditional,
	}, req.ModifiedBy)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(journey)
}

func (h *APIHandlers) ChangeFieldType(c fiber.Ctx) error {
	name := journeyName(c)
	if name == "" {
		return badRequest(c, "Journey name is required")
	}

	fieldID, err := fieldIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid field id: "+err.Error())
	}

	var req ChangeFieldTypeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	journey, err := h.journeyService.ChangeFieldType(c.Context(), name, fieldID, req.Type, req.ModifiedBy)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(journey)
}

func (h *APIHandlers) DeleteField(c fiber.Ctx) error {
	name := journeyName(c)
	if name == "" {
		return badRequest(c, "Journey name is required")
	}

	fieldID, err := fieldIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid field id: "+err.Error())
	}

	journey, err := h.journeyService.RemoveField(c.Context(), name, fieldID, c.Query("modifiedBy"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(journey)
}

func (h *APIHandlers) ReorderField(c fiber.Ctx) error {
	name := journeyName(c)
	if name == "" {
		return badRequest(c, "Journey name is required")
	}

	var req ReorderFieldRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	journey, err := h.journeyService.ReorderField(c.Context(), name, req.ParentID, req.From, req.To, req.ModifiedBy)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(journey)
}

func (h *APIHandlers) MoveSection(c fiber.Ctx) error {
	name := journeyName(c)
	if name == "" {
		return badRequest(c, "Journey name is required")
	}

	var req MoveSectionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	journey, err := h.journeyService.MoveSection(c.Context(), name, req.SourceHeadingID, req.TargetHeadingID, req.ModifiedBy)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(journey)
}

// GetTriggerCandidates lists the fields a condition on the given field may
// legally depend on.
func (h *APIHandlers) GetTriggerCandidates(c fiber.Ctx) error {
	name := journeyName(c)
	if name == "" {
		return badRequest(c, "Journey name is required")
	}

	fieldID, err := fieldIDParam(c)
	if err != nil {
		return badRequest(c, "Invalid field id: "+err.Error())
	}

	journey, err := h.journeyService.FetchByName(c.Context(), name)
	if err != nil {
		if persistence.IsJourneyNotFound(err) {
			return notFound(c, "Journey not found")
		}

		return internalError(c, err)
	}

	candidates := visibility.TriggerCandidates(journey.Fields, fieldID)

	return c.JSON(fiber.Map{"candidates": candidates})
}

func fieldIDParam(c fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Params("id"))
}
