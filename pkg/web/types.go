// Package web provides HTTP request and response types for the journey API.
package web

import (
	"encoding/json"

	"github.com/formforge/formforge/pkg/models"
	"github.com/formforge/formforge/pkg/visibility"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// CreateJourneyRequest represents the request body for creating a new
// journey. Fields imports a schema wholesale; CloneFrom copies another
// journey, optionally filtered down to the named integrations. With
// neither set the journey starts from the default section.
type CreateJourneyRequest struct {
	Name         string         `json:"name"                   validate:"required,min=1"`
	Type         string         `json:"type,omitempty"         validate:"omitempty,oneof=standard admin"`
	CreatedBy    string         `json:"createdBy,omitempty"`
	Fields       []models.Field `json:"fields,omitempty"`
	CloneFrom    string         `json:"cloneFrom,omitempty"`
	Integrations []string       `json:"integrations,omitempty"`
}

// SaveFieldsRequest represents the request body for replacing a journey's
// field tree wholesale.
type SaveFieldsRequest struct {
	Fields     []models.Field `json:"fields"     validate:"required"`
	ModifiedBy string         `json:"modifiedBy,omitempty"`
}

// AddFieldRequest represents the request body for inserting a new field.
type AddFieldRequest struct {
	Type       string `json:"type"               validate:"required"`
	AnchorID   int    `json:"anchorId,omitempty"`
	Position   string `json:"position,omitempty" validate:"omitempty,oneof=above below"`
	ModifiedBy string `json:"modifiedBy,omitempty"`
}

// PatchFieldRequest represents the request body for a partial field update.
// Omitted attributes keep their stored values; a conditional with trigger
// id 0 clears the condition.
type PatchFieldRequest struct {
	Label               *string           `json:"label,omitempty"`
	Mandatory           *bool             `json:"mandatory,omitempty"`
	FMA                 *bool             `json:"fma,omitempty"`
	Bold                *bool             `json:"bold,omitempty"`
	Multiselect         *bool             `json:"multiselect,omitempty"`
	NumbersOnly         *bool             `json:"numbersOnly,omitempty"`
	AllowInternational  *bool             `json:"allowInternational,omitempty"`
	Tiptext             *string           `json:"tiptext,omitempty"`
	Options             []string          `json:"options,omitempty"`
	MaxEntries          *int              `json:"maxEntries,omitempty"`
	RepeaterButtonLabel *string           `json:"repeaterButtonLabel,omitempty"`
	Conditional         *models.Condition `json:"conditional,omitempty"`
	ModifiedBy          string            `json:"modifiedBy,omitempty"`
}

// ChangeFieldTypeRequest represents the request body for swapping a
// field's type.
type ChangeFieldTypeRequest struct {
	Type       string `json:"type" validate:"required"`
	ModifiedBy string `json:"modifiedBy,omitempty"`
}

// ReorderFieldRequest represents the request body for moving an item
// within one sibling list.
type ReorderFieldRequest struct {
	ParentID   *int   `json:"parentId,omitempty"`
	From       int    `json:"from" validate:"min=0"`
	To         int    `json:"to"   validate:"min=0"`
	ModifiedBy string `json:"modifiedBy,omitempty"`
}

// MoveSectionRequest represents the request body for relocating a whole
// section relative to another.
type MoveSectionRequest struct {
	SourceHeadingID int    `json:"sourceHeadingId" validate:"required,min=1"`
	TargetHeadingID int    `json:"targetHeadingId" validate:"required,min=1"`
	ModifiedBy      string `json:"modifiedBy,omitempty"`
}

// ImportJourneyRequest represents the request body for creating a journey
// from an externally produced schema document.
type ImportJourneyRequest struct {
	Name      string          `json:"name"   validate:"required,min=1"`
	Schema    json.RawMessage `json:"schema" validate:"required"`
	CreatedBy string          `json:"createdBy,omitempty"`
}

// PreviewRequest represents the request body for rendering a journey's
// visible projection. Values are keyed by field id, or by "id@row" for
// repeater children. Rows maps a repeater field id to its row count.
type PreviewRequest struct {
	Values map[string]any `json:"values,omitempty"`
	Mode   string         `json:"mode,omitempty" validate:"omitempty,oneof=DIP FMA"`
	Rows   map[int]int    `json:"rows,omitempty"`
}

func (r PreviewRequest) values() visibility.Values {
	return visibility.Values(r.Values)
}
