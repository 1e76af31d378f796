package services

import (
	"context"
	"fmt"
	"time"

	"github.com/formforge/formforge/pkg/events"
	"github.com/formforge/formforge/pkg/fieldtree"
	"github.com/formforge/formforge/pkg/models"
	"github.com/formforge/formforge/pkg/visibility"
)

// mutate loads a journey, applies fn to its field tree, validates the
// result and persists it. Every field mutation endpoint funnels through
// here so that conditional integrity is checked on each write.
func (s *Journey) mutate(
	ctx context.Context,
	name string,
	modifiedBy string,
	fn func([]models.Field) ([]models.Field, error),
) (*models.Journey, error) {
	journey, err := s.FetchByName(ctx, name)
	if err != nil {
		return nil, err
	}

	fields, err := fn(journey.Fields)
	if err != nil {
		return nil, err
	}

	if err := visibility.ValidateConditions(fields); err != nil {
		return nil, NewValidationError("mutate", "INVALID_CONDITION", err.Error(), ErrInvalidCondition)
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

// AddFieldRequest describes a new field insertion. AnchorID of 0 appends
// at the end of the root list.
type AddFieldRequest struct {
	Type     string `validate:"required"`
	AnchorID int
	Position fieldtree.Position
}

// AddField inserts a freshly defaulted field of the requested type next to
// the anchor. The new field's id is one greater than the current maximum
// anywhere in the tree.
func (s *Journey) AddField(ctx context.Context, name string, req AddFieldRequest, modifiedBy string) (*models.Journey, error) {
	fieldType, err := models.ParseFieldType(req.Type)
	if err != nil {
		return nil, NewValidationError("AddField", "INVALID_FIELD_TYPE", err.Error(), ErrInvalidFieldType)
	}

	pos := req.Position
	if pos == "" {
		pos = fieldtree.Below
	}

	if pos != fieldtree.Above && pos != fieldtree.Below {
		return nil, NewValidationError(
			"AddField",
			"INVALID_POSITION",
			fmt.Sprintf("invalid position '%s', allowed: above, below", pos),
			ErrInvalidRequest,
		)
	}

	return s.mutate(ctx, name, modifiedBy, func(fields []models.Field) ([]models.Field, error) {
		newField := models.NewField(fieldType, fieldtree.NextID(fields))

		if req.AnchorID == 0 {
			return fieldtree.MapLists(fields, nil, func(list []models.Field) []models.Field {
				return append(list, newField)
			}), nil
		}

		if _, ok := fieldtree.FindByID(fields, req.AnchorID); !ok {
			return nil, NewValidationError(
				"AddField",
				"FIELD_NOT_FOUND",
				fmt.Sprintf("anchor field %d does not exist", req.AnchorID),
				ErrFieldNotFound,
			)
		}

		return fieldtree.InsertRelative(fields, req.AnchorID, pos, newField), nil
	})
}

// FieldPatch carries the editable per-field attributes. Nil pointers leave
// the stored value alone; a non-nil Conditional with a zero TriggerID
// clears the condition.
type FieldPatch struct {
	Label               *string
	Mandatory           *bool
	FMA                 *bool
	Bold                *bool
	Multiselect         *bool
	NumbersOnly         *bool
	AllowInternational  *bool
	Tiptext             *string
	Options             []string
	MaxEntries          *int
	RepeaterButtonLabel *string
	Conditional         *models.Condition
}

// PatchField applies a partial update to one field.
func (s *Journey) PatchField(ctx context.Context, name string, fieldID int, patch FieldPatch, modifiedBy string) (*models.Journey, error) {
	return s.mutate(ctx, name, modifiedBy, func(fields []models.Field) ([]models.Field, error) {
		if _, ok := fieldtree.FindByID(fields, fieldID); !ok {
			return nil, NewValidationError(
				"PatchField",
				"FIELD_NOT_FOUND",
				fmt.Sprintf("field %d does not exist", fieldID),
				ErrFieldNotFound,
			)
		}

		if patch.Conditional != nil && patch.Conditional.TriggerID != 0 {
			if err := s.checkTrigger(fields, fieldID, patch.Conditional.TriggerID); err != nil {
				return nil, err
			}
		}

		return fieldtree.UpdateField(fields, fieldID, func(f models.Field) models.Field {
			return applyPatch(f, patch)
		}), nil
	})
}

func applyPatch(f models.Field, patch FieldPatch) models.Field {
	if patch.Label != nil {
		f.Label = *patch.Label
	}

	if patch.Mandatory != nil {
		f.Mandatory = *patch.Mandatory
	}

	if patch.FMA != nil {
		f.FMA = *patch.FMA
	}

	if patch.Bold != nil {
		f.Bold = *patch.Bold
	}

	if patch.Multiselect != nil {
		f.Multiselect = *patch.Multiselect
	}

	if patch.NumbersOnly != nil {
		f.NumbersOnly = *patch.NumbersOnly
	}

	if patch.AllowInternational != nil {
		f.AllowInternational = *patch.AllowInternational
	}

	if patch.Tiptext != nil {
		f.Tiptext = *patch.Tiptext
	}

	if patch.Options != nil {
		f.Options = patch.Options
	}

	if patch.MaxEntries != nil {
		f.MaxEntries = *patch.MaxEntries
	}

	if patch.RepeaterButtonLabel != nil {
		f.RepeaterButtonLabel = *patch.RepeaterButtonLabel
	}

	if patch.Conditional != nil {
		if patch.Conditional.TriggerID == 0 {
			f.Conditional = nil
		} else {
			f.Conditional = patch.Conditional.Clone()
		}
	}

	return f
}

// checkTrigger rejects a condition whose trigger is not an eligible
// candidate for the dependent field.
func (s *Journey) checkTrigger(fields []models.Field, fieldID, triggerID int) error {
	for _, candidate := range visibility.TriggerCandidates(fields, fieldID) {
		if candidate.ID == triggerID {
			return nil
		}
	}

	return NewValidationError(
		"checkTrigger",
		"INVALID_TRIGGER",
		fmt.Sprintf("field %d is not a valid trigger for field %d", triggerID, fieldID),
		ErrInvalidCondition,
	)
}

// ChangeFieldType swaps a field to a new type, resetting type-specific
// attributes to that type's defaults.
func (s *Journey) ChangeFieldType(ctx context.Context, name string, fieldID int, newType string, modifiedBy string) (*models.Journey, error) {
	fieldType, err := models.ParseFieldType(newType)
	if err != nil {
		return nil, NewValidationError("ChangeFieldType", "INVALID_FIELD_TYPE", err.Error(), ErrInvalidFieldType)
	}

	return s.mutate(ctx, name, modifiedBy, func(fields []models.Field) ([]models.Field, error) {
		if _, ok := fieldtree.FindByID(fields, fieldID); !ok {
			return nil, NewValidationError(
				"ChangeFieldType",
				"FIELD_NOT_FOUND",
				fmt.Sprintf("field %d does not exist", fieldID),
				ErrFieldNotFound,
			)
		}

		return fieldtree.ChangeType(fields, fieldID, fieldType), nil
	})
}

// RemoveField deletes a field, orphaning any conditions that depended on
// it.
func (s *Journey) RemoveField(ctx context.Context, name string, fieldID int, modifiedBy string) (*models.Journey, error) {
	return s.mutate(ctx, name, modifiedBy, func(fields []models.Field) ([]models.Field, error) {
		if _, ok := fieldtree.FindByID(fields, fieldID); !ok {
			return nil, NewValidationError(
				"RemoveField",
				"FIELD_NOT_FOUND",
				fmt.Sprintf("field %d does not exist", fieldID),
				ErrFieldNotFound,
			)
		}

		return fieldtree.DeleteField(fields, fieldID), nil
	})
}

// ReorderField moves an item within one sibling list: the root list when
// ParentID is nil, otherwise the children of that repeater.
func (s *Journey) ReorderField(ctx context.Context, name string, parentID *int, from, to int, modifiedBy string) (*models.Journey, error) {
	return s.mutate(ctx, name, modifiedBy, func(fields []models.Field) ([]models.Field, error) {
		return fieldtree.Reorder(fields, parentID, from, to), nil
	})
}

// MoveSection relocates a whole heading-delimited section relative to
// another section.
func (s *Journey) MoveSection(ctx context.Context, name string, sourceHeadingID, targetHeadingID int, modifiedBy string) (*models.Journey, error) {
	return s.mutate(ctx, name, modifiedBy, func(fields []models.Field) ([]models.Field, error) {
		source, ok := fieldtree.FindByID(fields, sourceHeadingID)
		if !ok || source.Type != models.FieldTypeHeading {
			return nil, NewValidationError(
				"MoveSection",
				"FIELD_NOT_FOUND",
				fmt.Sprintf("field %d is not a section heading", sourceHeadingID),
				ErrFieldNotFound,
			)
		}

		target, ok := fieldtree.FindByID(fields, targetHeadingID)
		if !ok || target.Type != models.FieldTypeHeading {
			return nil, NewValidationError(
				"MoveSection",
				"FIELD_NOT_FOUND",
				fmt.Sprintf("field %d is not a section heading", targetHeadingID),
				ErrFieldNotFound,
			)
		}

		return fieldtree.MoveSection(fields, sourceHeadingID, targetHeadingID), nil
	})
}
