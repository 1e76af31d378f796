package services_test

import (
	"context"
	"testing"

	"github.com/formforge/formforge/pkg/fieldtree"
	"github.com/formforge/formforge/pkg/models"
	"github.com/formforge/formforge/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJourneyWithFields(t *testing.T, service *services.Journey, fields []models.Field) {
	t.Helper()

	_, err := service.Create(context.Background(), services.CreateRequest{
		Name:   "Mortgage",
		Fields: fields,
	})
	require.NoError(t, err)
}

func editableFields() []models.Field {
	return []models.Field{
		{ID: 1, Type: models.FieldTypeHeading, Label: "Section"},
		{ID: 2, Type: models.FieldTypeDropdown, Label: "Status", Options: []string{"Employed", "Retired"}},
		{ID: 3, Type: models.FieldTypeTextField, Label: "Employer"},
	}
}

func TestAddField_BelowAnchorWithFreshID(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)
	setupJourneyWithFields(t, service, editableFields())

	journey, err := service.AddField(ctx, "Mortgage", services.AddFieldRequest{
		Type:     "currency",
		AnchorID: 2,
	}, "sam")
	require.NoError(t, err)

	require.Len(t, journey.Fields, 4)
	added := journey.Fields[2]
	assert.Equal(t, 4, added.ID)
	assert.Equal(t, models.FieldTypeCurrency, added.Type)
	assert.Equal(t, "Question label", added.Label)
}

func TestAddField_NoAnchorAppendsAtEnd(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)
	setupJourneyWithFields(t, service, editableFields())

	journey, err := service.AddField(ctx, "Mortgage", services.AddFieldRequest{Type: "checkbox"}, "sam")
	require.NoError(t, err)

	last := journey.Fields[len(journey.Fields)-1]
	assert.Equal(t, models.FieldTypeCheckbox, last.Type)
	assert.Equal(t, []string{"Checkbox option"}, last.Options)
}

func TestAddField_UnknownTypeRejected(t *testing.T) {
	service := setupService(t)
	setupJourneyWithFields(t, service, editableFields())

	_, err := service.AddField(context.Background(), "Mortgage", services.AddFieldRequest{Type: "carousel"}, "sam")
	require.Error(t, err)
	assert.True(t, services.IsValidationError(err))
}

func TestAddField_MissingAnchorRejected(t *testing.T) {
	service := setupService(t)
	setupJourneyWithFields(t, service, editableFields())

	_, err := service.AddField(context.Background(), "Mortgage", services.AddFieldRequest{
		Type:     "currency",
		AnchorID: 99,
	}, "sam")
	assert.ErrorIs(t, err, services.ErrFieldNotFound)
}

func TestPatchField_UpdatesOnlyProvidedAttributes(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)
	setupJourneyWithFields(t, service, editableFields())

	label := "Current employer"
	mandatory := true

	journey, err := service.PatchField(ctx, "Mortgage", 3, services.FieldPatch{
		Label:     &label,
		Mandatory: &mandatory,
	}, "sam")
	require.NoError(t, err)

	field, ok := fieldtree.FindByID(journey.Fields, 3)
	require.True(t, ok)
	assert.Equal(t, "Current employer", field.Label)
	assert.True(t, field.Mandatory)
	assert.Equal(t, models.FieldTypeTextField, field.Type, "type untouched")
}

func TestPatchField_SetsConditionAgainstValidTrigger(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)
	setupJourneyWithFields(t, service, editableFields())

	journey, err := service.PatchField(ctx, "Mortgage", 3, services.FieldPatch{
		Conditional: &models.Condition{TriggerID: 2, SelectedOptions: []string{"Employed"}},
	}, "sam")
	require.NoError(t, err)

	field, _ := fieldtree.FindByID(journey.Fields, 3)
	require.NotNil(t, field.Conditional)
	assert.Equal(t, 2, field.Conditional.TriggerID)
}

func TestPatchField_RejectsIneligibleTrigger(t *testing.T) {
	service := setupService(t)
	setupJourneyWithFields(t, service, editableFields())

	// Field 1 is a heading; headings can never gate visibility.
	_, err := service.PatchField(context.Background(), "Mortgage", 3, services.FieldPatch{
		Conditional: &models.Condition{TriggerID: 1, SelectedOptions: []string{"X"}},
	}, "sam")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidCondition)
}

func TestPatchField_ZeroTriggerClearsCondition(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)
	setupJourneyWithFields(t, service, editableFields())

	_, err := service.PatchField(ctx, "Mortgage", 3, services.FieldPatch{
		Conditional: &models.Condition{TriggerID: 2, SelectedOptions: []string{"Employed"}},
	}, "sam")
	require.NoError(t, err)

	journey, err := service.PatchField(ctx, "Mortgage", 3, services.FieldPatch{
		Conditional: &models.Condition{},
	}, "sam")
	require.NoError(t, err)

	field, _ := fieldtree.FindByID(journey.Fields, 3)
	assert.Nil(t, field.Conditional)
}

func TestChangeFieldType_ResetsToNewDefaults(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)
	setupJourneyWithFields(t, service, editableFields())

	journey, err := service.ChangeFieldType(ctx, "Mortgage", 2, "text field", "sam")
	require.NoError(t, err)

	field, _ := fieldtree.FindByID(journey.Fields, 2)
	assert.Equal(t, models.FieldTypeTextField, field.Type)
	assert.Equal(t, "Question label", field.Label)
	assert.Empty(t, field.Options)
}

func TestRemoveField_OrphansDependents(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	fields := editableFields()
	fields[2].Conditional = &models.Condition{TriggerID: 2, SelectedOptions: []string{"Employed"}}
	setupJourneyWithFields(t, service, fields)

	journey, err := service.RemoveField(ctx, "Mortgage", 2, "sam")
	require.NoError(t, err)

	require.Len(t, journey.Fields, 2)

	dependent, _ := fieldtree.FindByID(journey.Fields, 3)
	require.NotNil(t, dependent.Conditional)
	assert.Equal(t, "Status", dependent.Conditional.OrphanedTriggerLabel)
}

func TestReorderField(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)
	setupJourneyWithFields(t, service, editableFields())

	journey, err := service.ReorderField(ctx, "Mortgage", nil, 2, 1, "sam")
	require.NoError(t, err)

	assert.Equal(t, 3, journey.Fields[1].ID)
	assert.Equal(t, 2, journey.Fields[2].ID)
}

func TestMoveSection(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	setupJourneyWithFields(t, service, []models.Field{
		{ID: 1, Type: models.FieldTypeHeading, Label: "First"},
		{ID: 2, Type: models.FieldTypeTextField, Label: "Q1"},
		{ID: 3, Type: models.FieldTypeHeading, Label: "Second"},
		{ID: 4, Type: models.FieldTypeTextField, Label: "Q2"},
	})

	journey, err := service.MoveSection(ctx, "Mortgage", 1, 3, "sam")
	require.NoError(t, err)

	assert.Equal(t, 3, journey.Fields[0].ID)
	assert.Equal(t, 1, journey.Fields[2].ID)
}

func TestMoveSection_NonHeadingRejected(t *testing.T) {
	service := setupService(t)
	setupJourneyWithFields(t, service, editableFields())

	_, err := service.MoveSection(context.Background(), "Mortgage", 2, 1, "sam")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrFieldNotFound)
}

func TestPreview_PrunesHiddenFieldsAndExpandsRepeaters(t *testing.T) {
	ctx := context.Background()
	service := setupService(t)

	setupJourneyWithFields(t, service, []models.Field{
		{ID: 1, Type: models.FieldTypeDropdown, Label: "Any dependants?", Options: []string{"Yes", "No"}},
		{ID: 2, Type: models.FieldTypeRepeater, Label: "Dependants",
			Conditional: &models.Condition{TriggerID: 1, SelectedOptions: []string{"Yes"}},
			Children: []models.Field{
				{ID: 3, Type: models.FieldTypeTextField, Label: "Name"},
			}},
		{ID: 4, Type: models.FieldTypeTextField, Label: "Notes", FMA: true},
	})

	hidden, err := service.Preview(ctx, "Mortgage", services.PreviewRequest{
		Values: map[string]any{"1": "No"},
		Mode:   models.ModeDIP,
	})
	require.NoError(t, err)
	require.Len(t, hidden, 1, "repeater and fma field both hidden")
	assert.Equal(t, 1, hidden[0].Field.ID)

	shown, err := service.Preview(ctx, "Mortgage", services.PreviewRequest{
		Values: map[string]any{"1": "Yes"},
		Mode:   models.ModeFMA,
		Rows:   map[int]int{2: 2},
	})
	require.NoError(t, err)
	require.Len(t, shown, 3)
	require.Len(t, shown[1].Rows, 2)
	assert.Equal(t, "3@0", shown[1].Rows[0].Fields[0].ValueKey)
	assert.Equal(t, "3@1", shown[1].Rows[1].Fields[0].ValueKey)
}
