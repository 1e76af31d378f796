package fieldtree_test

import (
	"testing"

	"github.com/formforge/formforge/pkg/fieldtree"
	"github.com/formforge/formforge/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(fields []models.Field) []int {
	result := make([]int, 0, len(fields))
	for _, f := range fields {
		result = append(result, f.ID)
	}

	return result
}

func sampleTree() []models.Field {
	return []models.Field{
		{ID: 1, Type: models.FieldTypeHeading, Label: "Section one"},
		{ID: 2, Type: models.FieldTypeDropdown, Label: "Choice", Options: []string{"A", "B"}},
		{ID: 3, Type: models.FieldTypeRepeater, Label: "Dependants", Children: []models.Field{
			{ID: 4, Type: models.FieldTypeTextField, Label: "Name"},
			{ID: 5, Type: models.FieldTypeCalendar, Label: "Date of birth"},
		}},
		{ID: 6, Type: models.FieldTypeTextField, Label: "Notes"},
	}
}

func TestFlatten_PreOrderIncludesChildren(t *testing.T) {
	flat := fieldtree.Flatten(sampleTree())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(flat))
}

func TestFindByID_FindsNestedFields(t *testing.T) {
	field, ok := fieldtree.FindByID(sampleTree(), 5)
	require.True(t, ok)
	assert.Equal(t, "Date of birth", field.Label)

	_, ok = fieldtree.FindByID(sampleTree(), 99)
	assert.False(t, ok)
}

func TestNextID_CountsNestedChildren(t *testing.T) {
	assert.Equal(t, 7, fieldtree.NextID(sampleTree()))
}

func TestNextID_EmptyTreeStartsAtOne(t *testing.T) {
	assert.Equal(t, 1, fieldtree.NextID(nil))
}

func TestNextID_NeverReusesAfterDeletion(t *testing.T) {
	tree := sampleTree()
	tree = fieldtree.DeleteField(tree, 6)
	assert.Equal(t, 6, fieldtree.NextID(tree), "highest id remains burned after deleting a lower one")

	tree = fieldtree.DeleteField(tree, 3)
	assert.Equal(t, 3, fieldtree.NextID(tree))
}

func TestUpdateField_LeavesOriginalUntouched(t *testing.T) {
	original := sampleTree()

	updated := fieldtree.UpdateField(original, 4, func(f models.Field) models.Field {
		f.Label = "Full name"

		return f
	})

	child, ok := fieldtree.FindByID(updated, 4)
	require.True(t, ok)
	assert.Equal(t, "Full name", child.Label)

	unchanged, ok := fieldtree.FindByID(original, 4)
	require.True(t, ok)
	assert.Equal(t, "Name", unchanged.Label)
}

func TestMapLists_TargetsOneSiblingList(t *testing.T) {
	parentID := 3

	reversedChildren := fieldtree.MapLists(sampleTree(), &parentID, func(list []models.Field) []models.Field {
		return []models.Field{list[1], list[0]}
	})

	rep, ok := fieldtree.FindByID(reversedChildren, 3)
	require.True(t, ok)
	assert.Equal(t, []int{5, 4}, ids(rep.Children))
	assert.Equal(t, []int{1, 2, 3, 6}, ids(reversedChildren))
}
