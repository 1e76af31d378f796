package fieldtree_test

import (
	"testing"

	"github.com/formforge/formforge/pkg/fieldtree"
	"github.com/formforge/formforge/pkg/models"
	"github.com/stretchr/testify/assert"
)

func sectionedTree() []models.Field {
	return []models.Field{
		{ID: 1, Type: models.FieldTypeHeading, Label: "About you"},
		{ID: 2, Type: models.FieldTypeTextField, Label: "Name"},
		{ID: 3, Type: models.FieldTypeHeading, Label: "Income"},
		{ID: 4, Type: models.FieldTypeCurrency, Label: "Salary"},
		{ID: 5, Type: models.FieldTypeCurrency, Label: "Bonus"},
		{ID: 6, Type: models.FieldTypeHeading, Label: "Outgoings"},
		{ID: 7, Type: models.FieldTypeCurrency, Label: "Rent"},
	}
}

func TestMoveSection_Down(t *testing.T) {
	// "About you" moves below the "Income" section, landing before "Outgoings".
	result := fieldtree.MoveSection(sectionedTree(), 1, 3)
	assert.Equal(t, []int{3, 4, 5, 1, 2, 6, 7}, ids(result))
}

func TestMoveSection_DownPastLastSection(t *testing.T) {
	result := fieldtree.MoveSection(sectionedTree(), 1, 6)
	assert.Equal(t, []int{3, 4, 5, 6, 7, 1, 2}, ids(result))
}

func TestMoveSection_Up(t *testing.T) {
	// "Outgoings" moves up, landing immediately before the "Income" heading.
	result := fieldtree.MoveSection(sectionedTree(), 6, 3)
	assert.Equal(t, []int{1, 2, 6, 7, 3, 4, 5}, ids(result))
}

func TestMoveSection_UpToTop(t *testing.T) {
	result := fieldtree.MoveSection(sectionedTree(), 6, 1)
	assert.Equal(t, []int{6, 7, 1, 2, 3, 4, 5}, ids(result))
}

func TestMoveSection_CarriesWholeSectionIncludingTrailingFields(t *testing.T) {
	result := fieldtree.MoveSection(sectionedTree(), 3, 6)
	assert.Equal(t, []int{1, 2, 6, 7, 3, 4, 5}, ids(result))
}

func TestMoveSection_SameHeadingIsNoOp(t *testing.T) {
	result := fieldtree.MoveSection(sectionedTree(), 3, 3)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, ids(result))
}

func TestMoveSection_MissingHeadingIsNoOp(t *testing.T) {
	result := fieldtree.MoveSection(sectionedTree(), 1, 99)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, ids(result))
}
