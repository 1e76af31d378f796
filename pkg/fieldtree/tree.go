// Package fieldtree provides the pure tree primitives and structural
// mutations for journey field trees. Every operation returns a new tree;
// inputs are never modified in place.
package fieldtree

import "github.com/formforge/formforge/pkg/models"

// Flatten returns the tree in pre-order, entering repeater children before
// continuing with following siblings. Used for id generation, dependent
// search and flat exports.
func Flatten(fields []models.Field) []models.Field {
	flat := make([]models.Field, 0, len(fields))
	for _, f := range fields {
		flat = append(flat, f)
		if len(f.Children) > 0 {
			flat = append(flat, Flatten(f.Children)...)
		}
	}

	return flat
}

// FindByID searches the tree pre-order through all nesting levels.
func FindByID(fields []models.Field, id int) (models.Field, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}

		if found, ok := FindByID(f.Children, id); ok {
			return found, true
		}
	}

	return models.Field{}, false
}

// NextID returns the next available field id: one more than the highest id
// anywhere in the tree, including nested repeater children, or 1 for an
// empty tree. Ids are never reused, even after deletion.
func NextID(fields []models.Field) int {
	maxID := 0
	for _, f := range Flatten(fields) {
		if f.ID > maxID {
			maxID = f.ID
		}
	}

	return maxID + 1
}

// MapLists applies fn to one sibling list: the root list when parentID is
// nil, otherwise the children of the repeater with that id. Every mutation
// in this package composes this single walker rather than carrying its own
// recursion.
func MapLists(fields []models.Field, parentID *int, fn func([]models.Field) []models.Field) []models.Field {
	if parentID == nil {
		return fn(cloneList(fields))
	}

	result := make([]models.Field, 0, len(fields))

	for _, f := range fields {
		clone := cloneField(f)
		if f.ID == *parentID {
			clone.Children = fn(cloneList(f.Children))
		} else if len(f.Children) > 0 {
			clone.Children = MapLists(f.Children, parentID, fn)
		}

		result = append(result, clone)
	}

	return result
}

// UpdateField applies fn to the field with the given id wherever it sits in
// the tree. The tree is returned unchanged if the id is absent.
func UpdateField(fields []models.Field, id int, fn func(models.Field) models.Field) []models.Field {
	result := make([]models.Field, 0, len(fields))

	for _, f := range fields {
		clone := cloneField(f)
		if f.ID == id {
			clone = fn(clone)
		} else if len(f.Children) > 0 {
			clone.Children = UpdateField(f.Children, id, fn)
		}

		result = append(result, clone)
	}

	return result
}

func cloneField(f models.Field) models.Field {
	clone := f
	clone.Options = append([]string(nil), f.Options...)
	clone.Integrations = append([]string(nil), f.Integrations...)
	clone.Conditional = f.Conditional.Clone()
	clone.Children = cloneList(f.Children)

	return clone
}

func cloneList(fields []models.Field) []models.Field {
	if fields == nil {
		return nil
	}

	clones := make([]models.Field, 0, len(fields))
	for _, f := range fields {
		clones = append(clones, cloneField(f))
	}

	return clones
}
