package fieldtree

import "github.com/formforge/formforge/pkg/models"

// Position says where InsertRelative places the new field against its
// anchor.
type Position string

const (
	Above Position = "above"
	Below Position = "below"
)

// InsertRelative inserts newField above or below the anchor in whichever
// sibling list currently contains it, at any nesting level. A missing
// anchor leaves the tree unchanged; correct callers never hit that case but
// it must not fail loudly.
func InsertRelative(fields []models.Field, anchorID int, pos Position, newField models.Field) []models.Field {
	result := make([]models.Field, 0, len(fields)+1)
	inserted := false

	for _, f := range fields {
		clone := cloneField(f)

		if f.ID == anchorID {
			inserted = true
			if pos == Above {
				result = append(result, cloneField(newField), clone)
			} else {
				result = append(result, clone, cloneField(newField))
			}

			continue
		}

		result = append(result, clone)
	}

	if inserted {
		return result
	}

	for i, f := range result {
		if len(f.Children) > 0 {
			result[i].Children = InsertRelative(f.Children, anchorID, pos, newField)
		}
	}

	return result
}

// ChangeType replaces a field's type, resetting all type-specific
// attributes to the new type's defaults while preserving the id and any
// existing children. Children of a repeater changed to a non-repeater type
// are kept but unreachable until the type changes back.
func ChangeType(fields []models.Field, id int, newType models.FieldType) []models.Field {
	return UpdateField(fields, id, func(f models.Field) models.Field {
		replacement := models.NewField(newType, f.ID)
		replacement.Children = f.Children

		return replacement
	})
}

// DeleteField removes the field from its containing list and marks every
// dependent condition anywhere in the tree as orphaned, caching the deleted
// field's label for diagnostics. Dependents themselves are never deleted
// and their conditions stay otherwise intact; they simply evaluate to
// not-visible until the user edits or removes the condition.
func DeleteField(fields []models.Field, id int) []models.Field {
	deleted, ok := FindByID(fields, id)
	if !ok {
		return cloneList(fields)
	}

	return deleteAndMark(fields, id, deleted.Label)
}

func deleteAndMark(fields []models.Field, id int, label string) []models.Field {
	result := make([]models.Field, 0, len(fields))

	for _, f := range fields {
		if f.ID == id {
			continue
		}

		clone := cloneField(f)
		if clone.Conditional != nil && clone.Conditional.TriggerID == id {
			clone.Conditional.OrphanedTriggerLabel = label
		}

		if len(clone.Children) > 0 {
			clone.Children = deleteAndMark(clone.Children, id, label)
		}

		result = append(result, clone)
	}

	return result
}

// Reorder moves an item within one sibling list: the root list when
// parentID is nil, otherwise the children of that repeater. Cross-list
// moves are not supported. Out-of-range indexes leave the list unchanged.
func Reorder(fields []models.Field, parentID *int, from, to int) []models.Field {
	return MapLists(fields, parentID, func(list []models.Field) []models.Field {
		if from < 0 || from >= len(list) || to < 0 || to >= len(list) || from == to {
			return list
		}

		moved := list[from]
		list = append(list[:from], list[from+1:]...)
		list = append(list[:to], append([]models.Field{moved}, list[to:]...)...)

		return list
	})
}
