// Package repeater instantiates a repeater field's child template into
// row-scoped field sets for rendering and evaluation.
package repeater

import (
	"fmt"

	"github.com/formforge/formforge/pkg/models"
	"github.com/formforge/formforge/pkg/visibility"
)

// RowKey returns the composite row-scoped value key for a template child
// instantiated in a given row. The keys are disjoint from the root id key
// space; the same child in different rows intentionally shares its field
// id, only the row component differs.
func RowKey(fieldID, row int) string {
	return fmt.Sprintf("%d@%d", fieldID, row)
}

// RowField is one instantiated template child. ValueKey is where the row's
// input for this field is stored. TriggerKey, set only for conditional
// fields, is where the condition's trigger value is read from: rewritten to
// the same row for sibling dependencies, left pointing at root storage for
// triggers outside the repeater. Cross-row triggering is impossible by
// construction.
type RowField struct {
	models.Field

	ValueKey   string
	TriggerKey string
}

// Row is one instantiation of the repeater's child template.
type Row struct {
	Index  int
	Fields []RowField
}

// Expand instantiates the repeater's template once per row. The row count
// is user-controlled and unbounded here: MaxEntries is advisory metadata
// for the editing surface, not enforced by expansion.
func Expand(rep models.Field, rows int) []Row {
	if rep.Type != models.FieldTypeRepeater || rows <= 0 {
		return nil
	}

	siblingIDs := make(map[int]bool, len(rep.Children))
	for _, child := range rep.Children {
		siblingIDs[child.ID] = true
	}

	expanded := make([]Row, 0, rows)

	for r := range rows {
		row := Row{Index: r, Fields: make([]RowField, 0, len(rep.Children))}

		for _, child := range rep.Children {
			rf := RowField{
				Field:    child,
				ValueKey: RowKey(child.ID, r),
			}

			if child.Conditional != nil {
				if siblingIDs[child.Conditional.TriggerID] {
					rf.TriggerKey = RowKey(child.Conditional.TriggerID, r)
				} else {
					rf.TriggerKey = visibility.Key(child.Conditional.TriggerID)
				}
			}

			row.Fields = append(row.Fields, rf)
		}

		expanded = append(expanded, row)
	}

	return expanded
}

// VisibleInRow evaluates one instantiated field against the shared value
// store, honoring its row-scoped trigger key. Each row's visibility depends
// only on that row's own values (and root values for outside triggers).
func VisibleInRow(eval *visibility.Evaluator, fields []models.Field, rf RowField, values visibility.Values, mode models.Mode) bool {
	return eval.VisibleKeyed(fields, rf.Field, rf.TriggerKey, values, mode)
}
