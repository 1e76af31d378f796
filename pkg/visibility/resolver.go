package visibility

import (
	"errors"
	"fmt"

	"github.com/formforge/formforge/pkg/fieldtree"
	"github.com/formforge/formforge/pkg/models"
)

// Condition reference validation errors. These reject crafted or imported
// trees; the selection UI boundary never produces them.
var (
	ErrSelfTrigger       = errors.New("condition references its own field")
	ErrDescendantTrigger = errors.New("condition references a descendant of its own field")
	ErrCyclicTrigger     = errors.New("condition chain forms a cycle")
)

// IsValidTriggerType reports whether a field can gate other fields'
// visibility. Free-text, static and structural types can never be triggers;
// a plain text field qualifies only when restricted to numbers.
func IsValidTriggerType(f models.Field) bool {
	switch f.Type {
	case models.FieldTypeCurrency, models.FieldTypeDropdown, models.FieldTypeRadioButtons,
		models.FieldTypeCheckbox, models.FieldTypeCalendar:
		return true
	case models.FieldTypeTextField:
		return f.NumbersOnly
	default:
		return false
	}
}

// ResolveTrigger locates a condition's trigger field anywhere in the tree.
// A false return is the steady orphaned state, shown as a persistent
// warning; it is never an error.
func ResolveTrigger(fields []models.Field, cond *models.Condition) (models.Field, bool) {
	if cond == nil {
		return models.Field{}, false
	}

	return fieldtree.FindByID(fields, cond.TriggerID)
}

// TriggerCandidates returns the fields the given target may declare as its
// trigger: trigger-eligible root-level fields, plus trigger-eligible
// siblings of its own repeater template when the target is a repeater
// child. The target itself is always excluded, and a repeater can never
// depend on its own children.
func TriggerCandidates(fields []models.Field, forID int) []models.Field {
	target, ok := fieldtree.FindByID(fields, forID)
	if !ok {
		return nil
	}

	candidates := make([]models.Field, 0)

	for _, f := range fields {
		if f.ID != forID && IsValidTriggerType(f) {
			candidates = append(candidates, f)
		}
	}

	if siblings, inRepeater := templateSiblings(fields, forID); inRepeater {
		for _, f := range siblings {
			if f.ID != forID && IsValidTriggerType(f) {
				candidates = append(candidates, f)
			}
		}
	}

	if target.Type == models.FieldTypeRepeater {
		candidates = excludeDescendants(candidates, target)
	}

	return candidates
}

// templateSiblings finds the repeater children list containing the given
// field, if any. Repeaters cannot nest, so one level of recursion suffices,
// but the walk is written generally.
func templateSiblings(fields []models.Field, id int) ([]models.Field, bool) {
	for _, f := range fields {
		for _, child := range f.Children {
			if child.ID == id {
				return f.Children, true
			}
		}

		if siblings, ok := templateSiblings(f.Children, id); ok {
			return siblings, true
		}
	}

	return nil, false
}

func excludeDescendants(candidates []models.Field, ancestor models.Field) []models.Field {
	kept := make([]models.Field, 0, len(candidates))

	for _, c := range candidates {
		if _, isDescendant := fieldtree.FindByID(ancestor.Children, c.ID); !isDescendant {
			kept = append(kept, c)
		}
	}

	return kept
}

// ValidateConditions checks the whole tree's trigger graph at the import
// and mutation boundaries: no condition may reference its own field or a
// descendant of it, and trigger chains must be acyclic. Orphaned references
// are legal data and are skipped. The walk is depth-bounded by the number
// of fields, and nesting is shallow in practice.
func ValidateConditions(fields []models.Field) error {
	flat := fieldtree.Flatten(fields)

	byID := make(map[int]models.Field, len(flat))
	for _, f := range flat {
		byID[f.ID] = f
	}

	for _, f := range flat {
		if f.Conditional == nil {
			continue
		}

		triggerID := f.Conditional.TriggerID
		if triggerID == f.ID {
			return fmt.Errorf("field %d: %w", f.ID, ErrSelfTrigger)
		}

		if _, exists := byID[triggerID]; !exists {
			continue // orphaned, a displayable steady state
		}

		if _, isDescendant := fieldtree.FindByID(f.Children, triggerID); isDescendant {
			return fmt.Errorf("field %d: %w", f.ID, ErrDescendantTrigger)
		}

		if err := checkChain(byID, f); err != nil {
			return err
		}
	}

	return nil
}

// checkChain follows start's trigger chain; revisiting any field means the
// visibility of start can never settle.
func checkChain(byID map[int]models.Field, start models.Field) error {
	seen := map[int]bool{start.ID: true}
	current := start

	for current.Conditional != nil {
		next, exists := byID[current.Conditional.TriggerID]
		if !exists {
			return nil
		}

		if seen[next.ID] {
			return fmt.Errorf("field %d: %w", start.ID, ErrCyclicTrigger)
		}

		seen[next.ID] = true
		current = next
	}

	return nil
}
