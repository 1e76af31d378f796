// Package visibility decides which fields of a journey are currently shown,
// given live form values and the preview mode, and classifies trigger
// references as resolved or orphaned.
package visibility

import "strconv"

// Value is a live form value: a string for single-value controls or a
// []string for multi-select controls. Values decoded from JSON may arrive
// as []any; lookups normalize both shapes.
type Value = any

// Values maps value keys to live form input. Root-level fields are keyed by
// Key(id); repeater instances use row-scoped keys that never collide with
// the root id space.
type Values map[string]Value

// Key returns the value key for a root-level field.
func Key(id int) string {
	return strconv.Itoa(id)
}

func isEmpty(v Value) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}

// valueStrings flattens a value to its string elements for membership
// checks. Non-string input yields nothing, which fails closed.
func valueStrings(v Value) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}

		return out
	default:
		return nil
	}
}

// scalarString returns the single string form of a value for numeric and
// date parsing. JSON numbers decode to float64 and are formatted back to
// their shortest representation.
func scalarString(v Value) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return "", false
	}
}
