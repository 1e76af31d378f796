package fieldtree

import (
	"slices"

	"github.com/formforge/formforge/pkg/models"
)

// FilterByIntegration prunes the tree to the fields relevant to a set of
// integration tags, used when cloning from the admin template journey. A
// node survives when the filter is empty, when its own integration tags
// intersect the filter, or when any descendant survives. Surviving nodes
// keep all attributes; only their children list is replaced with the
// filtered result. Order is preserved, and an empty result is a valid
// outcome, not an error.
func FilterByIntegration(fields []models.Field, filterIDs []string) []models.Field {
	if len(filterIDs) == 0 {
		return cloneList(fields)
	}

	result := make([]models.Field, 0, len(fields))

	for _, f := range fields {
		filteredChildren := FilterByIntegration(f.Children, filterIDs)
		if !intersects(f.Integrations, filterIDs) && len(filteredChildren) == 0 {
			continue
		}

		clone := cloneField(f)
		if len(f.Children) > 0 {
			clone.Children = filteredChildren
		}

		result = append(result, clone)
	}

	return result
}

func intersects(tags, filterIDs []string) bool {
	for _, tag := range tags {
		if slices.Contains(filterIDs, tag) {
			return true
		}
	}

	return false
}
