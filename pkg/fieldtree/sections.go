package fieldtree

import "github.com/formforge/formforge/pkg/models"

// A section is a heading field plus every following field up to, but not
// including, the next heading in the same sibling list.

// MoveSection relocates the source heading's section as a contiguous unit:
// after the target's section when moving down the list, immediately before
// the target heading when moving up. It operates on the first sibling list
// containing both headings, recursing into repeater children only when the
// pair is not found together at the current level.
func MoveSection(fields []models.Field, sourceHeadingID, targetHeadingID int) []models.Field {
	list := cloneList(fields)

	if sourceHeadingID == targetHeadingID {
		return list
	}

	sourceIndex := indexOfID(list, sourceHeadingID)
	targetIndex := indexOfID(list, targetHeadingID)

	if sourceIndex == -1 || targetIndex == -1 {
		for i, f := range list {
			if len(f.Children) > 0 {
				list[i].Children = MoveSection(f.Children, sourceHeadingID, targetHeadingID)
			}
		}

		return list
	}

	sourceEnd := sectionEnd(list, sourceIndex)
	section := append([]models.Field(nil), list[sourceIndex:sourceEnd]...)

	remainder := append([]models.Field(nil), list[:sourceIndex]...)
	remainder = append(remainder, list[sourceEnd:]...)

	newTargetIndex := indexOfID(remainder, targetHeadingID)

	var insertAt int
	if sourceIndex < targetIndex {
		insertAt = sectionEnd(remainder, newTargetIndex)
	} else {
		insertAt = newTargetIndex
	}

	moved := append([]models.Field(nil), remainder[:insertAt]...)
	moved = append(moved, section...)
	moved = append(moved, remainder[insertAt:]...)

	return moved
}

// sectionEnd returns the index just past the section starting at the given
// heading: the next heading at this level, or the end of the list.
func sectionEnd(list []models.Field, headingIndex int) int {
	for i := headingIndex + 1; i < len(list); i++ {
		if list[i].Type == models.FieldTypeHeading {
			return i
		}
	}

	return len(list)
}

func indexOfID(list []models.Field, id int) int {
	for i, f := range list {
		if f.ID == id {
			return i
		}
	}

	return -1
}
