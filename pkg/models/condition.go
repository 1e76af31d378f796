package models

// LogicType selects the comparison rule a condition applies to its trigger's
// value. Numeric rules apply to currency and numbers-only text triggers,
// date rules to calendar triggers. Choice triggers use SelectedOptions
// instead of a logic type.
type LogicType string

const (
	LogicGreaterThan   LogicType = "greater_than"
	LogicLessThan      LogicType = "less_than"
	LogicBetween       LogicType = "between"
	LogicOutsideRange  LogicType = "outside_range"
	LogicXYearsAgo     LogicType = "x_years_ago"
	LogicBeforeDate    LogicType = "before_date"
	LogicAfterDate     LogicType = "after_date"
	LogicBetweenYears  LogicType = "between_years"
	LogicMoreThanYears LogicType = "more_than_years"
)

// IsNumeric reports whether the logic type compares parsed numbers.
func (l LogicType) IsNumeric() bool {
	switch l {
	case LogicGreaterThan, LogicLessThan, LogicBetween, LogicOutsideRange:
		return true
	default:
		return false
	}
}

// IsDate reports whether the logic type compares dates or year offsets.
func (l LogicType) IsDate() bool {
	switch l {
	case LogicXYearsAgo, LogicBeforeDate, LogicAfterDate, LogicBetweenYears, LogicMoreThanYears:
		return true
	default:
		return false
	}
}

// Condition gates a field's visibility on another field's current value.
//
// When SelectedOptions is non-empty the condition is choice-based and
// LogicType/Value1/Value2 are ignored, even if present from stale data.
// OrphanedTriggerLabel caches the label of a trigger that has since been
// deleted; it is diagnostic only and never read by evaluation.
type Condition struct {
	TriggerID            int       `json:"triggerId"                      validate:"required,min=1"`
	LogicType            LogicType `json:"logicType,omitempty"`
	Value1               string    `json:"value1,omitempty"`
	Value2               string    `json:"value2,omitempty"`
	SelectedOptions      []string  `json:"selectedOptions,omitempty"`
	OrphanedTriggerLabel string    `json:"orphanedTriggerLabel,omitempty"`
}

// IsChoice reports whether the condition matches against an option set
// rather than a logic rule.
func (c Condition) IsChoice() bool {
	return len(c.SelectedOptions) > 0
}

// Clone returns a deep copy so tree mutations never alias condition state.
func (c *Condition) Clone() *Condition {
	if c == nil {
		return nil
	}

	clone := *c
	clone.SelectedOptions = append([]string(nil), c.SelectedOptions...)

	return &clone
}
