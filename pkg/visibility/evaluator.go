package visibility

import (
	"slices"
	"strconv"
	"time"

	"github.com/formforge/formforge/pkg/models"
)

const dateLayout = "2006-01-02"

// Evaluator computes field visibility from live form values. It is pure
// recomputation on every input change; no incremental state is kept. All
// malformed input degrades to not-visible: an unverifiable gating premise
// hides the dependent rather than leaking it.
type Evaluator struct {
	now func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithNow fixes the evaluator's notion of "today" for year-offset date
// rules.
func WithNow(now func() time.Time) Option {
	return func(e *Evaluator) {
		e.now = now
	}
}

// NewEvaluator creates an evaluator; "today" defaults to the wall clock.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Visible decides whether a field is currently shown. Mode suppression
// comes first: DIP mode hides fma fields regardless of any condition. A
// field without a condition is always visible. An orphaned trigger hides
// the field until the user fixes the condition, and an empty trigger value
// hides it until the trigger is answered.
func (e *Evaluator) Visible(fields []models.Field, f models.Field, values Values, mode models.Mode) bool {
	if mode == models.ModeDIP && f.FMA {
		return false
	}

	if f.Conditional == nil {
		return true
	}

	trigger, ok := ResolveTrigger(fields, f.Conditional)
	if !ok {
		return false
	}

	value, present := values[Key(trigger.ID)]
	if !present || isEmpty(value) {
		return false
	}

	return e.Evaluate(*f.Conditional, value)
}

// VisibleKeyed is Visible for a pre-resolved trigger value key, used for
// repeater instances whose sibling triggers live in row-scoped storage.
func (e *Evaluator) VisibleKeyed(fields []models.Field, f models.Field, triggerKey string, values Values, mode models.Mode) bool {
	if mode == models.ModeDIP && f.FMA {
		return false
	}

	if f.Conditional == nil {
		return true
	}

	if _, ok := ResolveTrigger(fields, f.Conditional); !ok {
		return false
	}

	value, present := values[triggerKey]
	if !present || isEmpty(value) {
		return false
	}

	return e.Evaluate(*f.Conditional, value)
}

// Evaluate applies a condition to a trigger value. Choice conditions take
// precedence over any stale logic rule: the value (or any element of a
// multi-select value) must match a selected option exactly,
// case-sensitively. Numeric and date rules parse the value and fail closed
// on any parse failure.
func (e *Evaluator) Evaluate(cond models.Condition, value Value) bool {
	if cond.IsChoice() {
		for _, v := range valueStrings(value) {
			if slices.Contains(cond.SelectedOptions, v) {
				return true
			}
		}

		return false
	}

	if cond.LogicType.IsNumeric() {
		return evaluateNumeric(cond, value)
	}

	if cond.LogicType.IsDate() {
		return e.evaluateDate(cond, value)
	}

	return false
}

func evaluateNumeric(cond models.Condition, value Value) bool {
	raw, ok := scalarString(value)
	if !ok {
		return false
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}

	v1, err1 := strconv.ParseFloat(cond.Value1, 64)
	v2, err2 := strconv.ParseFloat(cond.Value2, 64)

	switch cond.LogicType {
	case models.LogicGreaterThan:
		return err1 == nil && num > v1
	case models.LogicLessThan:
		return err1 == nil && num < v1
	case models.LogicBetween:
		return err1 == nil && err2 == nil && num >= v1 && num <= v2
	case models.LogicOutsideRange:
		return err1 == nil && err2 == nil && (num < v1 || num > v2)
	default:
		return false
	}
}

func (e *Evaluator) evaluateDate(cond models.Condition, value Value) bool {
	raw, ok := scalarString(value)
	if !ok {
		return false
	}

	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return false
	}

	switch cond.LogicType {
	case models.LogicBeforeDate, models.LogicAfterDate:
		boundary, err := time.Parse(dateLayout, cond.Value1)
		if err != nil {
			return false
		}

		if cond.LogicType == models.LogicBeforeDate {
			return date.Before(boundary)
		}

		return date.After(boundary)
	case models.LogicXYearsAgo, models.LogicMoreThanYears, models.LogicBetweenYears:
		age := wholeYearsSince(date, e.now())

		v1, err1 := strconv.Atoi(cond.Value1)
		if err1 != nil {
			return false
		}

		switch cond.LogicType {
		case models.LogicXYearsAgo:
			return age == v1
		case models.LogicMoreThanYears:
			return age > v1
		default: // between_years, inclusive both ends
			v2, err2 := strconv.Atoi(cond.Value2)

			return err2 == nil && age >= v1 && age <= v2
		}
	default:
		return false
	}
}

// wholeYearsSince counts completed years from a date to now; dates in the
// future count as zero.
func wholeYearsSince(date, now time.Time) int {
	years := now.Year() - date.Year()
	if date.AddDate(years, 0, 0).After(now) {
		years--
	}

	if years < 0 {
		return 0
	}

	return years
}
