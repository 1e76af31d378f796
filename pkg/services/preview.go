package services

import (
	"context"

	"github.com/formforge/formforge/pkg/models"
	"github.com/formforge/formforge/pkg/repeater"
	"github.com/formforge/formforge/pkg/visibility"
)

// PreviewRequest describes one rendition of a journey: the captured values,
// the mode and, per repeater field id, how many rows the user has added.
type PreviewRequest struct {
	Values visibility.Values
	Mode   models.Mode
	Rows   map[int]int
}

// PreviewField is one visible field in a rendered preview. Repeaters carry
// their instantiated rows; every other field carries the value key its
// input reads and writes.
type PreviewField struct {
	Field    models.Field `json:"field"`
	ValueKey string       `json:"valueKey,omitempty"`
	Rows     []PreviewRow `json:"rows,omitempty"`
}

// PreviewRow is one instantiated repeater row, filtered to the fields
// visible given the row's own values.
type PreviewRow struct {
	Index  int            `json:"index"`
	Fields []PreviewField `json:"fields"`
}

// Preview renders the visible projection of a journey for the given values
// and mode. Hidden fields are pruned, repeaters are expanded row by row.
func (s *Journey) Preview(ctx context.Context, name string, req PreviewRequest) ([]PreviewField, error) {
	journey, err := s.FetchByName(ctx, name)
	if err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = models.ModeDIP
	}

	eval := visibility.NewEvaluator()
	visible := make([]PreviewField, 0, len(journey.Fields))

	for _, f := range journey.Fields {
		if !eval.Visible(journey.Fields, f, req.Values, mode) {
			continue
		}

		pf := PreviewField{Field: f}

		if f.Type == models.FieldTypeRepeater {
			pf.Rows = s.previewRows(eval, journey.Fields, f, req, mode)
		} else {
			pf.ValueKey = visibility.Key(f.ID)
		}

		visible = append(visible, pf)
	}

	return visible, nil
}

func (s *Journey) previewRows(
	eval *visibility.Evaluator,
	fields []models.Field,
	rep models.Field,
	req PreviewRequest,
	mode models.Mode,
) []PreviewRow {
	rows := req.Rows[rep.ID]
	if rows <= 0 {
		rows = 1
	}

	expanded := repeater.Expand(rep, rows)
	result := make([]PreviewRow, 0, len(expanded))

	for _, row := range expanded {
		pr := PreviewRow{Index: row.Index, Fields: make([]PreviewField, 0, len(row.Fields))}

		for _, rf := range row.Fields {
			if !repeater.VisibleInRow(eval, fields, rf, req.Values, mode) {
				continue
			}

			pr.Fields = append(pr.Fields, PreviewField{
				Field:    rf.Field,
				ValueKey: rf.ValueKey,
			})
		}

		result = append(result, pr)
	}

	return result
}
