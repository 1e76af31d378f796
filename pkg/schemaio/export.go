// Package schemaio produces and consumes the journey schema exchange
// format: the cleaned JSON projection users download and the import shapes
// accepted when creating a journey from a file.
package schemaio

import (
	"fmt"
	"time"

	"github.com/formforge/formforge/pkg/models"
)

const schemaVersion = "1.0"

// Export is the download artifact wrapping a cleaned schema.
type Export struct {
	Metadata Metadata     `json:"metadata"`
	Schema   []CleanField `json:"schema"`
}

// Metadata identifies the exported journey.
type Metadata struct {
	Journey       string    `json:"journey"`
	Timestamp     time.Time `json:"timestamp"`
	SchemaVersion string    `json:"schemaVersion"`
}

// CleanField is a field projected down to the attributes relevant to its
// type. Pointer fields distinguish "irrelevant for this type" (omitted)
// from a relevant false/zero value (emitted).
type CleanField struct {
	ID                  int              `json:"id"`
	Position            int              `json:"position"`
	Type                models.FieldType `json:"type"`
	Label               string           `json:"label"`
	Mandatory           *bool            `json:"mandatory,omitempty"`
	FMA                 *bool            `json:"fma,omitempty"`
	Tiptext             string           `json:"tiptext,omitempty"`
	Options             []string         `json:"options,omitempty"`
	Multiselect         *bool            `json:"multiselect,omitempty"`
	NumbersOnly         *bool            `json:"numbersOnly,omitempty"`
	AllowInternational  *bool            `json:"allowInternational,omitempty"`
	Bold                *bool            `json:"bold,omitempty"`
	MaxEntries          *int             `json:"maxEntries,omitempty"`
	RepeaterButtonLabel string           `json:"repeaterButtonLabel,omitempty"`
	Children            []CleanField     `json:"children,omitempty"`
	Conditional         *CleanCondition  `json:"conditional,omitempty"`
}

// CleanCondition keeps either the choice form or the logic form of a
// condition, never both.
type CleanCondition struct {
	TriggerID       int              `json:"triggerId"`
	SelectedOptions []string         `json:"selectedOptions,omitempty"`
	LogicType       models.LogicType `json:"logicType,omitempty"`
	Value1          string           `json:"value1,omitempty"`
	Value2          string           `json:"value2,omitempty"`
}

// ExportSchema builds the cleaned export artifact for a journey.
func ExportSchema(j models.Journey, now time.Time) Export {
	return Export{
		Metadata: Metadata{
			Journey:       j.Name,
			Timestamp:     now.UTC(),
			SchemaVersion: schemaVersion,
		},
		Schema: CleanFields(j.Fields),
	}
}

// CleanFields projects a field list, assigning 1-based positions within it.
func CleanFields(fields []models.Field) []CleanField {
	cleaned := make([]CleanField, 0, len(fields))
	for i, f := range fields {
		cleaned = append(cleaned, cleanField(f, i+1))
	}

	return cleaned
}

func cleanField(f models.Field, position int) CleanField {
	clean := CleanField{
		ID:       f.ID,
		Position: position,
		Type:     f.Type,
		Label:    f.Label,
	}

	if !f.IsStatic() {
		clean.Mandatory = boolPtr(f.Mandatory)
		clean.FMA = boolPtr(f.FMA)
		clean.Tiptext = f.Tiptext
	}

	if f.IsChoice() {
		clean.Options = f.Options
		clean.Multiselect = boolPtr(f.Multiselect)
	}

	switch f.Type {
	case models.FieldTypeTextField:
		clean.NumbersOnly = boolPtr(f.NumbersOnly)
	case models.FieldTypePhoneNumber:
		clean.AllowInternational = boolPtr(f.AllowInternational)
	case models.FieldTypeFixedText:
		clean.Bold = boolPtr(f.Bold)
	case models.FieldTypeRepeater:
		clean.MaxEntries = intPtr(f.MaxEntries)
		clean.RepeaterButtonLabel = f.RepeaterButtonLabel

		if len(f.Children) > 0 {
			clean.Children = CleanFields(f.Children)
		}
	}

	if f.Conditional != nil {
		clean.Conditional = cleanCondition(*f.Conditional)
	}

	return clean
}

func cleanCondition(c models.Condition) *CleanCondition {
	clean := &CleanCondition{TriggerID: c.TriggerID}

	if c.IsChoice() {
		clean.SelectedOptions = c.SelectedOptions

		return clean
	}

	clean.LogicType = c.LogicType
	clean.Value1 = c.Value1
	clean.Value2 = c.Value2

	return clean
}

// ExportFilename names the download artifact:
// "<journey> - DD Month YYYY - saved|unsaved - [HH:MM.SS].json".
func ExportFilename(journey string, dirty bool, now time.Time) string {
	if journey == "" {
		journey = "Journey"
	}

	status := "saved"
	if dirty {
		status = "unsaved"
	}

	return fmt.Sprintf("%s - %02d %s %d - %s - [%02d:%02d.%02d].json",
		journey, now.Day(), now.Month().String(), now.Year(), status,
		now.Hour(), now.Minute(), now.Second())
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }
