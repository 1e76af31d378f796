// Package models defines the core domain models for journey form schemas.
package models

import (
	"fmt"
	"strings"
)

// FieldType identifies the kind of form control a field renders as.
type FieldType string

const (
	FieldTypeHeading       FieldType = "heading"
	FieldTypeFixedText     FieldType = "fixed text"
	FieldTypeTextField     FieldType = "text field"
	FieldTypeCurrency      FieldType = "currency"
	FieldTypeTextArea      FieldType = "text area"
	FieldTypeDropdown      FieldType = "dropdown"
	FieldTypeRadioButtons  FieldType = "radio buttons"
	FieldTypeCheckbox      FieldType = "checkbox"
	FieldTypeCalendar      FieldType = "calendar"
	FieldTypeAddressGroup  FieldType = "address group"
	FieldTypeRepeater      FieldType = "repeater"
	FieldTypeSortCode      FieldType = "sort code"
	FieldTypeAccountNumber FieldType = "account number"
	FieldTypePhoneNumber   FieldType = "phone number"
)

// FieldTypes lists every valid field type in display order.
var FieldTypes = []FieldType{
	FieldTypeTextField,
	FieldTypeCurrency,
	FieldTypeTextArea,
	FieldTypeDropdown,
	FieldTypeRadioButtons,
	FieldTypeCheckbox,
	FieldTypeHeading,
	FieldTypeFixedText,
	FieldTypeCalendar,
	FieldTypeAddressGroup,
	FieldTypeRepeater,
	FieldTypeSortCode,
	FieldTypeAccountNumber,
	FieldTypePhoneNumber,
}

// ParseFieldType normalizes a raw type string to a known FieldType.
func ParseFieldType(raw string) (FieldType, error) {
	candidate := FieldType(strings.ToLower(strings.TrimSpace(raw)))
	for _, t := range FieldTypes {
		if t == candidate {
			return t, nil
		}
	}

	return "", fmt.Errorf("unknown field type %q", raw)
}

// Field is a node in a journey's schema tree. Children is populated only for
// repeater fields; every other type behaves as a leaf.
type Field struct {
	ID                  int        `json:"id"                            validate:"required,min=1"`
	Type                FieldType  `json:"type"                          validate:"required"`
	Label               string     `json:"label"                         validate:"required"`
	Mandatory           bool       `json:"mandatory"`
	FMA                 bool       `json:"fma"`
	Options             []string   `json:"options,omitempty"`
	Multiselect         bool       `json:"multiselect,omitempty"`
	NumbersOnly         bool       `json:"numbersOnly,omitempty"`
	AllowInternational  bool       `json:"allowInternational,omitempty"`
	Bold                bool       `json:"bold,omitempty"`
	MaxEntries          int        `json:"maxEntries,omitempty"          validate:"min=0"`
	RepeaterButtonLabel string     `json:"repeaterButtonLabel,omitempty"`
	Tiptext             string     `json:"tiptext,omitempty"`
	Children            []Field    `json:"children,omitempty"`
	Conditional         *Condition `json:"conditional,omitempty"`
	Integrations        []string   `json:"integrations,omitempty"`
}

// IsStatic reports whether the field carries no user input (headings and
// fixed text are rendered but never answered, so mandatory/fma are
// irrelevant for them).
func (f Field) IsStatic() bool {
	return f.Type == FieldTypeHeading || f.Type == FieldTypeFixedText
}

// IsChoice reports whether the field offers a fixed option set.
func (f Field) IsChoice() bool {
	switch f.Type {
	case FieldTypeDropdown, FieldTypeRadioButtons, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// NewField builds a field of the given type with the standard per-type
// defaults applied.
func NewField(t FieldType, id int) Field {
	field := Field{
		ID:    id,
		Type:  t,
		Label: defaultLabel(t),
	}

	switch t {
	case FieldTypeCheckbox:
		field.Options = []string{"Checkbox option"}
	case FieldTypeDropdown, FieldTypeRadioButtons:
		field.Options = []string{"Option 1", "Option 2", "Option 3"}
	case FieldTypeRepeater:
		field.RepeaterButtonLabel = "+ Add"
	}

	return field
}

func defaultLabel(t FieldType) string {
	switch t {
	case FieldTypeRepeater:
		return "Repeater label"
	case FieldTypeFixedText:
		return "Edit text"
	default:
		return "Question label"
	}
}
