package models

import "time"

// JourneyType separates ordinary journeys from the admin template journey,
// whose fields additionally carry integration tags for filtered cloning.
type JourneyType string

const (
	JourneyTypeStandard JourneyType = "standard"
	JourneyTypeAdmin    JourneyType = "admin"
)

// Mode selects which rendition of a journey is being previewed. Fields
// flagged fma are suppressed entirely in DIP mode.
type Mode string

const (
	ModeDIP Mode = "DIP"
	ModeFMA Mode = "FMA"
)

// Journey is a named, persisted form schema. Name is the unique key
// (case-sensitive); ID is a stable identifier assigned at creation. The
// field tree is replaced wholesale on save; last write wins.
type Journey struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"           validate:"required"`
	Fields         []Field     `json:"fields"`
	Type           JourneyType `json:"type"`
	Timestamp      time.Time   `json:"timestamp"`
	CreatedBy      string      `json:"createdBy,omitempty"`
	LastModifiedBy string      `json:"lastModifiedBy,omitempty"`
}

// DefaultFields is the tree a blank journey starts with.
func DefaultFields() []Field {
	return []Field{
		{ID: 1, Type: FieldTypeHeading, Label: "New Section"},
	}
}
