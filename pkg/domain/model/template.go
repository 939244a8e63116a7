package model

import (
	"time"

	"github.com/google/uuid"
)

// TemplateID is the identifier of a template
type TemplateID string

// NewTemplateID generates a new unique template ID
func NewTemplateID() TemplateID {
	return TemplateID(uuid.New().String())
}

// Template bundles snapshots of option sets for reuse across products.
// OptionSets holds copies, not references; they are refreshed by explicit propagation.
type Template struct {
	ID         TemplateID   `json:"id"`
	Name       string       `json:"name"`
	OptionSets []*OptionSet `json:"optionSets"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// Contains reports whether the template holds a snapshot of the option set
func (t *Template) Contains(id OptionSetID) bool {
	for _, s := range t.OptionSets {
		if s.ID == id {
			return true
		}
	}
	return false
}

// OptionSetIDs returns the IDs of the snapshots in order
func (t *Template) OptionSetIDs() []OptionSetID {
	ids := make([]OptionSetID, len(t.OptionSets))
	for i, s := range t.OptionSets {
		ids[i] = s.ID
	}
	return ids
}
