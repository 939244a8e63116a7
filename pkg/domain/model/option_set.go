package model

import (
	"time"

	"github.com/google/uuid"
)

// OptionSetID is the identifier of an option set
type OptionSetID string

// NewOptionSetID generates a new unique option set ID
func NewOptionSetID() OptionSetID {
	return OptionSetID(uuid.New().String())
}

// OptionSet is a named, ordered collection of elements that a merchant attaches to a product
type OptionSet struct {
	ID            OptionSetID `json:"id"`
	Name          string      `json:"name"`
	Elements      []*Element  `json:"elements"`
	IsDefaultOpen bool        `json:"isDefaultOpen"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Element returns the element with the given ID and its index, or nil and -1
func (s *OptionSet) Element(id ElementID) (*Element, int) {
	for i, el := range s.Elements {
		if el.ID == id {
			return el, i
		}
	}
	return nil, -1
}
