package interfaces

import (
	"context"
)

// Storage keys of the two persisted collections
const (
	StorageKeyOptionSets = "optionSets"
	StorageKeyTemplates  = "templates"
)

// Storage is the narrow key-value port the engine persists through.
// Each key holds one JSON document.
type Storage interface {
	// Load returns the JSON stored under key, or nil without error if nothing is stored
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the JSON stored under key
	Save(ctx context.Context, key string, data []byte) error

	// Close releases backend resources
	Close() error
}
