package schema

import (
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
)

// Kind is the value kind of a config field
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindEnum    Kind = "enum"
	KindOptions Kind = "options"
	KindStrings Kind = "strings"
	KindObject  Kind = "object"
)

// Field declares one config key of an element type
type Field struct {
	Name    string `json:"name"`
	Kind    Kind   `json:"kind"`
	Default any    `json:"default,omitempty"`
	// Nullable numbers may hold null, which means "unset" (e.g. unbounded maxSelections)
	Nullable bool          `json:"nullable,omitempty"`
	Enum     []string      `json:"enum,omitempty"`
	Fields   []Field       `json:"fields,omitempty"`
	Option   *OptionSchema `json:"option,omitempty"`
}

// OptionSchema lists the keys an entry of an options field may carry
type OptionSchema struct {
	Keys []string `json:"keys"`
}

// Schema is the declared configuration of one element type
type Schema struct {
	Type types.ElementType `json:"type"`
	// PrimaryField is the dot path of the value that must be non-empty when the element is required
	PrimaryField string  `json:"primaryField"`
	Fields       []Field `json:"fields"`
}

// Field returns the declaration at a dot separated path
func (s *Schema) Field(path string) (Field, bool) {
	fields := s.Fields
	parts := strings.Split(path, ".")
	for i, part := range parts {
		found := false
		for _, f := range fields {
			if f.Name != part {
				continue
			}
			if i == len(parts)-1 {
				return f, true
			}
			if f.Kind != KindObject {
				return Field{}, false
			}
			fields = f.Fields
			found = true
			break
		}
		if !found {
			return Field{}, false
		}
	}
	return Field{}, false
}

// HasField reports whether the schema declares the path
func (s *Schema) HasField(path string) bool {
	_, ok := s.Field(path)
	return ok
}

// Registry maps element type tags to their schema
type Registry struct {
	schemas map[types.ElementType]*Schema
	order   []types.ElementType
}

// NewRegistry creates a registry from the given schemas
func NewRegistry(schemas ...*Schema) *Registry {
	r := &Registry{
		schemas: make(map[types.ElementType]*Schema, len(schemas)),
	}
	for _, s := range schemas {
		r.Register(s)
	}
	return r
}

// Register adds or replaces the schema for its type
func (r *Registry) Register(s *Schema) {
	if _, exists := r.schemas[s.Type]; !exists {
		r.order = append(r.order, s.Type)
	}
	r.schemas[s.Type] = s
}

// SchemaFor returns the schema of t or ErrUnsupportedElementType
func (r *Registry) SchemaFor(t types.ElementType) (*Schema, error) {
	s, ok := r.schemas[t]
	if !ok {
		return nil, goerr.Wrap(model.ErrUnsupportedElementType, "no schema registered",
			goerr.V(model.ElementTypeKey, t))
	}
	return s, nil
}

// Has reports whether t is registered
func (r *Registry) Has(t types.ElementType) bool {
	_, ok := r.schemas[t]
	return ok
}

// Types returns the registered types in registration order
func (r *Registry) Types() []types.ElementType {
	out := make([]types.ElementType, len(r.order))
	copy(out, r.order)
	return out
}

// Schemas returns the registered schemas in registration order
func (r *Registry) Schemas() []*Schema {
	out := make([]*Schema, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.schemas[t])
	}
	return out
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of all built-in element types
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(builtinSchemas()...)
	})
	return defaultRegistry
}

// SchemaFor looks up t in the default registry
func SchemaFor(t types.ElementType) (*Schema, error) {
	return Default().SchemaFor(t)
}
