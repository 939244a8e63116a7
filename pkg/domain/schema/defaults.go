package schema

import (
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
)

// Materialize returns a schema-complete config for a new element of type t.
// Array and object defaults are copied, so two configs never share mutable state.
func (r *Registry) Materialize(t types.ElementType) (model.Config, error) {
	return r.Complete(t, nil)
}

// Complete returns a copy of partial in which every absent declared field,
// including nested object fields, holds its schema default. Present and undeclared keys are kept.
func (r *Registry) Complete(t types.ElementType, partial model.Config) (model.Config, error) {
	s, err := r.SchemaFor(t)
	if err != nil {
		return nil, err
	}

	cfg := partial.Clone()
	if cfg == nil {
		cfg = model.Config{}
	}
	fillDefaults(cfg, s.Fields)
	return cfg, nil
}

// NewElement creates an element of type t with a fresh ID and default config
func (r *Registry) NewElement(t types.ElementType) (*model.Element, error) {
	cfg, err := r.Materialize(t)
	if err != nil {
		return nil, err
	}
	return &model.Element{
		ID:     model.NewElementID(),
		Type:   t,
		Config: cfg,
	}, nil
}

func fillDefaults(cfg map[string]any, fields []Field) {
	for _, f := range fields {
		current, exists := cfg[f.Name]

		if f.Kind == KindObject {
			if !exists || current == nil {
				nested := map[string]any{}
				fillDefaults(nested, f.Fields)
				cfg[f.Name] = nested
				continue
			}
			if nested, ok := current.(map[string]any); ok {
				fillDefaults(nested, f.Fields)
			}
			continue
		}

		if exists && (current != nil || f.Nullable) {
			continue
		}
		cfg[f.Name] = defaultValue(f)
	}
}

func defaultValue(f Field) any {
	if f.Default == nil {
		switch f.Kind {
		case KindOptions, KindStrings:
			return []any{}
		default:
			return nil
		}
	}
	return model.CopyValue(f.Default)
}

// Materialize returns a default config for t from the default registry
func Materialize(t types.ElementType) (model.Config, error) {
	return Default().Materialize(t)
}

// Complete fills absent fields of partial from the default registry
func Complete(t types.ElementType, partial model.Config) (model.Config, error) {
	return Default().Complete(t, partial)
}

// NewElement creates an element of type t from the default registry
func NewElement(t types.ElementType) (*model.Element, error) {
	return Default().NewElement(t)
}
