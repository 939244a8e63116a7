package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
)

// ElementID is the opaque identifier of an element. It never changes after creation.
type ElementID string

// NewElementID generates a new unique element ID
func NewElementID() ElementID {
	return ElementID(uuid.New().String())
}

// Element is a single configurable UI unit inside an option set
type Element struct {
	ID     ElementID         `json:"id"`
	Type   types.ElementType `json:"type"`
	Config Config            `json:"config"`
}

// Config is the type-specific configuration record of an element.
// Values follow the JSON data model: string, float64, bool, nil, []any and map[string]any.
// Keys that are not declared by the element schema are kept as-is.
type Config map[string]any

// Lookup returns the value at a dot separated path such as "basic.url"
func (c Config) Lookup(path string) (any, bool) {
	var cur any = map[string]any(c)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		v, exists := m[part]
		if !exists {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// Set stores value at a dot separated path, creating intermediate objects as needed
func (c Config) Set(path string, value any) {
	parts := strings.Split(path, ".")
	cur := map[string]any(c)
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(cur[part])
		if !ok {
			next = map[string]any{}
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

// String returns the string at path, or "" when absent or not a string
func (c Config) String(path string) string {
	v, ok := c.Lookup(path)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Bool returns the boolean at path, or false when absent or not a boolean
func (c Config) Bool(path string) bool {
	v, ok := c.Lookup(path)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Number returns the number at path. ok is false when the value is absent, null or not numeric.
func (c Config) Number(path string) (float64, bool) {
	v, exists := c.Lookup(path)
	if !exists {
		return 0, false
	}
	return ToNumber(v)
}

// Strings returns the string list at path
func (c Config) Strings(path string) []string {
	v, ok := c.Lookup(path)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// ToNumber converts the numeric kinds that can appear in a config into float64
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Config:
		return m, true
	default:
		return nil, false
	}
}
