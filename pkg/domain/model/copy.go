package model

// Clone returns a deep copy of the config. Nested arrays and objects are copied,
// so mutating the copy never affects the original.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = CopyValue(v)
	}
	return out
}

// CopyValue deep copies a JSON-like config value
func CopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = CopyValue(item)
		}
		return m
	case Config:
		return map[string]any(val.Clone())
	case []any:
		list := make([]any, len(val))
		for i, item := range val {
			list[i] = CopyValue(item)
		}
		return list
	case []map[string]any:
		list := make([]any, len(val))
		for i, item := range val {
			list[i] = CopyValue(item)
		}
		return list
	case []string:
		list := make([]any, len(val))
		for i, item := range val {
			list[i] = item
		}
		return list
	default:
		return val
	}
}

// Clone returns a deep copy of the element, keeping its ID
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	return &Element{
		ID:     e.ID,
		Type:   e.Type,
		Config: e.Config.Clone(),
	}
}

// Clone returns a deep copy of the option set, keeping all IDs
func (s *OptionSet) Clone() *OptionSet {
	if s == nil {
		return nil
	}
	copied := &OptionSet{
		ID:            s.ID,
		Name:          s.Name,
		IsDefaultOpen: s.IsDefaultOpen,
		CreatedAt:     s.CreatedAt,
		Elements:      make([]*Element, len(s.Elements)),
	}
	for i, el := range s.Elements {
		copied.Elements[i] = el.Clone()
	}
	return copied
}

// Clone returns a deep copy of the template including its option set snapshots
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	copied := &Template{
		ID:         t.ID,
		Name:       t.Name,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
		OptionSets: make([]*OptionSet, len(t.OptionSets)),
	}
	for i, s := range t.OptionSets {
		copied.OptionSets[i] = s.Clone()
	}
	return copied
}

// CloneOptionSets deep copies a list of option sets
func CloneOptionSets(sets []*OptionSet) []*OptionSet {
	out := make([]*OptionSet, len(sets))
	for i, s := range sets {
		out[i] = s.Clone()
	}
	return out
}

// CloneTemplates deep copies a list of templates
func CloneTemplates(templates []*Template) []*Template {
	out := make([]*Template, len(templates))
	for i, t := range templates {
		out[i] = t.Clone()
	}
	return out
}
