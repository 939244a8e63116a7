package model

// Option is one entry of an array-of-option config field (select, radio, checkbox, ...)
type Option struct {
	Value       string
	Label       string
	Price       *float64
	Image       string
	Description string
	Icon        string
}

// Options decodes the option list stored under key. Entries that are not objects are skipped.
func (c Config) Options(key string) []Option {
	v, ok := c.Lookup(key)
	if !ok {
		return nil
	}

	var entries []map[string]any
	switch list := v.(type) {
	case []any:
		for _, item := range list {
			if m, ok := asMap(item); ok {
				entries = append(entries, m)
			}
		}
	case []map[string]any:
		entries = list
	default:
		return nil
	}

	options := make([]Option, 0, len(entries))
	for _, m := range entries {
		opt := Option{}
		opt.Value, _ = m["value"].(string)
		opt.Label, _ = m["label"].(string)
		opt.Image, _ = m["image"].(string)
		opt.Description, _ = m["description"].(string)
		opt.Icon, _ = m["icon"].(string)
		if p, ok := ToNumber(m["price"]); ok {
			price := p
			opt.Price = &price
		}
		options = append(options, opt)
	}
	return options
}

// ToConfigValue encodes the option as a config object. Empty fields are omitted.
func (o Option) ToConfigValue() map[string]any {
	m := map[string]any{
		"value": o.Value,
		"label": o.Label,
	}
	if o.Price != nil {
		m["price"] = *o.Price
	}
	if o.Image != "" {
		m["image"] = o.Image
	}
	if o.Description != "" {
		m["description"] = o.Description
	}
	if o.Icon != "" {
		m["icon"] = o.Icon
	}
	return m
}

// OptionsToConfigValue encodes a list of options as a config array
func OptionsToConfigValue(options []Option) []any {
	out := make([]any, len(options))
	for i, o := range options {
		out[i] = o.ToConfigValue()
	}
	return out
}
