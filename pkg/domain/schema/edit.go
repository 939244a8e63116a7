package schema

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
)

// boundPair is a min/max pair of config paths that must stay ordered
type boundPair struct {
	min, max string
	dates    bool
}

var boundPairs = map[types.ElementType][]boundPair{
	types.ElementTypeText:          {{min: "validation.minLength", max: "validation.maxLength"}},
	types.ElementTypeTextarea:      {{min: "validation.minLength", max: "validation.maxLength"}},
	types.ElementTypeNumber:        {{min: "validation.min", max: "validation.max"}},
	types.ElementTypeFile:          {{min: "minFileSize", max: "maxFileSize"}},
	types.ElementTypeDatetime:      {{min: "minDate", max: "maxDate", dates: true}},
	types.ElementTypeSelect:        {{min: "minSelections", max: "maxSelections"}},
	types.ElementTypeDropdown:      {{min: "minSelections", max: "maxSelections"}},
	types.ElementTypeImageDropdown: {{min: "minSelections", max: "maxSelections"}},
	types.ElementTypeRadio:         {{min: "minSelections", max: "maxSelections"}},
	types.ElementTypeCheckbox:      {{min: "minSelections", max: "maxSelections"}},
}

var exclusiveFlags = map[string]string{
	"disablePastDates":   "disableFutureDates",
	"disableFutureDates": "disablePastDates",
}

// ValidateEdit checks whether setting path to value on cfg is allowed. It does not modify cfg.
// The edit is applied to a copy and the result is checked as a whole, so replacing a parent
// object such as "validation" is held to the same rules as editing one of its leaves.
// Turning on one date restriction flag while the other is on fails with ErrMutuallyExclusiveFlags,
// and a bound that would cross its pair fails with ErrRangeInverted.
func (r *Registry) ValidateEdit(t types.ElementType, cfg model.Config, path string, value any) error {
	s, err := r.SchemaFor(t)
	if err != nil {
		return err
	}

	if f, ok := s.Field(path); ok {
		kinds := &model.ValidationResult{}
		checkKinds(kinds, "", map[string]any{f.Name: value}, []Field{f})
		if !kinds.OK() {
			for i := range kinds.Violations {
				kinds.Violations[i].Field = path
			}
			return kinds.Err()
		}
	}

	next := cfg.Clone()
	if next == nil {
		next = model.Config{}
	}
	next.Set(path, model.CopyValue(value))

	if t == types.ElementTypeDatetime {
		for flag, other := range exclusiveFlags {
			if !touches(path, flag) {
				continue
			}
			if next.Bool(flag) && next.Bool(other) {
				return goerr.Wrap(model.ErrMutuallyExclusiveFlags, "cannot enable both date restrictions",
					goerr.V(model.FieldKey, path),
					goerr.V("enabled", other))
			}
		}
	}

	for _, pair := range boundPairs[t] {
		if !touches(path, pair.min) && !touches(path, pair.max) {
			continue
		}
		lo, lok := next.Lookup(pair.min)
		hi, hok := next.Lookup(pair.max)
		if lok && hok && inverted(lo, hi, pair.dates) {
			return goerr.Wrap(model.ErrRangeInverted, "bound would cross its pair",
				goerr.V(model.FieldKey, path),
				goerr.V("min", lo),
				goerr.V("max", hi))
		}
	}

	return nil
}

// touches reports whether an edit at path replaces the value at field, either directly or through a parent object
func touches(path, field string) bool {
	return path == field || strings.HasPrefix(field, path+".")
}

// ApplyEdit validates and applies a single field edit to el. On error el is left unchanged.
func (r *Registry) ApplyEdit(el *model.Element, path string, value any) error {
	cfg := el.Config
	if cfg == nil {
		completed, err := r.Complete(el.Type, nil)
		if err != nil {
			return err
		}
		cfg = completed
	}

	if err := r.ValidateEdit(el.Type, cfg, path, value); err != nil {
		return err
	}

	cfg.Set(path, model.CopyValue(value))
	el.Config = cfg
	return nil
}

// ValidateEdit checks an edit against the default registry
func ValidateEdit(t types.ElementType, cfg model.Config, path string, value any) error {
	return Default().ValidateEdit(t, cfg, path, value)
}

// ApplyEdit applies an edit using the default registry
func ApplyEdit(el *model.Element, path string, value any) error {
	return Default().ApplyEdit(el, path, value)
}

func inverted(lo, hi any, dates bool) bool {
	if dates {
		ls, _ := lo.(string)
		hs, _ := hi.(string)
		if ls == "" || hs == "" {
			return false
		}
		ld, lok := ParseDate(ls)
		hd, hok := ParseDate(hs)
		return lok && hok && ld.After(hd)
	}
	l, lok := model.ToNumber(lo)
	h, hok := model.ToNumber(hi)
	return lok && hok && l > h
}
