package schema

import (
	"fmt"
	"regexp"
	"time"

	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
)

// Validate checks cfg against the schema of t and the cross-field rules of the type.
// Undeclared keys are ignored. The returned result is never nil.
func (r *Registry) Validate(t types.ElementType, cfg model.Config) *model.ValidationResult {
	result := &model.ValidationResult{}

	s, err := r.SchemaFor(t)
	if err != nil {
		result.Add("type", types.RuleUnsupportedElementType, "element type %q is not supported", t)
		return result
	}

	checkKinds(result, "", map[string]any(cfg), s.Fields)
	checkRequired(result, s, cfg)

	checkWidth(result, s, cfg)
	switch {
	case t.IsInput():
		checkInput(result, t, cfg)
	case t.IsSelection():
		checkSelection(result, cfg)
	}

	switch t {
	case types.ElementTypeDatetime:
		checkDatetime(result, cfg)
	case types.ElementTypeFile:
		checkFile(result, cfg)
	case types.ElementTypeButton:
		checkNonNegative(result, cfg, "borderRadius")
	case types.ElementTypeHeading:
		if size, ok := cfg.Number("fontSize"); ok && size <= 0 {
			result.Add("fontSize", types.RuleOutOfRange, "font size must be positive")
		}
		checkNonNegative(result, cfg, "marginTop", "marginBottom")
	case types.ElementTypeDivider:
		checkNonNegative(result, cfg, "thickness", "marginTop", "marginBottom")
	case types.ElementTypeSpacing:
		checkNonNegative(result, cfg, "height")
	}

	return result
}

// ValidateOptionSet checks the save boundary of an option set: it needs a name,
// at least one element, and every element must validate.
func (r *Registry) ValidateOptionSet(set *model.OptionSet) *model.ValidationResult {
	result := &model.ValidationResult{}
	if set.Name == "" {
		result.Add("name", types.RuleRequired, "option set name is required")
	}
	if len(set.Elements) == 0 {
		result.Add("elements", types.RuleEmptyOptionSet, "option set must contain at least one element")
		return result
	}
	for i, el := range set.Elements {
		result.Merge(r.Validate(el.Type, el.Config), el.ID, fmt.Sprintf("elements[%d].", i))
	}
	return result
}

// Validate checks cfg against the default registry
func Validate(t types.ElementType, cfg model.Config) *model.ValidationResult {
	return Default().Validate(t, cfg)
}

// ValidateOptionSet checks an option set against the default registry
func ValidateOptionSet(set *model.OptionSet) *model.ValidationResult {
	return Default().ValidateOptionSet(set)
}

func checkKinds(result *model.ValidationResult, prefix string, cfg map[string]any, fields []Field) {
	for _, f := range fields {
		v, exists := cfg[f.Name]
		if !exists {
			continue
		}
		path := prefix + f.Name

		if v == nil {
			if f.Nullable || f.Kind == KindObject {
				continue
			}
			result.Add(path, types.RuleTypeMismatch, "%s must not be null", path)
			continue
		}

		switch f.Kind {
		case KindString:
			if _, ok := v.(string); !ok {
				result.Add(path, types.RuleTypeMismatch, "%s must be a string", path)
			}
		case KindNumber:
			if _, ok := model.ToNumber(v); !ok {
				result.Add(path, types.RuleTypeMismatch, "%s must be a number", path)
			}
		case KindBoolean:
			if _, ok := v.(bool); !ok {
				result.Add(path, types.RuleTypeMismatch, "%s must be a boolean", path)
			}
		case KindEnum:
			s, ok := v.(string)
			if !ok {
				result.Add(path, types.RuleTypeMismatch, "%s must be a string", path)
				continue
			}
			if !contains(f.Enum, s) {
				result.Add(path, types.RuleInvalidEnum, "%s must be one of %v, got %q", path, f.Enum, s)
			}
		case KindStrings:
			if !isStringList(v) {
				result.Add(path, types.RuleTypeMismatch, "%s must be a list of strings", path)
			}
		case KindOptions:
			checkOptionEntries(result, path, v)
		case KindObject:
			nested, ok := toMap(v)
			if !ok {
				result.Add(path, types.RuleTypeMismatch, "%s must be an object", path)
				continue
			}
			checkKinds(result, path+".", nested, f.Fields)
		}
	}
}

func checkOptionEntries(result *model.ValidationResult, path string, v any) {
	var entries []any
	switch list := v.(type) {
	case []any:
		entries = list
	case []map[string]any:
		for _, m := range list {
			entries = append(entries, m)
		}
	default:
		result.Add(path, types.RuleTypeMismatch, "%s must be a list of options", path)
		return
	}

	for i, entry := range entries {
		entryPath := fmt.Sprintf("%s[%d]", path, i)
		m, ok := toMap(entry)
		if !ok {
			result.Add(entryPath, types.RuleTypeMismatch, "%s must be an object", entryPath)
			continue
		}
		for _, key := range []string{"value", "label", "image", "description", "icon"} {
			if val, exists := m[key]; exists && val != nil {
				if _, ok := val.(string); !ok {
					result.Add(entryPath+"."+key, types.RuleTypeMismatch, "%s.%s must be a string", entryPath, key)
				}
			}
		}
		if val, exists := m["price"]; exists && val != nil {
			if _, ok := model.ToNumber(val); !ok {
				result.Add(entryPath+".price", types.RuleTypeMismatch, "%s.price must be a number", entryPath)
			}
		}
	}
}

func checkRequired(result *model.ValidationResult, s *Schema, cfg model.Config) {
	if s.PrimaryField == "" {
		return
	}
	// Elements without a required flag (button, heading, redirect) always need their primary value
	if s.HasField("required") && !cfg.Bool("required") {
		return
	}
	if cfg.String(s.PrimaryField) == "" {
		result.Add(s.PrimaryField, types.RuleRequired, "%s is required", s.PrimaryField)
	}
}

func checkWidth(result *model.ValidationResult, s *Schema, cfg model.Config) {
	if !s.HasField("width") || cfg.String("width") != string(types.WidthCustom) {
		return
	}
	if w, ok := cfg.Number("customWidth"); ok && w <= 0 {
		result.Add("customWidth", types.RuleOutOfRange, "custom width must be positive")
	}
}

func checkInput(result *model.ValidationResult, t types.ElementType, cfg model.Config) {
	switch t {
	case types.ElementTypeText, types.ElementTypeTextarea:
		checkNonNegative(result, cfg, "validation.minLength", "validation.maxLength")
		checkNumberRange(result, cfg, "validation.minLength", "validation.maxLength")
	case types.ElementTypeNumber:
		checkNumberRange(result, cfg, "validation.min", "validation.max")
		if step, ok := cfg.Number("validation.step"); ok && step <= 0 {
			result.Add("validation.step", types.RuleOutOfRange, "step must be positive")
		}
	}
	if t == types.ElementTypeTextarea {
		if rows, ok := cfg.Number("rows"); ok && rows < 1 {
			result.Add("rows", types.RuleOutOfRange, "rows must be at least 1")
		}
	}

	if pattern := cfg.String("validation.pattern"); pattern != "" {
		if _, err := regexp.Compile(pattern); err != nil {
			result.Add("validation.pattern", types.RuleInvalidPattern, "pattern does not compile: %v", err)
		}
	}
}

func checkSelection(result *model.ValidationResult, cfg model.Config) {
	options := cfg.Options("options")
	if len(options) == 0 {
		result.Add("options", types.RuleEmptyOptions, "at least one option is required")
	}

	seen := make(map[string]bool, len(options))
	for i, opt := range options {
		if seen[opt.Value] {
			result.Add(fmt.Sprintf("options[%d].value", i), types.RuleDuplicateOptionValue,
				"option value %q is used more than once", opt.Value)
		}
		seen[opt.Value] = true
	}

	checkNonNegative(result, cfg, "minSelections")
	if limit, ok := cfg.Number("maxSelections"); ok && limit < 1 {
		result.Add("maxSelections", types.RuleOutOfRange, "maxSelections must be at least 1 when set")
	}
	checkNumberRange(result, cfg, "minSelections", "maxSelections")
}

func checkDatetime(result *model.ValidationResult, cfg model.Config) {
	if cfg.Bool("disablePastDates") && cfg.Bool("disableFutureDates") {
		result.Add("disableFutureDates", types.RuleMutuallyExclusiveFlags,
			"disablePastDates and disableFutureDates cannot both be enabled")
	}

	minDate, minOK := parseDateField(result, cfg, "minDate")
	maxDate, maxOK := parseDateField(result, cfg, "maxDate")
	if minOK && maxOK && minDate.After(maxDate) {
		result.Add("minDate", types.RuleRangeInverted, "minDate must not be after maxDate")
	}
}

func checkFile(result *model.ValidationResult, cfg model.Config) {
	checkNonNegative(result, cfg, "minFileSize", "maxFileSize")
	checkNumberRange(result, cfg, "minFileSize", "maxFileSize")
	if cfg.Bool("allowMultiple") {
		if n, ok := cfg.Number("maxFiles"); ok && n < 1 {
			result.Add("maxFiles", types.RuleOutOfRange, "maxFiles must be at least 1")
		}
	}
}

func checkNonNegative(result *model.ValidationResult, cfg model.Config, paths ...string) {
	for _, path := range paths {
		if v, ok := cfg.Number(path); ok && v < 0 {
			result.Add(path, types.RuleOutOfRange, "%s must not be negative", path)
		}
	}
}

func checkNumberRange(result *model.ValidationResult, cfg model.Config, minPath, maxPath string) {
	lo, loOK := cfg.Number(minPath)
	hi, hiOK := cfg.Number(maxPath)
	if loOK && hiOK && lo > hi {
		result.Add(minPath, types.RuleRangeInverted, "%s (%v) must not exceed %s (%v)", minPath, lo, maxPath, hi)
	}
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04"}

// ParseDate parses the date formats accepted for minDate and maxDate
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func parseDateField(result *model.ValidationResult, cfg model.Config, path string) (time.Time, bool) {
	s := cfg.String(path)
	if s == "" {
		return time.Time{}, false
	}
	d, ok := ParseDate(s)
	if !ok {
		result.Add(path, types.RuleTypeMismatch, "%s must be a date such as 2024-01-31", path)
	}
	return d, ok
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func isStringList(v any) bool {
	switch list := v.(type) {
	case []string:
		return true
	case []any:
		for _, item := range list {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case model.Config:
		return m, true
	default:
		return nil, false
	}
}
