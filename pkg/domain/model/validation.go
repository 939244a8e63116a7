package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/secmon-lab/tailorkit/pkg/domain/types"
)

// Violation is a single broken validation rule on one config field
type Violation struct {
	ElementID ElementID  `json:"elementId,omitempty"`
	Field     string     `json:"field"`
	Rule      types.Rule `json:"rule"`
	Message   string     `json:"message"`
}

// ValidationResult is the ordered list of violations found for a config or option set.
// A result without violations is Ok.
type ValidationResult struct {
	Violations []Violation `json:"violations"`
}

// OK returns true if no rule was violated
func (r *ValidationResult) OK() bool {
	return r == nil || len(r.Violations) == 0
}

// Add appends a violation
func (r *ValidationResult) Add(field string, rule types.Rule, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{
		Field:   field,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	})
}

// Merge appends the violations of other, tagging them with the element ID and a field prefix
func (r *ValidationResult) Merge(other *ValidationResult, elementID ElementID, prefix string) {
	if other == nil {
		return
	}
	for _, v := range other.Violations {
		if v.ElementID == "" {
			v.ElementID = elementID
		}
		if prefix != "" {
			v.Field = prefix + v.Field
		}
		r.Violations = append(r.Violations, v)
	}
}

// Has reports whether any violation broke the given rule
func (r *ValidationResult) Has(rule types.Rule) bool {
	if r == nil {
		return false
	}
	for _, v := range r.Violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// Err returns nil for an Ok result and a *ValidationError otherwise
func (r *ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Violations: r.Violations}
}

// ValidationError carries the violations that rejected a save.
// It matches ErrValidationFailed and the sentinel of each violated rule with errors.Is.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Is matches ErrValidationFailed and rule specific sentinels
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidationFailed {
		return true
	}
	for _, v := range e.Violations {
		if sentinel := ruleError(v.Rule); sentinel != nil && sentinel == target {
			return true
		}
	}
	return false
}

// AsValidationError extracts the violations from err when it carries them
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func ruleError(rule types.Rule) error {
	switch rule {
	case types.RuleEmptyOptionSet:
		return ErrEmptyOptionSet
	case types.RuleRangeInverted:
		return ErrRangeInverted
	case types.RuleMutuallyExclusiveFlags:
		return ErrMutuallyExclusiveFlags
	case types.RuleUnsupportedElementType:
		return ErrUnsupportedElementType
	default:
		return nil
	}
}
