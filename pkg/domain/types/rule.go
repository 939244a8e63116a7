package types

// Rule identifies which validation rule a violation broke
type Rule string

const (
	RuleUnsupportedElementType Rule = "UnsupportedElementType"
	RuleEmptyOptionSet         Rule = "EmptyOptionSet"
	RuleRequired               Rule = "Required"
	RuleTypeMismatch           Rule = "TypeMismatch"
	RuleInvalidEnum            Rule = "InvalidEnum"
	RuleRangeInverted          Rule = "RangeInverted"
	RuleOutOfRange             Rule = "OutOfRange"
	RuleMutuallyExclusiveFlags Rule = "MutuallyExclusiveFlags"
	RuleInvalidPattern         Rule = "InvalidPattern"
	RuleEmptyOptions           Rule = "EmptyOptions"
	RuleDuplicateOptionValue   Rule = "DuplicateOptionValue"
)

// String returns the string representation of the rule
func (r Rule) String() string {
	return string(r)
}
