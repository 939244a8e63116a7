package types

import "github.com/m-mizutani/goerr/v2"

// EmptyTemplatePolicy decides what happens to a template whose last option set is deleted
type EmptyTemplatePolicy string

const (
	// EmptyTemplatePolicyKeep leaves the template in place with no option sets
	EmptyTemplatePolicyKeep EmptyTemplatePolicy = "keep"
	// EmptyTemplatePolicyRemove deletes the template together with its last option set
	EmptyTemplatePolicyRemove EmptyTemplatePolicy = "remove"
)

func (p EmptyTemplatePolicy) Validate() error {
	switch p {
	case EmptyTemplatePolicyKeep, EmptyTemplatePolicyRemove:
		return nil
	default:
		return goerr.New("invalid empty template policy", goerr.V("policy", string(p)))
	}
}

func (p EmptyTemplatePolicy) String() string {
	return string(p)
}
