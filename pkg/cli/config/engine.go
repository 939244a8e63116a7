package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
	"github.com/secmon-lab/tailorkit/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Engine holds CLI flags for engine behavior
type Engine struct {
	emptyTemplatePolicy string
}

// Flags returns CLI flags for engine configuration
func (e *Engine) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "empty-template-policy",
			Usage:       "What to do with a template whose last option set is deleted (keep, remove)",
			Value:       string(types.EmptyTemplatePolicyKeep),
			Sources:     cli.EnvVars("TAILORKIT_EMPTY_TEMPLATE_POLICY"),
			Destination: &e.emptyTemplatePolicy,
		},
	}
}

// Configure returns the use case options for the engine settings
func (e *Engine) Configure() ([]usecase.Option, error) {
	policy := types.EmptyTemplatePolicy(e.emptyTemplatePolicy)
	if err := policy.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid engine configuration",
			goerr.V(OptionKey, "empty-template-policy"),
			goerr.V(ValueKey, e.emptyTemplatePolicy),
		)
	}

	return []usecase.Option{
		usecase.WithEmptyTemplatePolicy(policy),
	}, nil
}
