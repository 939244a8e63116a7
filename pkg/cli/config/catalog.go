package config

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/service/commerce"
	"github.com/secmon-lab/tailorkit/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Catalog holds CLI flags for the commerce catalog
type Catalog struct {
	path            string
	refreshInterval time.Duration
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to a TOML product catalog; catalog features are disabled when unset",
			Category:    "Catalog",
			Sources:     cli.EnvVars("TAILORKIT_CATALOG"),
			Destination: &c.path,
		},
		&cli.DurationFlag{
			Name:        "catalog-refresh-interval",
			Usage:       "Reload the catalog file at this interval (0 disables reloading)",
			Category:    "Catalog",
			Sources:     cli.EnvVars("TAILORKIT_CATALOG_REFRESH_INTERVAL"),
			Destination: &c.refreshInterval,
		},
	}
}

// Path returns the catalog file path, empty when unset
func (c *Catalog) Path() string {
	return c.path
}

// RefreshInterval returns how often the catalog file should be reloaded
func (c *Catalog) RefreshInterval() time.Duration {
	return c.refreshInterval
}

// Configure loads the catalog. It returns nil without error when no catalog is configured.
func (c *Catalog) Configure(ctx context.Context) (*commerce.Memory, error) {
	if c.path == "" {
		logging.From(ctx).Info("No catalog configured, product option population is disabled")
		return nil, nil
	}
	if c.refreshInterval < 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "catalog refresh interval must not be negative",
			goerr.V(OptionKey, "catalog-refresh-interval"),
			goerr.V(ValueKey, c.refreshInterval.String()),
		)
	}

	catalog, err := commerce.LoadCatalog(c.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure catalog")
	}
	logging.From(ctx).Info("Catalog loaded", "path", c.path)
	return catalog, nil
}
