package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/cli/config"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/schema"
	"github.com/secmon-lab/tailorkit/pkg/usecase"
	"github.com/secmon-lab/tailorkit/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// ErrInvalidStoredData is returned by the validate command when stored data breaks a rule
var ErrInvalidStoredData = goerr.New("stored data has validation errors")

func cmdValidate() *cli.Command {
	var storageCfg config.Storage
	var catalogCfg config.Catalog

	flags := []cli.Flag{}
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:  "validate",
		Usage: "Validate stored option sets, template snapshots and the catalog file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Catalog errors surface from Configure
			if _, err := catalogCfg.Configure(ctx); err != nil {
				return err
			}

			storage, err := storageCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize storage")
			}
			defer func() {
				if err := storage.Close(); err != nil {
					logging.Default().Error("failed to close storage", "error", err.Error())
				}
			}()

			optionSets, templates, err := usecase.NewCollections(storage).Load(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load stored collections")
			}

			count := validateOptionSets(ctx, schema.Default(), optionSets, "")
			for _, tmpl := range templates {
				count += validateOptionSets(ctx, schema.Default(), tmpl.OptionSets, tmpl.Name)
			}

			if count > 0 {
				return goerr.Wrap(ErrInvalidStoredData, "validation failed", goerr.V("violations", count))
			}

			fmt.Printf("✓ %d option sets and %d templates are valid\n", len(optionSets), len(templates))
			return nil
		},
	}
}

func validateOptionSets(ctx context.Context, registry *schema.Registry, sets []*model.OptionSet, templateName string) int {
	logger := logging.From(ctx)
	count := 0
	for _, set := range sets {
		result := registry.ValidateOptionSet(set)
		for _, v := range result.Violations {
			count++
			logger.Error("Invalid option set",
				"option_set", set.Name,
				"template", templateName,
				"element_id", v.ElementID,
				"field", v.Field,
				"rule", v.Rule,
				"message", v.Message,
			)
		}
	}
	return count
}
