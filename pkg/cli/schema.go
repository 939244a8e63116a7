package cli

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/schema"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdSchema() *cli.Command {
	var elementType string

	return &cli.Command{
		Name:  "schema",
		Usage: "Print element type schemas as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "Print only the schema of this element type",
				Destination: &elementType,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			registry := schema.Default()

			var out any = registry.Schemas()
			if elementType != "" {
				s, err := registry.SchemaFor(types.ElementType(elementType))
				if err != nil {
					return err
				}
				out = s
			}

			enc := json.NewEncoder(c.Root().Writer)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return goerr.Wrap(err, "failed to write schema")
			}
			return nil
		},
	}
}
