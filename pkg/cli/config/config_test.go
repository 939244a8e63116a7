package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tailorkit/pkg/cli/config"
	"github.com/secmon-lab/tailorkit/pkg/domain/interfaces"
	"github.com/urfave/cli/v3"
)

// runWith parses args into flags and runs action inside a throwaway command
func runWith(t *testing.T, flags []cli.Flag, args []string, action func(ctx context.Context) error) error {
	t.Helper()
	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return action(ctx)
		},
	}
	return cmd.Run(context.Background(), append([]string{"test"}, args...))
}

func TestStorage_Configure(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		var cfg config.Storage
		var st interfaces.Storage
		err := runWith(t, cfg.Flags(), []string{"--storage-backend", "memory"}, func(ctx context.Context) error {
			var err error
			st, err = cfg.Configure(ctx)
			return err
		})
		gt.NoError(t, err).Required()
		gt.Value(t, st).NotNil()
		gt.Value(t, cfg.Backend()).Equal(config.BackendMemory)

		ctx := context.Background()
		gt.NoError(t, st.Save(ctx, interfaces.StorageKeyOptionSets, []byte(`[]`)))
		data, err := st.Load(ctx, interfaces.StorageKeyOptionSets)
		gt.NoError(t, err)
		gt.Value(t, string(data)).Equal(`[]`)
		gt.NoError(t, st.Close())
	})

	t.Run("file backend creates the directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		var cfg config.Storage
		err := runWith(t, cfg.Flags(), []string{"--storage-backend", "file", "--storage-dir", dir}, func(ctx context.Context) error {
			st, err := cfg.Configure(ctx)
			if err != nil {
				return err
			}
			return st.Close()
		})
		gt.NoError(t, err).Required()

		info, err := os.Stat(dir)
		gt.NoError(t, err).Required()
		gt.Bool(t, info.IsDir()).True()
	})

	t.Run("sqlite backend", func(t *testing.T) {
		dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
		var cfg config.Storage
		err := runWith(t, cfg.Flags(), []string{"--storage-backend", "sqlite", "--sqlite-dsn", dsn}, func(ctx context.Context) error {
			st, err := cfg.Configure(ctx)
			if err != nil {
				return err
			}
			return st.Close()
		})
		gt.NoError(t, err)
	})

	t.Run("firestore requires project id", func(t *testing.T) {
		var cfg config.Storage
		err := runWith(t, cfg.Flags(), []string{"--storage-backend", "firestore"}, func(ctx context.Context) error {
			_, err := cfg.Configure(ctx)
			return err
		})
		gt.Error(t, err).Is(config.ErrMissingOption)
	})

	t.Run("gcs requires bucket", func(t *testing.T) {
		var cfg config.Storage
		err := runWith(t, cfg.Flags(), []string{"--storage-backend", "gcs"}, func(ctx context.Context) error {
			_, err := cfg.Configure(ctx)
			return err
		})
		gt.Error(t, err).Is(config.ErrMissingOption)
	})

	t.Run("unknown backend", func(t *testing.T) {
		var cfg config.Storage
		err := runWith(t, cfg.Flags(), []string{"--storage-backend", "mongo"}, func(ctx context.Context) error {
			_, err := cfg.Configure(ctx)
			return err
		})
		gt.Error(t, err).Is(config.ErrInvalidBackend)
	})
}

func TestEngine_Configure(t *testing.T) {
	for _, tc := range []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "default", args: nil},
		{name: "keep", args: []string{"--empty-template-policy", "keep"}},
		{name: "remove", args: []string{"--empty-template-policy", "remove"}},
		{name: "invalid", args: []string{"--empty-template-policy", "archive"}, wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var cfg config.Engine
			err := runWith(t, cfg.Flags(), tc.args, func(ctx context.Context) error {
				opts, err := cfg.Configure()
				if err != nil {
					return err
				}
				gt.A(t, opts).Length(1)
				return nil
			})
			if tc.wantErr {
				gt.Error(t, err).Is(config.ErrInvalidConfig)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestCatalog_Configure(t *testing.T) {
	t.Run("unset disables the catalog", func(t *testing.T) {
		var cfg config.Catalog
		err := runWith(t, cfg.Flags(), nil, func(ctx context.Context) error {
			c, err := cfg.Configure(ctx)
			gt.Bool(t, c == nil).True()
			return err
		})
		gt.NoError(t, err)
	})

	t.Run("loads a catalog file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.toml")
		content := `
[[product]]
id = "p1"
title = "Mug"
price = 12.5

[[collection]]
id = "c1"
title = "Kitchen"
products = ["p1"]
`
		gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()

		var cfg config.Catalog
		err := runWith(t, cfg.Flags(), []string{"--catalog", path}, func(ctx context.Context) error {
			c, err := cfg.Configure(ctx)
			if err != nil {
				return err
			}
			products, err := c.ListProducts(ctx, "mug")
			if err != nil {
				return err
			}
			gt.A(t, products).Length(1)
			return nil
		})
		gt.NoError(t, err)
	})

	t.Run("negative refresh interval", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.toml")
		gt.NoError(t, os.WriteFile(path, []byte(""), 0o600)).Required()

		var cfg config.Catalog
		err := runWith(t, cfg.Flags(), []string{"--catalog", path, "--catalog-refresh-interval=-1s"}, func(ctx context.Context) error {
			_, err := cfg.Configure(ctx)
			return err
		})
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		var cfg config.Catalog
		err := runWith(t, cfg.Flags(), []string{"--catalog", filepath.Join(t.TempDir(), "none.toml")}, func(ctx context.Context) error {
			_, err := cfg.Configure(ctx)
			return err
		})
		gt.Error(t, err)
	})
}

func TestLogger_Configure(t *testing.T) {
	t.Run("writes to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		var cfg config.Logger
		err := runWith(t, cfg.Flags(), []string{"--log-format", "json", "--log-output", path}, func(ctx context.Context) error {
			closer, err := cfg.Configure()
			if err != nil {
				return err
			}
			closer()
			return nil
		})
		gt.NoError(t, err).Required()
		_, err = os.Stat(path)
		gt.NoError(t, err)
	})

	t.Run("invalid level", func(t *testing.T) {
		var cfg config.Logger
		err := runWith(t, cfg.Flags(), []string{"--log-level", "verbose"}, func(ctx context.Context) error {
			_, err := cfg.Configure()
			return err
		})
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("invalid format", func(t *testing.T) {
		var cfg config.Logger
		err := runWith(t, cfg.Flags(), []string{"--log-format", "xml"}, func(ctx context.Context) error {
			_, err := cfg.Configure()
			return err
		})
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})
}
