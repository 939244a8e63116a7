package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/cli/config"
	httpctrl "github.com/secmon-lab/tailorkit/pkg/controller/http"
	"github.com/secmon-lab/tailorkit/pkg/service/worker"
	"github.com/secmon-lab/tailorkit/pkg/usecase"
	"github.com/secmon-lab/tailorkit/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var storageCfg config.Storage
	var catalogCfg config.Catalog
	var engineCfg config.Engine

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("TAILORKIT_ADDR"),
			Destination: &addr,
		},
	}

	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, engineCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ucOpts, err := engineCfg.Configure()
			if err != nil {
				return err
			}

			catalog, err := catalogCfg.Configure(ctx)
			if err != nil {
				return err
			}
			if catalog != nil {
				ucOpts = append(ucOpts, usecase.WithCommerce(catalog))

				if interval := catalogCfg.RefreshInterval(); interval > 0 {
					catalogWorker := worker.NewCatalogRefreshWorker(catalog, catalogCfg.Path(), interval)
					if err := catalogWorker.Start(ctx); err != nil {
						return goerr.Wrap(err, "failed to start catalog refresh worker")
					}
					defer catalogWorker.Stop()
				}
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

			uc := usecase.New(storage, ucOpts...)
			if err := uc.Load(ctx); err != nil {
				return goerr.Wrap(err, "failed to load stored collections")
			}

			httpHandler, err := httpctrl.New(uc)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"storage", storageCfg,
					"empty_template_policy", uc.Policy(),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
