package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/service/commerce"
	"github.com/secmon-lab/tailorkit/pkg/utils/logging"
)

// CatalogRefreshWorker reloads a TOML catalog file in the background and swaps it into a live catalog.
// A failed reload keeps the previously loaded products and collections.
type CatalogRefreshWorker struct {
	catalog  *commerce.Memory
	path     string
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewCatalogRefreshWorker creates a worker refreshing catalog from path
func NewCatalogRefreshWorker(catalog *commerce.Memory, path string, interval time.Duration) *CatalogRefreshWorker {
	return &CatalogRefreshWorker{
		catalog:  catalog,
		path:     path,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop without blocking
func (w *CatalogRefreshWorker) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return goerr.New("refresh interval must be positive", goerr.V("interval", w.interval.String()))
	}

	logging.Default().Info("Catalog refresh worker starting",
		"path", w.path,
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *CatalogRefreshWorker) Stop() {
	logging.Default().Info("Catalog refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Catalog refresh worker stopped")
}

func (w *CatalogRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Refresh(); err != nil {
				logging.Default().Error("Catalog refresh failed (keeping previous catalog)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Catalog refresh worker context cancelled")
			return
		}
	}
}

// Refresh performs a single reload cycle
func (w *CatalogRefreshWorker) Refresh() error {
	loaded, err := commerce.LoadCatalog(w.path)
	if err != nil {
		return goerr.Wrap(err, "failed to reload catalog")
	}
	w.catalog.Replace(loaded)

	logging.Default().Debug("Catalog refreshed", "path", w.path)
	return nil
}
