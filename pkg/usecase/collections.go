package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/interfaces"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// Collections persists the option set and template collections through the Storage port.
// It remembers the bytes last read or written per key, so an unchanged collection is not
// rewritten and a failed save can restore what was there before.
type Collections struct {
	storage interfaces.Storage

	mu   sync.Mutex
	last map[string][]byte
}

func NewCollections(storage interfaces.Storage) *Collections {
	return &Collections{
		storage: storage,
		last:    make(map[string][]byte),
	}
}

// Load reads both collections concurrently. A missing, unreadable or malformed
// collection is treated as empty and logged, never returned as an error.
func (c *Collections) Load(ctx context.Context) ([]*model.OptionSet, []*model.Template, error) {
	var (
		optionSets []*model.OptionSet
		templates  []*model.Template
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		optionSets = loadCollection[*model.OptionSet](egCtx, c, interfaces.StorageKeyOptionSets)
		return nil
	})
	eg.Go(func() error {
		templates = loadCollection[*model.Template](egCtx, c, interfaces.StorageKeyTemplates)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, goerr.Wrap(err, "load canceled")
	}

	optionSets, setsRepaired := normalizeOptionSets(optionSets)
	templates, templatesRepaired := normalizeTemplates(templates)
	if setsRepaired || templatesRepaired {
		logging.From(ctx).Warn("stored collections had invalid entries, they were repaired on load",
			"optionSets", setsRepaired,
			"templates", templatesRepaired,
		)
	}

	return optionSets, templates, nil
}

// normalizeOptionSets drops null sets and elements, gives every element a config and
// leaves at most one set opening by default, the first one flagged.
func normalizeOptionSets(sets []*model.OptionSet) ([]*model.OptionSet, bool) {
	out, repaired := normalizeSnapshots(sets)
	defaultOpen := false
	for _, set := range out {
		if !set.IsDefaultOpen {
			continue
		}
		if defaultOpen {
			set.IsDefaultOpen = false
			repaired = true
		}
		defaultOpen = true
	}
	return out, repaired
}

func normalizeTemplates(templates []*model.Template) ([]*model.Template, bool) {
	out := dropNil(templates)
	repaired := len(out) != len(templates)
	for _, t := range out {
		snapshots, fixed := normalizeSnapshots(t.OptionSets)
		t.OptionSets = snapshots
		repaired = repaired || fixed
	}
	return out, repaired
}

func normalizeSnapshots(sets []*model.OptionSet) ([]*model.OptionSet, bool) {
	out := dropNil(sets)
	repaired := len(out) != len(sets)
	for _, set := range out {
		elements := dropNil(set.Elements)
		if len(elements) != len(set.Elements) {
			repaired = true
		}
		for _, el := range elements {
			if el.Config == nil {
				el.Config = model.Config{}
				repaired = true
			}
		}
		set.Elements = elements
	}
	return out, repaired
}

func loadCollection[T any](ctx context.Context, c *Collections, key string) []T {
	data, err := c.storage.Load(ctx, key)
	c.remember(key, data)

	if err != nil {
		warnCorrupt(ctx, key, goerr.Wrap(model.ErrStorageCorrupt, "failed to load collection",
			goerr.V(model.StorageKeyKey, key),
			goerr.V("cause", err.Error()),
		))
		return []T{}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		warnCorrupt(ctx, key, goerr.Wrap(model.ErrStorageCorrupt, "failed to decode collection",
			goerr.V(model.StorageKeyKey, key),
			goerr.V("cause", err.Error()),
		))
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func warnCorrupt(ctx context.Context, key string, err error) {
	logging.From(ctx).Warn("stored collection is unusable, starting from an empty collection",
		"key", key,
		"error", err,
	)
}

func dropNil[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}

func (c *Collections) remember(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last[key] = append([]byte(nil), data...)
}

func (c *Collections) previous(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.last[key]
	return data, ok
}

type pendingWrite struct {
	key  string
	data []byte
}

// Save writes both collections. If a write fails, keys already written by this call
// are restored to their previous bytes before the error is returned.
func (c *Collections) Save(ctx context.Context, optionSets []*model.OptionSet, templates []*model.Template) error {
	setsData, err := encodeCollection(optionSets)
	if err != nil {
		return goerr.Wrap(err, "failed to encode option sets")
	}
	templatesData, err := encodeCollection(templates)
	if err != nil {
		return goerr.Wrap(err, "failed to encode templates")
	}

	var writes []pendingWrite
	for _, w := range []pendingWrite{
		{key: interfaces.StorageKeyOptionSets, data: setsData},
		{key: interfaces.StorageKeyTemplates, data: templatesData},
	} {
		if prev, ok := c.previous(w.key); ok && bytes.Equal(prev, w.data) {
			continue
		}
		writes = append(writes, w)
	}

	for i, w := range writes {
		if err := c.storage.Save(ctx, w.key, w.data); err != nil {
			c.rollback(ctx, writes[:i])
			return goerr.Wrap(err, "failed to save collection", goerr.V(model.StorageKeyKey, w.key))
		}
	}

	for _, w := range writes {
		c.remember(w.key, w.data)
	}
	return nil
}

func (c *Collections) rollback(ctx context.Context, written []pendingWrite) {
	for _, w := range written {
		prev, _ := c.previous(w.key)
		if len(prev) == 0 {
			prev = []byte("[]")
		}
		if err := c.storage.Save(ctx, w.key, prev); err != nil {
			logging.From(ctx).Error("failed to roll back collection",
				"key", w.key,
				"error", err,
			)
		}
	}
}

func encodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
