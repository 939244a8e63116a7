package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tailorkit/pkg/domain/interfaces"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
	"github.com/secmon-lab/tailorkit/pkg/repository/memory"
	"github.com/secmon-lab/tailorkit/pkg/usecase"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newUseCases(t *testing.T, storage interfaces.Storage, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	opts = append([]usecase.Option{usecase.WithClock(func() time.Time { return fixedNow })}, opts...)
	uc := usecase.New(storage, opts...)
	gt.NoError(t, uc.Load(context.Background())).Required()
	return uc
}

func radioElement(labels ...string) *model.Element {
	options := make([]any, len(labels))
	for i, l := range labels {
		options[i] = map[string]any{"value": l, "label": l}
	}
	return &model.Element{
		Type: types.ElementTypeRadio,
		Config: model.Config{
			"label":   "Color",
			"options": options,
		},
	}
}

func textElement(label string) *model.Element {
	return &model.Element{
		Type:   types.ElementTypeText,
		Config: model.Config{"label": label},
	}
}

func createSet(t *testing.T, uc *usecase.UseCases, name string, elements ...*model.Element) *model.OptionSet {
	t.Helper()
	if len(elements) == 0 {
		elements = []*model.Element{textElement(name + " note")}
	}
	set, err := uc.OptionSet.Create(context.Background(), &model.OptionSet{Name: name, Elements: elements})
	gt.NoError(t, err).Required()
	return set
}

func storedBytes(t *testing.T, storage interfaces.Storage, key string) string {
	t.Helper()
	data, err := storage.Load(context.Background(), key)
	gt.NoError(t, err).Required()
	return string(data)
}

// flakyStorage fails Save for one key while failing is set
type flakyStorage struct {
	interfaces.Storage

	mu      sync.Mutex
	failKey string
	failing bool
}

func newFlakyStorage() *flakyStorage {
	return &flakyStorage{Storage: memory.New()}
}

func (s *flakyStorage) FailOn(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failKey = key
	s.failing = true
}

func (s *flakyStorage) Save(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	fail := s.failing && key == s.failKey
	s.mu.Unlock()
	if fail {
		return errors.New("storage unavailable")
	}
	return s.Storage.Save(ctx, key, data)
}

// brokenStorage fails every Load
type brokenStorage struct {
	interfaces.Storage
}

func (s *brokenStorage) Load(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("connection refused")
}
