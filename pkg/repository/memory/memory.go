package memory

import (
	"context"
	"sync"

	"github.com/secmon-lab/tailorkit/pkg/domain/interfaces"
)

// Memory keeps stored documents in process memory. Intended for development and tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ interfaces.Storage = &Memory{}

func New() *Memory {
	return &Memory{
		data: make(map[string][]byte),
	}
}

func (m *Memory) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
