package commerce

import (
	"context"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/interfaces"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
)

// Memory is a read-only in-process catalog
type Memory struct {
	mu          sync.RWMutex
	products    []*model.Product
	collections []*model.Collection
}

var _ interfaces.Commerce = &Memory{}

// NewMemory creates a catalog holding the given products and collections
func NewMemory(products []*model.Product, collections []*model.Collection) *Memory {
	return &Memory{
		products:    products,
		collections: collections,
	}
}

// Replace swaps the catalog contents with those of other
func (m *Memory) Replace(other *Memory) {
	other.mu.RLock()
	products, collections := other.products, other.collections
	other.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products
	m.collections = collections
}

func copyProduct(p *model.Product) *model.Product {
	c := *p
	return &c
}

func (m *Memory) ListProducts(ctx context.Context, query string) ([]*model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	result := make([]*model.Product, 0, len(m.products))
	for _, p := range m.products {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Handle), q) {
			continue
		}
		result = append(result, copyProduct(p))
	}
	return result, nil
}

func (m *Memory) GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.products {
		if p.ID == id {
			return copyProduct(p), nil
		}
	}
	return nil, goerr.Wrap(model.ErrProductNotFound, "product not found", goerr.V("product_id", id))
}

func (m *Memory) ListCollections(ctx context.Context) ([]*model.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*model.Collection, len(m.collections))
	for i, c := range m.collections {
		ids := make([]model.ProductID, len(c.ProductIDs))
		copy(ids, c.ProductIDs)
		result[i] = &model.Collection{ID: c.ID, Title: c.Title, ProductIDs: ids}
	}
	return result, nil
}

func (m *Memory) ListCollectionProducts(ctx context.Context, id model.CollectionID) ([]*model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var collection *model.Collection
	for _, c := range m.collections {
		if c.ID == id {
			collection = c
			break
		}
	}
	if collection == nil {
		return nil, goerr.Wrap(model.ErrCollectionNotFound, "collection not found", goerr.V("collection_id", id))
	}

	byID := make(map[model.ProductID]*model.Product, len(m.products))
	for _, p := range m.products {
		byID[p.ID] = p
	}

	result := make([]*model.Product, 0, len(collection.ProductIDs))
	for _, pid := range collection.ProductIDs {
		if p, ok := byID[pid]; ok {
			result = append(result, copyProduct(p))
		}
	}
	return result, nil
}
