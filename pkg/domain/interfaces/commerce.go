package interfaces

import (
	"context"

	"github.com/secmon-lab/tailorkit/pkg/domain/model"
)

// Commerce is the read-only product catalog used to fill selection options
type Commerce interface {
	// ListProducts returns products whose title or handle contains query; empty query lists all
	ListProducts(ctx context.Context, query string) ([]*model.Product, error)

	// GetProduct retrieves a product by ID
	GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error)

	// ListCollections returns every collection
	ListCollections(ctx context.Context) ([]*model.Collection, error)

	// ListCollectionProducts returns the products of a collection in collection order
	ListCollectionProducts(ctx context.Context, id model.CollectionID) ([]*model.Product, error)
}
