package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/interfaces"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/schema"
)

// CatalogSource selects the products that become options: explicit product ids,
// or every product of a collection when ProductIDs is empty.
type CatalogSource struct {
	ProductIDs   []model.ProductID  `json:"productIds,omitempty"`
	CollectionID model.CollectionID `json:"collectionId,omitempty"`
}

// CatalogUseCase fills selection elements with storefront products
type CatalogUseCase struct {
	registry *schema.Registry
	commerce interfaces.Commerce
}

func NewCatalogUseCase(registry *schema.Registry, commerce interfaces.Commerce) *CatalogUseCase {
	return &CatalogUseCase{
		registry: registry,
		commerce: commerce,
	}
}

// Enabled reports whether a commerce catalog is configured
func (uc *CatalogUseCase) Enabled() bool {
	return uc.commerce != nil
}

func (uc *CatalogUseCase) ListProducts(ctx context.Context, query string) ([]*model.Product, error) {
	if uc.commerce == nil {
		return nil, goerr.Wrap(model.ErrCommerceNotConfigured, "cannot list products")
	}
	products, err := uc.commerce.ListProducts(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list products", goerr.V("query", query))
	}
	return products, nil
}

func (uc *CatalogUseCase) ListCollections(ctx context.Context) ([]*model.Collection, error) {
	if uc.commerce == nil {
		return nil, goerr.Wrap(model.ErrCommerceNotConfigured, "cannot list collections")
	}
	collections, err := uc.commerce.ListCollections(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list collections")
	}
	return collections, nil
}

// PopulateOptions returns a copy of el whose options are the selected products:
// value is the product handle, label the title, plus price and image.
// Only selection element types accept catalog options.
func (uc *CatalogUseCase) PopulateOptions(ctx context.Context, el *model.Element, source CatalogSource) (*model.Element, error) {
	if el == nil {
		return nil, goerr.Wrap(ErrMissingInput, "element is required")
	}
	if !el.Type.IsSelection() {
		return nil, goerr.Wrap(model.ErrUnsupportedElementType, "element type has no options",
			goerr.V(model.ElementTypeKey, el.Type),
		)
	}
	if uc.commerce == nil {
		return nil, goerr.Wrap(model.ErrCommerceNotConfigured, "cannot populate options")
	}

	products, err := uc.products(ctx, source)
	if err != nil {
		return nil, err
	}

	options := make([]model.Option, len(products))
	for i, p := range products {
		price := p.Price
		options[i] = model.Option{
			Value: p.Handle,
			Label: p.Title,
			Price: &price,
			Image: p.Image,
		}
	}

	cfg, err := uc.registry.Complete(el.Type, el.Config)
	if err != nil {
		return nil, err
	}
	cfg["options"] = model.OptionsToConfigValue(options)

	return &model.Element{
		ID:     el.ID,
		Type:   el.Type,
		Config: cfg,
	}, nil
}

func (uc *CatalogUseCase) products(ctx context.Context, source CatalogSource) ([]*model.Product, error) {
	if len(source.ProductIDs) > 0 {
		products := make([]*model.Product, 0, len(source.ProductIDs))
		for _, id := range source.ProductIDs {
			p, err := uc.commerce.GetProduct(ctx, id)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to get product", goerr.V("product_id", id))
			}
			products = append(products, p)
		}
		return products, nil
	}

	if source.CollectionID == "" {
		return nil, goerr.Wrap(ErrInvalidCatalogSource, "nothing to populate from")
	}
	products, err := uc.commerce.ListCollectionProducts(ctx, source.CollectionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list collection products", goerr.V("collection_id", source.CollectionID))
	}
	return products, nil
}
