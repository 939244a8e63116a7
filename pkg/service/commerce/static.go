package commerce

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
)

// CatalogFile is the TOML layout of a static catalog
type CatalogFile struct {
	Products    []ProductEntry    `toml:"product"`
	Collections []CollectionEntry `toml:"collection"`
}

// ProductEntry is a product in a catalog file
type ProductEntry struct {
	ID     string  `toml:"id"`
	Handle string  `toml:"handle"`
	Title  string  `toml:"title"`
	Price  float64 `toml:"price"`
	Image  string  `toml:"image"`
}

// CollectionEntry is a collection in a catalog file
type CollectionEntry struct {
	ID       string   `toml:"id"`
	Title    string   `toml:"title"`
	Products []string `toml:"products"`
}

// Validate checks ids, titles and collection references
func (c *CatalogFile) Validate() error {
	productIDs := make(map[string]bool, len(c.Products))
	for _, p := range c.Products {
		if p.ID == "" {
			return goerr.New("product id is required", goerr.V("title", p.Title))
		}
		if p.Title == "" {
			return goerr.New("product title is required", goerr.V("id", p.ID))
		}
		if p.Price < 0 {
			return goerr.New("product price must not be negative", goerr.V("id", p.ID), goerr.V("price", p.Price))
		}
		if productIDs[p.ID] {
			return goerr.New("duplicate product ID", goerr.V("id", p.ID))
		}
		productIDs[p.ID] = true
	}

	collectionIDs := make(map[string]bool, len(c.Collections))
	for _, col := range c.Collections {
		if col.ID == "" {
			return goerr.New("collection id is required", goerr.V("title", col.Title))
		}
		if collectionIDs[col.ID] {
			return goerr.New("duplicate collection ID", goerr.V("id", col.ID))
		}
		collectionIDs[col.ID] = true

		for _, pid := range col.Products {
			if !productIDs[pid] {
				return goerr.New("collection references unknown product",
					goerr.V("collection_id", col.ID),
					goerr.V("product_id", pid))
			}
		}
	}
	return nil
}

// ParseCatalog decodes and validates a TOML catalog into an in-memory catalog
func ParseCatalog(data []byte) (*Memory, error) {
	var file CatalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML catalog")
	}
	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog validation failed")
	}

	products := make([]*model.Product, len(file.Products))
	for i, p := range file.Products {
		handle := p.Handle
		if handle == "" {
			handle = p.ID
		}
		products[i] = &model.Product{
			ID:     model.ProductID(p.ID),
			Handle: handle,
			Title:  p.Title,
			Price:  p.Price,
			Image:  p.Image,
		}
	}

	collections := make([]*model.Collection, len(file.Collections))
	for i, c := range file.Collections {
		ids := make([]model.ProductID, len(c.Products))
		for j, pid := range c.Products {
			ids[j] = model.ProductID(pid)
		}
		collections[i] = &model.Collection{
			ID:         model.CollectionID(c.ID),
			Title:      c.Title,
			ProductIDs: ids,
		}
	}

	return NewMemory(products, collections), nil
}

// LoadCatalog reads a TOML catalog from path
func LoadCatalog(path string) (*Memory, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V("path", path))
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load catalog", goerr.V("path", path))
	}
	return catalog, nil
}
