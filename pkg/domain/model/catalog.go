package model

// ProductID is the commerce platform identifier of a product
type ProductID string

// CollectionID is the commerce platform identifier of a collection
type CollectionID string

// Product is the read-only subset of a storefront product used to fill option choices
type Product struct {
	ID     ProductID `json:"id"`
	Handle string    `json:"handle"`
	Title  string    `json:"title"`
	Price  float64   `json:"price"`
	Image  string    `json:"image,omitempty"`
}

// Collection is a named group of products
type Collection struct {
	ID         CollectionID `json:"id"`
	Title      string       `json:"title"`
	ProductIDs []ProductID  `json:"productIds"`
}
