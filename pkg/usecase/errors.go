package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	ErrMissingInput         = goerr.New("input is required")
	ErrInvalidCatalogSource = goerr.New("either product ids or a collection id is required")
)
