package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig  = goerr.New("invalid configuration")
	ErrInvalidBackend = goerr.New("invalid storage backend")
	ErrMissingOption  = goerr.New("required option is missing")
)

// Context keys for error values
const (
	BackendKey = "backend"
	OptionKey  = "option"
	ValueKey   = "value"
)
