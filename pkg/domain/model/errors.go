package model

import "github.com/m-mizutani/goerr/v2"

// Engine errors. All of them are returned to the caller, none of them is fatal.
var (
	ErrUnsupportedElementType = goerr.New("unsupported element type")
	ErrEmptyOptionSet         = goerr.New("option set has no elements")
	ErrNoOptionSetsSelected   = goerr.New("no option sets selected")
	ErrRangeInverted          = goerr.New("range minimum exceeds maximum")
	ErrMutuallyExclusiveFlags = goerr.New("mutually exclusive flags")
	ErrReorderSetMismatch     = goerr.New("reorder ids do not match stored option sets")
	ErrStorageCorrupt         = goerr.New("stored collection is corrupt")
	ErrValidationFailed       = goerr.New("validation failed")
	ErrMissingName            = goerr.New("name is required")
	ErrIndexOutOfRange        = goerr.New("index out of range")
	ErrCommerceNotConfigured  = goerr.New("commerce catalog is not configured")

	ErrOptionSetNotFound  = goerr.New("option set not found")
	ErrTemplateNotFound   = goerr.New("template not found")
	ErrElementNotFound    = goerr.New("element not found")
	ErrProductNotFound    = goerr.New("product not found")
	ErrCollectionNotFound = goerr.New("collection not found")
)

// Context keys for error values
const (
	ElementTypeKey = "element_type"
	ElementIDKey   = "element_id"
	OptionSetIDKey = "option_set_id"
	TemplateIDKey  = "template_id"
	FieldKey       = "field"
	StorageKeyKey  = "storage_key"
	IndexKey       = "index"
)
