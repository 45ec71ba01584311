package catalog

import "errors"

var (
	// ErrInvalidCatalog indicates the catalog data failed integrity checks.
	ErrInvalidCatalog = errors.New("invalid catalog data")
	// ErrLoadCatalog indicates the catalog file could not be read or parsed.
	ErrLoadCatalog = errors.New("failed to load catalog")
)
