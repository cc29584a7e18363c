package plan

import "errors"

var (
	// ErrNotFound is returned when an operation names a plan id the store does not hold.
	ErrNotFound = errors.New("plan not found")

	// ErrInvalidImportFormat is returned when an import payload is not an
	// object carrying a plans array. The store is left untouched.
	ErrInvalidImportFormat = errors.New("import must contain { plans: [...] }")

	// ErrMalformedState marks persisted content that could not be decoded.
	// Load recovers from it by starting empty; it is only ever logged.
	ErrMalformedState = errors.New("malformed persisted state")
)
