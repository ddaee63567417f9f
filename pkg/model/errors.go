package model

import "errors"

// Error kinds for the three fatal failure classes. Handlers classify with
// errors.Is; everything else wraps one of these with fmt.Errorf("...: %w", ...).
var (
	// ErrConfig means a required setting is missing or invalid. Startup fatal.
	ErrConfig = errors.New("configuration error")

	// ErrConnection means the data source was unreachable or a query failed.
	// Fatal to the render that triggered it, carries the underlying cause.
	ErrConnection = errors.New("connection error")

	// ErrParse means an identifier or date field could not be coerced to its
	// expected type. Fatal to the render; there is no row-level recovery.
	ErrParse = errors.New("parsing error")
)
