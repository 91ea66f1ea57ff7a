package lifecycle

import "errors"

// Error taxonomy surfaced to the HTTP layer. Handlers map these to
// 404 / 400 / 409; anything else becomes a 500.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)
