package truco

import "errors"

// Error kinds of the engine. All of them are recoverable: callers keep the
// previous view model and surface the error.
var (
	ErrMalformedCard     = errors.New("malformed card")
	ErrUnknownSeat       = errors.New("player is not seated")
	ErrInvalidTransition = errors.New("action not allowed")
	ErrStaleSnapshot     = errors.New("stale snapshot")
)
