package level

import "errors"

// Invariant violations. These indicate a caller contract breach or a bug in
// turn resolution and abort the operation that hit them.
var (
	ErrNotPresent        = errors.New("entity not present at cell")
	ErrOutOfBounds       = errors.New("cell is out of bounds")
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrMixedColors       = errors.New("pushed cell holds more than one solid color")
	ErrBoundsAlreadySet  = errors.New("bounds already set")
	ErrUnknownEntityKind = errors.New("unknown entity kind")
)

// ErrMalformedLevel is returned by the codec when a level blob cannot be
// decoded at all. Individual bad tokens are logged and skipped instead.
var ErrMalformedLevel = errors.New("malformed level")
