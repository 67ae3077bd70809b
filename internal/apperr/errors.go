package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation,
// including unknown driver status strings supplied at the boundary.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness or state conflict, e.g. every
// nearest candidate was claimed by a concurrent dispatch.
var ErrConflict = errors.New("conflict")

// ErrNoDriversAvailable indicates an empty dispatch candidate pool.
// The order service decides whether to retry later.
var ErrNoDriversAvailable = errors.New("no drivers available")

// ErrNoActiveDelivery indicates that no in-flight delivery exists
// for the given driver or order.
var ErrNoActiveDelivery = errors.New("no active delivery")
