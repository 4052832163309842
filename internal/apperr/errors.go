package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrInvalidTransition is returned when an operation is attempted from a
// load status or state that does not permit it.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrTruckUnavailable signals a lost reservation race: the truck is no
// longer FREE by the time the claim is attempted.
var ErrTruckUnavailable = errors.New("truck unavailable")

// ErrInvalidLoadSpec is returned for malformed load dimensions or payload.
var ErrInvalidLoadSpec = errors.New("invalid load spec")

// ErrNotAuthorized is returned when the caller lacks the role or ownership
// required for the operation.
var ErrNotAuthorized = errors.New("not authorized")
