package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule
// (e.g. missing trip id, more than four images, malformed metadata).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a client-supplied trip id collides with an
// existing document. Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUpstream is returned when an external collaborator fails (the object
// storage host or the document store). Handlers should map this to HTTP 500.
// The request may have partial side effects (uploaded assets that were never
// persisted); the service layer attempts compensation but does not guarantee it.
var ErrUpstream = errors.New("upstream failure")
