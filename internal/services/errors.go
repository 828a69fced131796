package services

import "errors"

// Error kinds returned by the record services. Handlers map them to HTTP
// statuses with errors.Is; the wrapped messages name the offending id and
// the corrective action.
var (
	// ErrNotFound means the operation targeted an id absent from the
	// relevant collection.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized means the caller identity does not match the
	// record's owner.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAlreadyRegistered means the caller identity already owns a
	// user profile.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrNotRegistered means a movie was logged before the caller
	// registered a profile.
	ErrNotRegistered = errors.New("not registered")
)
