package service

import "errors"

// Error kinds returned by the services. The HTTP layer is solely responsible
// for mapping these to transport status codes; nothing is retried internally.
var (
	// ErrUnauthorized means no principal was supplied
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden means the principal lacks the moderator right
	ErrForbidden = errors.New("moderator access required")

	// ErrNotFound means the comment, reply, or article key did not resolve
	ErrNotFound = errors.New("not found")

	// ErrBadRequest means a required field is missing or invalid
	ErrBadRequest = errors.New("bad request")

	// ErrStoreUnavailable means the persistence backend is unreachable or did
	// not acknowledge a write. The caller may retry; this service does not.
	ErrStoreUnavailable = errors.New("comment store unavailable")
)
