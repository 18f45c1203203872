package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity (index or row) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an entity already exists where it must not
	// (duplicate index name, duplicate logical entity).
	ErrConflict = errors.New("already exists")

	// ErrInvalidArgument indicates a programming or usage error: a search
	// method that needs embeddings was given none, a limit exceeds MaxTop,
	// or an unknown search method was supplied. Never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownEndpoint indicates an endpoint that is not part of the
	// configured allow-list. This is a fatal configuration error.
	ErrUnknownEndpoint = errors.New("unknown search endpoint")

	// ErrNoAvailableEndpoint indicates every configured endpoint is at
	// capacity, so a new index cannot be placed anywhere.
	ErrNoAvailableEndpoint = errors.New("no available search endpoint")

	// ErrEmptyCandidates indicates endpoint selection was invoked with an
	// empty candidate set.
	ErrEmptyCandidates = errors.New("empty endpoint candidate set")

	// ErrServiceUnavailable indicates a transient failure of the remote
	// search service (network blip, throttling, 5xx). Eligible for retry.
	ErrServiceUnavailable = errors.New("search service unavailable")
)

// IsTransient reports whether err is a transient remote failure that a
// bounded retry may recover from. Caller errors (invalid argument, not
// found, conflict) are never transient.
func IsTransient(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}
