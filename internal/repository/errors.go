// Package repository defines the persistence layer for events and users
// together with the sentinel errors shared across its implementations.
// Handlers compare against these values with errors.Is to pick HTTP
// status codes, so database-specific failures are translated into
// sentinels at the repository boundary and never leak upward.
package repository

import "errors"

// ErrEventNotFound is returned when no event exists for the given id.
// Handlers translate it into an HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrUserNotFound is returned when no user matches the lookup key.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when signup collides with an existing
// email address. Handlers translate it into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrTokenNotFound is returned when an email verification token does
// not match any pending account.
var ErrTokenNotFound = errors.New("verification token not found")
