package model

import "errors"

var (
	// ErrNotFound is returned when no row matches the id and owner predicate.
	ErrNotFound = errors.New("not found")

	// ErrAuthenticationRequired is returned when an operation needs a
	// signed-in user and there is none.
	ErrAuthenticationRequired = errors.New("user not authenticated")
)
