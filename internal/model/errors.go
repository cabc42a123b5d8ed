package model

import "errors"

var (
	// ErrNotFound means no document matched the requested id.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken means a user with the same email already exists.
	ErrEmailTaken = errors.New("email already registered")
)
