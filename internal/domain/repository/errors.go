package repository

import "errors"

var (
	// ErrNotFound is returned by lookups when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail surfaces the unique-email violation on user creation.
	ErrDuplicateEmail = errors.New("email already registered")
)
