package repository

import "errors"

var (
	// ErrDuplicateEmail indicates a signup with an email that already exists.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrInvalidCredentials indicates no user matches the email and password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateApplication indicates the worker already applied to the job.
	ErrDuplicateApplication = errors.New("already applied")
	// ErrConstraintViolation covers any other uniqueness or foreign key failure.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrNotFound is reserved; deletes and updates of missing ids are no-ops.
	ErrNotFound = errors.New("not found")
)
