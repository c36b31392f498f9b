package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrPreconditionRequired means an earlier pipeline step has not run yet;
	// the operator must run it before retrying.
	ErrPreconditionRequired  = errors.New("precondition not met")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
