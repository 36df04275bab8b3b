package model

import (
	"fmt"
)

// NotFoundError is an error signaling that something was not found in the
// database
type NotFoundError string

// Error implements the error interface
func (e NotFoundError) Error() string {
	return string(e)
}

// NotFoundErrorFmt returns a NotFoundError from the passed format string and parameters
func NotFoundErrorFmt(format string, params ...any) NotFoundError {
	return NotFoundError(fmt.Sprintf(format, params...))
}

// AlreadyExistsError signals that a unique value (e.g. a username) is already taken
type AlreadyExistsError string

// Error implements the error interface
func (e AlreadyExistsError) Error() string {
	return string(e)
}

// AlreadyExistsErrorFmt returns an AlreadyExistsError from the passed format string and parameters
func AlreadyExistsErrorFmt(format string, params ...any) AlreadyExistsError {
	return AlreadyExistsError(fmt.Sprintf(format, params...))
}

// ValidationError signals bad or missing input
type ValidationError string

// Error implements the error interface
func (e ValidationError) Error() string {
	return string(e)
}

// AuthenticationError signals missing, invalid or expired credentials
type AuthenticationError string

// Error implements the error interface
func (e AuthenticationError) Error() string {
	return string(e)
}

// ForbiddenError signals that an authenticated actor lacks the permission for an action
type ForbiddenError string

// Error implements the error interface
func (e ForbiddenError) Error() string {
	return string(e)
}

// DependencyError wraps a failure of a collaborator (summarizer, database)
type DependencyError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *DependencyError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *DependencyError) Unwrap() error {
	return e.Err
}
