package domain

import (
	"errors"
	"fmt"
)

// APIError is a catalogued failure surfaced to the client as-is.
type APIError struct {
	Code Code
	Msg  string
	Err  error
}

func (e APIError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return Message(e.Code)
}

func (e APIError) Unwrap() error { return e.Err }

// NewAPIError builds an APIError with the catalogue message for code.
func NewAPIError(code Code) APIError {
	return APIError{Code: code, Msg: Message(code)}
}

// PermissionError denies one capability for one role path. The code pins the
// exact denial so the client message is never a generic forbidden.
type PermissionError struct {
	Code Code
}

func (e PermissionError) Error() string { return Message(e.Code) }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsPermission(err error) bool {
	var target PermissionError
	return errors.As(err, &target)
}

// AsPermission extracts a PermissionError when err carries one.
func AsPermission(err error) (PermissionError, bool) {
	var target PermissionError
	ok := errors.As(err, &target)
	return target, ok
}

func IsAPIError(err error) bool {
	var target APIError
	return errors.As(err, &target)
}

func AsAPIError(err error) (APIError, bool) {
	var target APIError
	ok := errors.As(err, &target)
	return target, ok
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
