package domain

import (
	"errors"
	"fmt"
)

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

// ConflictError reports an operation that is not allowed in the current state.
// Redirect, when set, is the client route the caller should go to instead.
type ConflictError struct {
	Resource string
	Msg      string
	Redirect string
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

// UpstreamError is a transport failure or a non-2xx answer from the booking backend.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: backend returned %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": backend unavailable"
	}
}

func (e UpstreamError) Unwrap() error { return e.Err }

// RejectedError carries a {status:false, message} answer from the backend.
// Msg is the backend message, verbatim.
type RejectedError struct {
	Op  string
	Msg string
}

func (e RejectedError) Error() string {
	if e.Msg == "" {
		return e.Op + ": rejected by backend"
	}
	return e.Msg
}

// MalformedResponseError is a 2xx answer whose body does not have the expected shape.
type MalformedResponseError struct {
	Op     string
	Reason string
	Err    error
}

func (e MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: malformed response: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: malformed response: %s", e.Op, e.Reason)
}

func (e MalformedResponseError) Unwrap() error { return e.Err }

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

func IsUpstream(err error) bool {
	var target UpstreamError
	return errors.As(err, &target)
}

func IsRejected(err error) bool {
	var target RejectedError
	return errors.As(err, &target)
}

func IsMalformedResponse(err error) bool {
	var target MalformedResponseError
	return errors.As(err, &target)
}

// RejectionMessage returns the backend message of a RejectedError in the chain.
func RejectionMessage(err error) (string, bool) {
	var target RejectedError
	if errors.As(err, &target) && target.Msg != "" {
		return target.Msg, true
	}
	return "", false
}

// RedirectOf returns the redirect route carried by a ConflictError in the chain.
func RedirectOf(err error) string {
	var target ConflictError
	if errors.As(err, &target) {
		return target.Redirect
	}
	return ""
}
