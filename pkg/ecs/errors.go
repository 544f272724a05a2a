package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingMethod is returned by Invoke when the component exists but
	// does not expose the requested method.
	ErrMissingMethod = errors.New("component has no such method")
	// ErrInvalidArguments is returned when the arguments cannot be passed to
	// the component method.
	ErrInvalidArguments = errors.New("invalid method arguments")
)

// MethodError reports a failed method invocation on a named component.
type MethodError struct {
	Component string
	Method    string
	Err       error
}

func (e *MethodError) Error() string {
	if e.Component == "" {
		return fmt.Sprintf("method %q: %v", e.Method, e.Err)
	}
	return fmt.Sprintf("component %q: method %q: %v", e.Component, e.Method, e.Err)
}

func (e *MethodError) Unwrap() error {
	return e.Err
}
