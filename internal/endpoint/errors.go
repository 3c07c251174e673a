package endpoint

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEndpoint is returned by Registry.Lookup for unregistered names.
	ErrUnknownEndpoint = errors.New("unknown endpoint")

	// ErrMissingAction is returned by Resolve when no action token was given.
	ErrMissingAction = errors.New("missing action")

	// ErrActionNotFound is returned by Resolve when the token matches no variant.
	ErrActionNotFound = errors.New("action not found")

	// ErrUnexpectedArgument is returned for positional arguments after the action.
	ErrUnexpectedArgument = errors.New("unexpected argument")

	// ErrMissingRequiredParameter is matched by every *MissingParameterError.
	ErrMissingRequiredParameter = errors.New("missing required parameter")
)

// ResolveError reports a failed variant resolution together with the
// endpoint it was attempted on, so callers can print a usage hint.
type ResolveError struct {
	Endpoint string
	Action   string
	Err      error // ErrMissingAction, ErrActionNotFound or ErrUnexpectedArgument
}

func (e *ResolveError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s: %v: %q", e.Endpoint, e.Err, e.Action)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// MissingParameterError names the required parameter that was not supplied.
type MissingParameterError struct {
	Action string
	Flag   string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("action %q requires --%s", e.Action, e.Flag)
}

func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingRequiredParameter
}
