package commands

import (
	"errors"
)

var (
	// ErrTransitionInFlight is returned when a request for the same item is
	// still waiting for the command sink.
	ErrTransitionInFlight = errors.New("a status change for this item is already in progress")

	// ErrCommandSinkFailure marks failures of the remote apply call.
	ErrCommandSinkFailure = errors.New("command sink failure")
)

// CommandSinkFailureError wraps an error returned by the command sink. Its
// message is the sink's message, unchanged, so it can be shown to the user.
//
// It matches both ErrCommandSinkFailure and the wrapped cause:
//
//	if errors.Is(err, commands.ErrCommandSinkFailure) {
//	    // item status is unchanged, the request may be retried
//	}
type CommandSinkFailureError struct {
	Cause error
}

func NewCommandSinkFailureError(cause error) *CommandSinkFailureError {
	return &CommandSinkFailureError{Cause: cause}
}

func (e *CommandSinkFailureError) Error() string {
	if e.Cause == nil {
		return ErrCommandSinkFailure.Error()
	}
	return e.Cause.Error()
}

func (e *CommandSinkFailureError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrCommandSinkFailure}
	}
	return []error{ErrCommandSinkFailure, e.Cause}
}
