package errors

import (
	"errors"
	"fmt"
)

// Exit codes for patchctl
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitProfileNotFound = 2
	ExitPartialFailure  = 3
	ExitTransportFailed = 4
	ExitContainerFailed = 5
	ExitConfigError     = 6
)

// PatchError is the base error type for patchctl
type PatchError struct {
	Code    int
	Message string
	Cause   error
}

func (e *PatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PatchError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *PatchError) ExitCode() int {
	return e.Code
}

// New creates a new PatchError
func New(code int, message string) *PatchError {
	return &PatchError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PatchError
func Wrap(code int, message string, cause error) *PatchError {
	return &PatchError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ProfileNotFound returns an error for a missing connection profile
func ProfileNotFound(name string) *PatchError {
	return New(ExitProfileNotFound, fmt.Sprintf("profile not found: %s", name))
}

// PartialFailure returns an error summarizing a partially failed connect run
func PartialFailure(failed, total int) *PatchError {
	return New(ExitPartialFailure, fmt.Sprintf("%d of %d connections failed", failed, total))
}

// TransportFailed returns an error for a failed transport listing or query
func TransportFailed(transport string, cause error) *PatchError {
	return Wrap(ExitTransportFailed, fmt.Sprintf("%s transport query failed", transport), cause)
}

// ContainerFailed returns an error for session container operations
func ContainerFailed(op string, cause error) *PatchError {
	return Wrap(ExitContainerFailed, fmt.Sprintf("container %s failed", op), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *PatchError {
	return Wrap(ExitConfigError, message, cause)
}

// SessionNotRunning returns an error when the session container is not running
func SessionNotRunning(name string) *PatchError {
	return New(ExitGeneralError, fmt.Sprintf("session container %s is not running", name))
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *PatchError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var patchErr *PatchError
	if errors.As(err, &patchErr) {
		return patchErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
