// Package errors provides sentinel errors and custom error types for the relticket application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrConfiguration indicates a missing or invalid setting (credential, tag, flag combination)
	ErrConfiguration = errors.New("configuration error")

	// ErrSourceUnavailable indicates that a release or pull request does not exist
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrAuthentication indicates that a collaborator rejected our credentials
	ErrAuthentication = errors.New("authentication failure")

	// ErrIO indicates a read or write failure on an input or output stream
	ErrIO = errors.New("i/o error")

	// ErrQueryFailed indicates that the current state of a ticket could not be fetched
	ErrQueryFailed = errors.New("query failed")

	// ErrMutationFailed indicates that a ticket could not be transitioned
	ErrMutationFailed = errors.New("mutation failed")

	// ErrItemsFailed is returned by a stage that finished but had per-item failures
	ErrItemsFailed = errors.New("one or more items failed")
)

// IsFatal reports whether err must abort the whole run rather than a single item.
// A cancelled or expired context is fatal.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration) ||
		errors.Is(err, ErrAuthentication) ||
		errors.Is(err, ErrIO) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// ConfigError represents a missing or invalid setting
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Is returns true if the target error is ErrConfiguration
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigError creates a new ConfigError
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError represents a release, pull request or ticket that does not exist
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// Is returns true if the target error is ErrSourceUnavailable
func (e *NotFoundError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// AuthError represents a collaborator rejecting our credentials
type AuthError struct {
	Service string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s rejected credentials: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s rejected credentials", e.Service)
}

// Is returns true if the target error is ErrAuthentication
func (e *AuthError) Is(target error) bool {
	return target == ErrAuthentication
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError
func NewAuthError(service string, err error) *AuthError {
	return &AuthError{Service: service, Err: err}
}

// IOError represents a failure reading or writing a stream
type IOError struct {
	Source string
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("i/o error on %s: %v", e.Source, e.Err)
}

// Is returns true if the target error is ErrIO
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(source string, err error) *IOError {
	return &IOError{Source: source, Err: err}
}

// TicketError represents a failed query or mutation for a single ticket.
// Op is ErrQueryFailed or ErrMutationFailed.
type TicketError struct {
	Op       error
	TicketID string
	Err      error
}

func (e *TicketError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v for %s: %v", e.Op, e.TicketID, e.Err)
	}
	return fmt.Sprintf("%v for %s", e.Op, e.TicketID)
}

// Is matches the operation sentinel
func (e *TicketError) Is(target error) bool {
	return target == e.Op
}

func (e *TicketError) Unwrap() error {
	return e.Err
}

// NewQueryError creates a TicketError for a failed state query
func NewQueryError(ticketID string, err error) *TicketError {
	return &TicketError{Op: ErrQueryFailed, TicketID: ticketID, Err: err}
}

// NewMutationError creates a TicketError for a failed state transition
func NewMutationError(ticketID string, err error) *TicketError {
	return &TicketError{Op: ErrMutationFailed, TicketID: ticketID, Err: err}
}

// CommandError represents an error from an external command execution
type CommandError struct {
	Command string
	Args    []string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s command failed", e.Command)
	if len(e.Args) > 0 {
		msg += ": " + strings.Join(e.Args, " ")
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError
func NewCommandError(command string, args []string, stderr string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Args:    args,
		Stderr:  stderr,
		Err:     err,
	}
}
