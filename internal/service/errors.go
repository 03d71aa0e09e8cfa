package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a task id does not exist on the server.
var ErrNotFound = errors.New("not found")

// NotFoundMessage is shown to the user when a task vanished server-side.
const NotFoundMessage = "Task not found or already deleted"

// ValidationError is a client-side rejection. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError reports rejected credentials.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ConflictError reports a registration for a username that already exists.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ServerError is a non-success HTTP response.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (%d)", e.Status)
	}
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// NetworkError wraps a transport failure: refused connection, timeout, bad body.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage converts err into the single string shown to the user.
// Typed errors surface their own message; anything else falls back.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNotFound) {
		return NotFoundMessage
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) && conflictErr.Message != "" {
		return conflictErr.Message
	}
	var serverErr *ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return serverErr.Message
	}
	return fallback
}
