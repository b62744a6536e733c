package goQuizClient

import (
	"errors"
	"fmt"
)

var (
	// ErrClientNotReady is an exported constant or variable used by the quiz API client.
	ErrClientNotReady = errors.New("client not ready")
	// ErrUnauthenticated is an exported constant or variable used by the quiz API client.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrNoRefreshToken is an exported constant or variable used by the quiz API client.
	ErrNoRefreshToken = errors.New("no refresh token held")
	// ErrSessionExpired is an exported constant or variable used by the quiz API client.
	ErrSessionExpired = errors.New("session expired")
	// ErrConnectivity is an exported constant or variable used by the quiz API client.
	ErrConnectivity = errors.New("connection failed")
	// ErrMalformedResponse is an exported constant or variable used by the quiz API client.
	ErrMalformedResponse = errors.New("malformed server response")
	// ErrRequestsSuspended is an exported constant or variable used by the quiz API client.
	ErrRequestsSuspended = errors.New("requests suspended by circuit breaker")
)

// APIError defines a public type used by goQuizClient APIs.
//
// APIError carries the server's own account of a rejected authentication
// operation: the HTTP status code, the envelope status, and the
// human-readable message. Callers show Message to the user and retry with
// different input; nothing about an APIError is retried automatically.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

// Error describes the error operation and its observable behavior.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request rejected with http %d", e.StatusCode)
}
