package goQuizClient

import (
	"github.com/MrEthical07/goQuizClient/store"
)

// SessionState defines a public type used by goQuizClient APIs.
//
// SessionState is the tagged state of the session machine. Illegal
// combinations (loading while authenticated with no user, half-populated
// credentials) are unrepresentable: the user and both tokens are set and
// cleared together as part of a state transition.
type SessionState uint8

const (
	// StateInitializing is the start state, before the persisted snapshot has been consulted.
	StateInitializing SessionState = iota
	// StateUnauthenticated means no session: no user, no credentials.
	StateUnauthenticated
	// StateAuthenticated means a user and both credentials are held.
	StateAuthenticated
	// StateRefreshing means a renewal is in flight; credentials are still the pre-renewal pair.
	StateRefreshing
)

// String describes the string operation and its observable behavior.
func (s SessionState) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// SessionInfo defines a public type used by goQuizClient APIs.
//
// SessionInfo is the read surface handed to route guards and feature code:
// a point-in-time copy of the session, never a live reference.
type SessionInfo struct {
	State SessionState
	User  *store.User

	// IsAuthenticated is true exactly when User and both tokens are held.
	IsAuthenticated bool
	// IsLoading is true during startup hydration and while a login,
	// registration, or renewal is in flight.
	IsLoading bool
}
