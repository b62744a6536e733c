package goQuizClient

import (
	"sync"

	"github.com/MrEthical07/goQuizClient/store"
)

// session is the single authoritative record of authentication status. It is
// owned exclusively by the Client: the transport and the stores read through
// it and never keep a competing copy. Every transition completes under the
// lock, so no reader ever observes a half-populated session.
type session struct {
	mu           sync.RWMutex
	state        SessionState
	user         *store.User
	accessToken  string
	refreshToken string

	// pending counts in-flight login/register operations for IsLoading.
	pending int
}

func newSession() *session {
	return &session{state: StateInitializing}
}

// hydrate resolves the initializing state from the persisted snapshot.
// Validity of restored credentials is discovered lazily on the first
// protected call; no network round-trip happens here.
func (s *session) hydrate(snap *store.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap != nil && snap.Complete() {
		s.state = StateAuthenticated
		s.user = snap.User
		s.accessToken = snap.AccessToken
		s.refreshToken = snap.RefreshToken
		return
	}
	s.state = StateUnauthenticated
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
}

func (s *session) info() SessionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var user *store.User
	if s.user != nil {
		copied := *s.user
		user = &copied
	}
	return SessionInfo{
		State:           s.state,
		User:            user,
		IsAuthenticated: s.state == StateAuthenticated || s.state == StateRefreshing,
		IsLoading:       s.state == StateInitializing || s.state == StateRefreshing || s.pending > 0,
	}
}

func (s *session) credentials() (access, refresh string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *session) snapshot() *store.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil || s.accessToken == "" || s.refreshToken == "" {
		return nil
	}
	copied := *s.user
	return &store.Snapshot{
		User:         &copied,
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
	}
}

func (s *session) setAuthenticated(user *store.User, access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateAuthenticated
	s.user = user
	s.accessToken = access
	s.refreshToken = refresh
}

// setUser replaces the profile without touching the credentials. No-op
// unless a session is held.
func (s *session) setUser(user *store.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAuthenticated && s.state != StateRefreshing {
		return false
	}
	s.user = user
	return true
}

// clear resets to the empty unauthenticated session. Idempotent; also the
// landing state for a failed hydration or a fatal renewal failure.
func (s *session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateUnauthenticated
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
}

// beginRefresh moves Authenticated to Refreshing and hands back the refresh
// token to present. The second value is false when no renewal can start
// because no refresh token is held.
func (s *session) beginRefresh() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken == "" {
		return "", false
	}
	if s.state == StateAuthenticated {
		s.state = StateRefreshing
	}
	return s.refreshToken, true
}

// completeRefresh installs the rotated pair and resolves Refreshing back to
// Authenticated. The failure path goes through clear via logout instead.
//
// The install is refused when the session is no longer mid-renewal: a logout
// (or a replacing login) that landed while the renewal was on the wire is
// authoritative, so the rotated pair is dropped and the session is left as
// that transition set it.
func (s *session) completeRefresh(access, refresh string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRefreshing || s.user == nil {
		return false
	}
	s.state = StateAuthenticated
	s.accessToken = access
	s.refreshToken = refresh
	return true
}

func (s *session) beginAuthenticating() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending++
}

func (s *session) endAuthenticating() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending > 0 {
		s.pending--
	}
}
