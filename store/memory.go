package store

import (
	"context"
	"sync"
)

// MemoryStore defines a public type used by goQuizClient APIs.
//
// MemoryStore keeps the credential snapshot in process memory. Sessions do
// not survive a restart; intended for tests and short-lived embeddings.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore describes the newmemorystore operation and its observable behavior.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte, 3),
	}
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation or encoding fails.
// Save can be used concurrently.
func (s *MemoryStore) Save(_ context.Context, snap Snapshot) error {
	if !snap.Complete() {
		return ErrIncompleteSnapshot
	}
	userRaw, err := encodeUser(snap.User)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entryUser] = userRaw
	s.entries[entryAccessToken] = []byte(snap.AccessToken)
	s.entries[entryRefreshToken] = []byte(snap.RefreshToken)
	return nil
}

// Load describes the load operation and its observable behavior.
//
// Load returns (nil, nil) when the snapshot is absent or corrupt.
func (s *MemoryStore) Load(_ context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return assemble(
		s.entries[entryUser],
		s.entries[entryAccessToken],
		s.entries[entryRefreshToken],
	), nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear deletes all three entries unconditionally and is idempotent.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, entryUser)
	delete(s.entries, entryAccessToken)
	delete(s.entries, entryRefreshToken)
	return nil
}
