package store

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrStoreUnavailable is returned when the persistence backend cannot be reached.
var ErrStoreUnavailable = errors.New("credential store unavailable")

const (
	entryUser         = "user"
	entryAccessToken  = "access_token"
	entryRefreshToken = "refresh_token"
)

// User is the persisted profile record of the authenticated account.
//
// User instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Snapshot is the persisted form of the session: the profile plus both
// credentials. A snapshot round-trips through any Store implementation as
// three independent entries; only complete snapshots are ever loaded back.
type Snapshot struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// Complete describes the complete operation and its observable behavior.
//
// Complete reports whether the snapshot carries a profile and both credentials.
// Incomplete snapshots are rejected by Save and never returned by Load.
func (s Snapshot) Complete() bool {
	return s.User != nil && s.AccessToken != "" && s.RefreshToken != ""
}

// Store defines a public type used by goQuizClient APIs.
//
// Store is the durable key-value persistence boundary for the credential
// snapshot. Save writes the three entries together, Load returns the snapshot
// only when all three are present and well-formed, and Clear deletes all
// three unconditionally and idempotently.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
	Clear(ctx context.Context) error
}

// ErrIncompleteSnapshot is returned by Save when any of the three entries is missing.
var ErrIncompleteSnapshot = errors.New("incomplete credential snapshot")

func encodeUser(u *User) ([]byte, error) {
	return json.Marshal(u)
}

// decodeUser rejects anything that does not carry at least an id, so a
// truncated or unrelated blob loads as absence rather than a hollow profile.
func decodeUser(data []byte) (*User, bool) {
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, false
	}
	if u.ID == "" {
		return nil, false
	}
	return &u, true
}

func assemble(userRaw, access, refresh []byte) *Snapshot {
	if len(userRaw) == 0 || len(access) == 0 || len(refresh) == 0 {
		return nil
	}
	user, ok := decodeUser(userRaw)
	if !ok {
		return nil
	}
	return &Snapshot{
		User:         user,
		AccessToken:  string(access),
		RefreshToken: string(refresh),
	}
}
