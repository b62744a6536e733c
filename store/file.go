package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const fileEntryMode = 0o600

// FileStore defines a public type used by goQuizClient APIs.
//
// FileStore persists the credential snapshot as three files under a single
// directory, one file per entry. It is the durable default for CLI and
// desktop embeddings, the role browser local storage plays for the web client.
type FileStore struct {
	dir string
}

// NewFileStore describes the newfilestore operation and its observable behavior.
//
// NewFileStore creates the directory when it does not exist. The directory
// must be private to the owning user; tokens are written in the clear.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("store directory required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(entry string) string {
	return filepath.Join(s.dir, entry)
}

// writeEntry goes through a temp file and rename so a crash mid-write leaves
// either the old entry or the new one, never a torn file.
func (s *FileStore) writeEntry(entry string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, entry+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := tmp.Chmod(fileEntryMode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmpName, s.path(entry)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *FileStore) readEntry(entry string) []byte {
	data, err := os.ReadFile(s.path(entry))
	if err != nil {
		return nil
	}
	return data
}

// Save describes the save operation and its observable behavior.
//
// Save writes the three entries as independent files. Each individual write
// is atomic; the caller is responsible for writing all three together.
func (s *FileStore) Save(_ context.Context, snap Snapshot) error {
	if !snap.Complete() {
		return ErrIncompleteSnapshot
	}
	userRaw, err := encodeUser(snap.User)
	if err != nil {
		return err
	}

	if err := s.writeEntry(entryUser, userRaw); err != nil {
		return err
	}
	if err := s.writeEntry(entryAccessToken, []byte(snap.AccessToken)); err != nil {
		return err
	}
	return s.writeEntry(entryRefreshToken, []byte(snap.RefreshToken))
}

// Load describes the load operation and its observable behavior.
//
// Load returns (nil, nil) when any entry is missing, unreadable, or the user
// entry does not deserialize to a valid profile record.
func (s *FileStore) Load(_ context.Context) (*Snapshot, error) {
	return assemble(
		s.readEntry(entryUser),
		s.readEntry(entryAccessToken),
		s.readEntry(entryRefreshToken),
	), nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear deletes all three entries and is idempotent: missing entries are not
// an error.
func (s *FileStore) Clear(_ context.Context) error {
	for _, entry := range []string{entryUser, entryAccessToken, entryRefreshToken} {
		if err := os.Remove(s.path(entry)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	return nil
}
