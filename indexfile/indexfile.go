// Package indexfile persists song indexes as a JSON file on disk. It is
// the zero-dependency-on-sqlite alternative to the db store, handy for
// debugging (the file is greppable) and for sharing an index between
// machines.
package indexfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/amonks/setstats/data"
	"github.com/gofrs/flock"
)

type Store struct {
	path string
	lock *flock.Flock
}

// New creates a store backed by the JSON file at path. The file need
// not exist yet.
func New(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Save writes the index under an exclusive file lock, going through a
// temp file and rename so a crash mid-write never leaves a truncated
// index behind.
func (s *Store) Save(idx *data.SongIndex) error {
	if idx == nil {
		return fmt.Errorf("no index to save")
	}

	// The lock file lives next to the index file, so the directory has
	// to exist before the lock can be taken.
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating index directory: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("error locking index file '%s': %w", s.path, err)
	}
	defer s.lock.Unlock()

	encoded, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding index '%s': %w", idx.BuildID, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0644); err != nil {
		return fmt.Errorf("error writing index file '%s': %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("error replacing index file '%s': %w", s.path, err)
	}

	return nil
}

// Load reads the stored index. A missing file returns (nil, nil): no
// index has been built yet.
func (s *Store) Load() (*data.SongIndex, error) {
	// No index file means nothing was ever saved; don't touch the lock,
	// whose directory may not exist yet either.
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err := s.lock.RLock(); err != nil {
		return nil, fmt.Errorf("error locking index file '%s': %w", s.path, err)
	}
	defer s.lock.Unlock()

	encoded, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading index file '%s': %w", s.path, err)
	}

	var idx data.SongIndex
	if err := json.Unmarshal(encoded, &idx); err != nil {
		return nil, fmt.Errorf("error decoding index file '%s': %w", s.path, err)
	}
	return &idx, nil
}
