// Package state persists the runner state as a JSON file.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.StateStore using a single JSON file replaced atomically.
type Store struct{}

// NewStore creates a new StateStore.
func NewStore() *Store {
	return &Store{}
}

// Load reads the state at path. A missing or empty file yields an empty state.
func (s *Store) Load(path string) (*domain.State, error) {
	//nolint:gosec // Path comes from the configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewState(), nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrStateReadFailed, err.Error()), "path", path)
	}
	if len(data) == 0 {
		return domain.NewState(), nil
	}

	st := domain.NewState()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStateUnmarshalFailed, err.Error()), "path", path)
	}
	if st.Jobs == nil {
		st.Jobs = make(map[string]domain.SyncCursor)
	}
	st.Version = domain.StateVersion
	return st, nil
}

// Save writes st to a temporary file next to path and renames it over path.
func (s *Store) Save(path string, st *domain.State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrStateWriteFailed, err.Error())
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStateWriteFailed, err.Error()), "path", path)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStateWriteFailed, err.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrStateWriteFailed, err.Error()), "path", path)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrStateWriteFailed, err.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStateWriteFailed, err.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStateWriteFailed, err.Error()), "path", path)
	}
	return nil
}
