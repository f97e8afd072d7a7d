package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/goccy/go-json"

	"github.com/kyzzavilable/jaseb-bot/types"
)

// FileStore keeps the whole State snapshot in one JSON file, compatible with
// the original data.json layout. A missing file yields the default empty
// State; a corrupt file is surfaced as an error rather than silently
// replaced. Saves go through a temp file and rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*types.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (*types.State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return types.NewState(), nil
	}
	if err != nil {
		return nil, err
	}
	st := &types.State{}
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("state snapshot %s is corrupt: %w", s.path, err)
	}
	st.Normalize()
	return st, nil
}

func (s *FileStore) Save(st *types.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(st)
}

func (s *FileStore) save(st *types.State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Update runs a read-modify-write cycle under the store lock.
func (s *FileStore) Update(fn func(*types.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(st); err != nil {
		return err
	}
	return s.save(st)
}

func (s *FileStore) Export(dir string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load()
	if err != nil {
		return "", err
	}
	return exportSnapshot(dir, st)
}

func (s *FileStore) Close() error {
	return nil
}
