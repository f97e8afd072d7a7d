package store

import (
	"errors"
	"sync"

	"github.com/kyzzavilable/jaseb-bot/types"
)

// RedisStore keeps the whole State snapshot under a single key. Loading a
// missing key yields the default empty State.
type RedisStore struct {
	client *RedisClient
	key    string
	mu     sync.Mutex
}

func NewRedisStore(client *RedisClient) *RedisStore {
	return &RedisStore{
		client: client,
		key:    client.generateKey("state"),
	}
}

func (s *RedisStore) Load() (*types.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *RedisStore) load() (*types.State, error) {
	st := &types.State{}
	err := s.client.Get(s.key, st)
	if errors.Is(err, ErrKeyNotFound) {
		return types.NewState(), nil
	}
	if err != nil {
		return nil, err
	}
	st.Normalize()
	return st, nil
}

func (s *RedisStore) Save(st *types.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.Set(s.key, st, 0)
}

func (s *RedisStore) Update(fn func(*types.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(st); err != nil {
		return err
	}
	return s.client.Set(s.key, st, 0)
}

func (s *RedisStore) Export(dir string) (string, error) {
	st, err := s.Load()
	if err != nil {
		return "", err
	}
	return exportSnapshot(dir, st)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
