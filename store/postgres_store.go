package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"github.com/kyzzavilable/jaseb-bot/types"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// PostgresStore keeps the whole State snapshot as one JSONB row, rewritten
// wholesale on every save. The single-row shape mirrors the file backend's
// read-modify-write contract; there is deliberately no partial update path.
type PostgresStore struct {
	pool *pgxpool.Pool
	mu   sync.Mutex
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	backoff := retry.WithMaxRetries(5, retry.NewFibonacci(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDB(*s.pool.Config().ConnConfig)
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

func (s *PostgresStore) Load() (*types.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *PostgresStore) load() (*types.State, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var data []byte
	err := s.pool.QueryRow(ctx, `
SELECT data FROM state_snapshot WHERE id = 1
`).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.NewState(), nil
	}
	if err != nil {
		return nil, err
	}
	st := &types.State{}
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("state snapshot row is corrupt: %w", err)
	}
	st.Normalize()
	return st, nil
}

func (s *PostgresStore) Save(st *types.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(st)
}

func (s *PostgresStore) save(st *types.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = s.pool.Exec(ctx, `
INSERT INTO state_snapshot (id, data)
VALUES (1, $1)
ON CONFLICT (id) DO UPDATE SET
  data = EXCLUDED.data,
  updated_at = NOW();
`, data)
	return err
}

func (s *PostgresStore) Update(fn func(*types.State) error) error {
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

func (s *PostgresStore) Export(dir string) (string, error) {
	st, err := s.Load()
	if err != nil {
		return "", err
	}
	return exportSnapshot(dir, st)
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
