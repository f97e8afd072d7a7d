package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/kyzzavilable/jaseb-bot/types"
)

// Options selects and configures the snapshot backend. Postgres wins over
// Redis, Redis over the JSON file.
type Options struct {
	DataFile      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresDSN   string
}

// Open builds the StateStore for the configured backend.
func Open(ctx context.Context, opts Options) (types.StateStore, error) {
	switch {
	case opts.PostgresDSN != "":
		log.Info().Msg("state store: postgres")
		return NewPostgresStore(ctx, opts.PostgresDSN)
	case opts.RedisAddr != "":
		client, err := NewRedisClient(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, "jaseb")
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", opts.RedisAddr).Msg("state store: redis")
		return NewRedisStore(client), nil
	default:
		log.Info().Str("path", opts.DataFile).Msg("state store: json file")
		return NewFileStore(opts.DataFile), nil
	}
}

// exportSnapshot writes a timestamped copy of the snapshot under dir and
// returns the file path. Shared by every backend's Export.
func exportSnapshot(dir string, st *types.State) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("data-%s.json", time.Now().UTC().Format("2006-01-02T15-04-05Z"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
