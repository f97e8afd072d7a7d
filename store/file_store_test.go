package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyzzavilable/jaseb-bot/types"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "data.json"))
}

func TestFileStoreMissingFileYieldsDefault(t *testing.T) {
	s := newTestStore(t)
	st, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, st.Groups)
	assert.Empty(t, st.Premium)
	assert.Equal(t, types.DefaultCooldownMinutes, st.CooldownMinutes())
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)

	st := types.NewState()
	st.AddGroup(-100123)
	st.AddUser("111")
	st.Premium["111"] = types.PermanentExpiry()
	st.Premium["222"] = types.ExpiryAt(1712345678)
	st.BumpGroupCount("111", 3)
	require.NoError(t, s.Save(st))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []int64{-100123}, got.Groups)
	assert.True(t, got.Premium["111"].Permanent)
	assert.Equal(t, int64(1712345678), got.Premium["222"].Unix)
	assert.Equal(t, 3, got.UserGroupCount["111"])
}

func TestFileStoreCorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.path, []byte("{not json"), 0o644))

	_, err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")

	// Update must refuse to clobber a corrupt snapshot.
	err = s.Update(func(st *types.State) error { return nil })
	require.Error(t, err)
}

func TestFileStoreUpdate(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Update(func(st *types.State) error {
		st.AddGroup(-1)
		return nil
	}))
	require.NoError(t, s.Update(func(st *types.State) error {
		st.AddGroup(-2)
		return nil
	}))

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []int64{-1, -2}, st.Groups)
}

func TestFileStoreExport(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Update(func(st *types.State) error {
		st.AddUser("111")
		return nil
	}))

	dir := t.TempDir()
	path, err := s.Export(dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "data-"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"111"`)
}
