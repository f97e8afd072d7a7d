package cooldown

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyzzavilable/jaseb-bot/store"
	"github.com/kyzzavilable/jaseb-bot/types"
)

func newTestGate(t *testing.T) (*Gate, types.StateStore, *time.Time) {
	t.Helper()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	now := time.Unix(10_000, 0)
	g := NewGate(st)
	g.now = func() time.Time { return now }
	return g, st, &now
}

func TestCooldownChargedOnAttempt(t *testing.T) {
	g, st, now := newTestGate(t)

	allowed, _, err := g.CheckAndConsume(types.ActionShare, "111", false)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Inside the window the second attempt is rejected with the wait left.
	*now = now.Add(5 * time.Minute)
	allowed, remaining, err := g.CheckAndConsume(types.ActionShare, "111", false)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 10*time.Minute, remaining)

	// After the window elapses the action is allowed again.
	*now = now.Add(10 * time.Minute)
	allowed, _, err = g.CheckAndConsume(types.ActionShare, "111", false)
	require.NoError(t, err)
	assert.True(t, allowed)

	snap, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, now.Unix(), snap.LastUse(types.ActionShare, "111"))
}

func TestCooldownNamespacesIndependent(t *testing.T) {
	g, _, _ := newTestGate(t)

	allowed, _, err := g.CheckAndConsume(types.ActionShare, "111", false)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = g.CheckAndConsume(types.ActionBroadcast, "111", false)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCooldownExemptNeverRecorded(t *testing.T) {
	g, st, _ := newTestGate(t)

	for i := 0; i < 3; i++ {
		allowed, _, err := g.CheckAndConsume(types.ActionShare, "owner", true)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	snap, err := st.Load()
	require.NoError(t, err)
	assert.Zero(t, snap.LastUse(types.ActionShare, "owner"))
}

func TestCooldownUsesConfiguredWindow(t *testing.T) {
	g, st, now := newTestGate(t)
	require.NoError(t, st.Update(func(s *types.State) error {
		s.SetCooldownMinutes(1)
		return nil
	}))

	allowed, _, err := g.CheckAndConsume(types.ActionShare, "111", false)
	require.NoError(t, err)
	assert.True(t, allowed)

	*now = now.Add(61 * time.Second)
	allowed, _, err = g.CheckAndConsume(types.ActionShare, "111", false)
	require.NoError(t, err)
	assert.True(t, allowed)
}
