package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyzzavilable/jaseb-bot/types"
)

func TestOwnerTiers(t *testing.T) {
	c := New([]string{"1", "2"})
	st := types.NewState()
	st.Owners = []string{"3"}

	assert.True(t, c.IsPrimaryOwner("1"))
	assert.True(t, c.IsPrimaryOwner("2"))
	assert.False(t, c.IsPrimaryOwner("3"))

	assert.True(t, c.IsOwner(st, "1"))
	assert.True(t, c.IsOwner(st, "3"))
	assert.False(t, c.IsOwner(st, "4"))

	assert.Equal(t, "1", c.PrimaryOwner())
}

func TestRemovePrimaryOwnerRejected(t *testing.T) {
	c := New([]string{"1"})
	st := types.NewState()
	st.Owners = []string{"3"}

	_, err := c.RemoveOwner(st, "1")
	require.ErrorIs(t, err, ErrPrimaryOwner)
	// The additional owner list stays untouched after the rejection.
	assert.Equal(t, []string{"3"}, st.Owners)

	removed, err := c.RemoveOwner(st, "3")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, st.Owners)

	removed, err = c.RemoveOwner(st, "9")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAddOwnerDeduplicates(t *testing.T) {
	c := New([]string{"1"})
	st := types.NewState()

	assert.True(t, c.AddOwner(st, "3"))
	assert.False(t, c.AddOwner(st, "3"))
	assert.Equal(t, []string{"3"}, st.Owners)
}

func TestIsPremium(t *testing.T) {
	c := New([]string{"1"})
	st := types.NewState()
	st.Premium["perm"] = types.PermanentExpiry()
	st.Premium["live"] = types.ExpiryAt(time.Now().Unix() + 3600)
	st.Premium["dead"] = types.ExpiryAt(time.Now().Unix() - 1)

	assert.True(t, c.IsPremium(st, "perm"))
	assert.True(t, c.IsPremium(st, "live"))
	assert.False(t, c.IsPremium(st, "dead"))
	assert.False(t, c.IsPremium(st, "none"))
}

func TestBlacklistToggle(t *testing.T) {
	c := New([]string{"1"})
	st := types.NewState()

	assert.True(t, c.Blacklist(st, "5"))
	assert.False(t, c.Blacklist(st, "5"))
	assert.True(t, c.IsBlacklisted(st, "5"))

	assert.True(t, c.Unblacklist(st, "5"))
	assert.False(t, c.Unblacklist(st, "5"))
	assert.False(t, c.IsBlacklisted(st, "5"))
}
