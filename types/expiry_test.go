package types

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiryJSONNumeric(t *testing.T) {
	data, err := json.Marshal(ExpiryAt(1712345678))
	require.NoError(t, err)
	assert.Equal(t, "1712345678", string(data))

	var exp Expiry
	require.NoError(t, json.Unmarshal([]byte("1712345678"), &exp))
	assert.False(t, exp.Permanent)
	assert.Equal(t, int64(1712345678), exp.Unix)
}

func TestExpiryJSONPermanent(t *testing.T) {
	data, err := json.Marshal(PermanentExpiry())
	require.NoError(t, err)
	assert.Equal(t, `"permanent"`, string(data))

	var exp Expiry
	require.NoError(t, json.Unmarshal([]byte(`"permanent"`), &exp))
	assert.True(t, exp.Permanent)
}

func TestExpiryActive(t *testing.T) {
	now := int64(1000)

	tests := []struct {
		name   string
		exp    Expiry
		active bool
	}{
		{"permanent", PermanentExpiry(), true},
		{"future", ExpiryAt(1001), true},
		{"exactly now", ExpiryAt(1000), false},
		{"past", ExpiryAt(999), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, tt.exp.Active(now))
		})
	}
}

func TestStateSnapshotRoundTrip(t *testing.T) {
	raw := `{
		"premium": {"111": 1712345678, "222": "permanent"},
		"owner": ["333"],
		"groups": [-100123],
		"users": ["111"],
		"blacklist": ["444"],
		"user_group_count": {"111": 3},
		"cooldowns": {"share": {"111": 1712345000}},
		"settings": {"cooldown": {"default": 20}}
	}`

	var st State
	require.NoError(t, json.Unmarshal([]byte(raw), &st))
	st.Normalize()

	assert.Equal(t, int64(1712345678), st.Premium["111"].Unix)
	assert.True(t, st.Premium["222"].Permanent)
	assert.Equal(t, []int64{-100123}, st.Groups)
	assert.Equal(t, 3, st.UserGroupCount["111"])
	assert.Equal(t, int64(1712345000), st.LastUse(ActionShare, "111"))
	assert.Equal(t, 20, st.CooldownMinutes())

	data, err := json.Marshal(&st)
	require.NoError(t, err)
	var again State
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, st.Premium, again.Premium)
}

func TestBumpGroupCountClampsAtZero(t *testing.T) {
	st := NewState()
	assert.Equal(t, 1, st.BumpGroupCount("111", +1))
	assert.Equal(t, 0, st.BumpGroupCount("111", -1))
	assert.Equal(t, 0, st.BumpGroupCount("111", -1))
	assert.Equal(t, 1, st.BumpGroupCount("111", +1))
}

func TestAddGroupDeduplicates(t *testing.T) {
	st := NewState()
	assert.True(t, st.AddGroup(-100))
	assert.False(t, st.AddGroup(-100))
	assert.Equal(t, []int64{-100}, st.Groups)
	assert.True(t, st.RemoveGroup(-100))
	assert.False(t, st.RemoveGroup(-100))
}

func TestCooldownMinutesDefault(t *testing.T) {
	st := NewState()
	assert.Equal(t, DefaultCooldownMinutes, st.CooldownMinutes())
	st.SetCooldownMinutes(5)
	assert.Equal(t, 5, st.CooldownMinutes())
}
