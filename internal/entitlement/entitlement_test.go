package entitlement

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyzzavilable/jaseb-bot/internal/access"
	"github.com/kyzzavilable/jaseb-bot/store"
	"github.com/kyzzavilable/jaseb-bot/types"
)

type fakeTransport struct {
	memberCounts map[int64]int
	countErr     error
	messages     map[string][]string
	documents    []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		memberCounts: make(map[int64]int),
		messages:     make(map[string][]string),
	}
}

func (f *fakeTransport) note(chatID any, text string) error {
	key, _ := chatID.(string)
	f.messages[key] = append(f.messages[key], text)
	return nil
}

func (f *fakeTransport) SendMessage(_ context.Context, chatID any, text string) error {
	return f.note(chatID, text)
}
func (f *fakeTransport) SendHTML(_ context.Context, chatID any, text string) error {
	return f.note(chatID, text)
}
func (f *fakeTransport) SendPhoto(context.Context, any, string, string) error    { return nil }
func (f *fakeTransport) SendVideo(context.Context, any, string, string) error    { return nil }
func (f *fakeTransport) SendDocument(context.Context, any, string, string) error { return nil }
func (f *fakeTransport) SendVoice(context.Context, any, string, string) error    { return nil }
func (f *fakeTransport) SendSticker(context.Context, any, string) error          { return nil }
func (f *fakeTransport) ForwardMessage(context.Context, any, any, int) error     { return nil }
func (f *fakeTransport) SendDocumentFile(_ context.Context, _ any, path, _ string) error {
	f.documents = append(f.documents, path)
	return nil
}
func (f *fakeTransport) GetChatMemberCount(_ context.Context, chatID any) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	id, _ := chatID.(int64)
	return f.memberCounts[id], nil
}

var _ types.Transport = (*fakeTransport)(nil)

type fixture struct {
	engine *Engine
	store  types.StateStore
	tr     *fakeTransport
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	tr := newFakeTransport()
	f := &fixture{
		store: st,
		tr:    tr,
		now:   time.Unix(1_000_000, 0),
	}
	f.engine = NewEngine(st, tr, access.New([]string{"9000"}), t.TempDir())
	f.engine.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) state(t *testing.T) *types.State {
	t.Helper()
	st, err := f.store.Load()
	require.NoError(t, err)
	return st
}

func event(groupID int64, actor string) MemberEvent {
	return MemberEvent{
		GroupID:    groupID,
		GroupTitle: "Grup Test",
		ActorID:    actor,
		ActorName:  "Tester",
	}
}

func TestHandleAddedSmallGroupNoGrant(t *testing.T) {
	f := newFixture(t)
	f.tr.memberCounts[-1] = MinGroupMembers - 1

	require.NoError(t, f.engine.HandleAdded(context.Background(), event(-1, "111")))

	st := f.state(t)
	assert.True(t, st.HasGroup(-1))
	assert.Equal(t, 1, st.UserGroupCount["111"])
	assert.NotContains(t, st.Premium, "111")
	// Actor still hears about the shortfall.
	require.Len(t, f.tr.messages["111"], 1)
	assert.Contains(t, f.tr.messages["111"][0], "member")
}

func TestHandleAddedCountLookupFailureNoGrant(t *testing.T) {
	f := newFixture(t)
	f.tr.countErr = errors.New("chat not found")

	require.NoError(t, f.engine.HandleAdded(context.Background(), event(-1, "111")))

	st := f.state(t)
	assert.True(t, st.HasGroup(-1))
	assert.NotContains(t, st.Premium, "111")
}

func TestHandleAddedGrantStacks(t *testing.T) {
	f := newFixture(t)
	f.tr.memberCounts[-1] = 50
	f.tr.memberCounts[-2] = 50

	require.NoError(t, f.engine.HandleAdded(context.Background(), event(-1, "111")))
	st := f.state(t)
	first := st.Premium["111"]
	assert.Equal(t, f.now.Unix()+2*86400, first.Unix)

	// A second qualifying group extends from the current expiry, not now.
	require.NoError(t, f.engine.HandleAdded(context.Background(), event(-2, "111")))
	st = f.state(t)
	assert.Equal(t, first.Unix+2*86400, st.Premium["111"].Unix)
	assert.Equal(t, 2, st.UserGroupCount["111"])
}

func TestHandleAddedDuplicateGroupIgnored(t *testing.T) {
	f := newFixture(t)
	f.tr.memberCounts[-1] = 50

	require.NoError(t, f.engine.HandleAdded(context.Background(), event(-1, "111")))
	require.NoError(t, f.engine.HandleAdded(context.Background(), event(-1, "111")))

	st := f.state(t)
	assert.Equal(t, 1, st.UserGroupCount["111"])
	assert.Equal(t, f.now.Unix()+2*86400, st.Premium["111"].Unix)
}

func TestHandleAddedPermanentAtThreshold(t *testing.T) {
	f := newFixture(t)
	for i := int64(1); i <= int64(MinGroupsPermanent); i++ {
		f.tr.memberCounts[-i] = 50
		require.NoError(t, f.engine.HandleAdded(context.Background(), event(-i, "111")))
	}

	st := f.state(t)
	assert.True(t, st.Premium["111"].Permanent)
	assert.Equal(t, MinGroupsPermanent, st.UserGroupCount["111"])
}

func TestHandleAddedKeepsManualPermanent(t *testing.T) {
	f := newFixture(t)
	f.tr.memberCounts[-1] = 50
	require.NoError(t, f.store.Update(func(st *types.State) error {
		st.Premium["111"] = types.PermanentExpiry()
		return nil
	}))

	require.NoError(t, f.engine.HandleAdded(context.Background(), event(-1, "111")))

	assert.True(t, f.state(t).Premium["111"].Permanent)
}

func TestHandleRemovedRevokesBelowThreshold(t *testing.T) {
	f := newFixture(t)
	f.tr.memberCounts[-1] = 50
	require.NoError(t, f.engine.HandleAdded(context.Background(), event(-1, "111")))

	require.NoError(t, f.engine.HandleRemoved(context.Background(), event(-1, "111")))

	st := f.state(t)
	assert.False(t, st.HasGroup(-1))
	assert.Equal(t, 0, st.UserGroupCount["111"])
	assert.NotContains(t, st.Premium, "111")
}

func TestHandleRemovedUnknownGroupIgnored(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.engine.HandleRemoved(context.Background(), event(-99, "111")))

	st := f.state(t)
	assert.Equal(t, 0, st.UserGroupCount["111"])
	assert.Empty(t, f.tr.messages["111"])
}

func TestReportsGoToPrimaryOwner(t *testing.T) {
	f := newFixture(t)
	f.tr.memberCounts[-1] = 50

	require.NoError(t, f.engine.HandleAdded(context.Background(), event(-1, "111")))

	require.NotEmpty(t, f.tr.messages["9000"])
	assert.Contains(t, f.tr.messages["9000"][0], "Grup Test")
	assert.NotEmpty(t, f.tr.documents)
}

func TestSweepOnceExpiresNumericOnly(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Update(func(st *types.State) error {
		st.Premium["dead"] = types.ExpiryAt(f.now.Unix() - 1)
		st.Premium["edge"] = types.ExpiryAt(f.now.Unix())
		st.Premium["live"] = types.ExpiryAt(f.now.Unix() + 10)
		st.Premium["perm"] = types.PermanentExpiry()
		return nil
	}))

	expired := f.engine.SweepOnce(context.Background())
	assert.ElementsMatch(t, []string{"dead", "edge"}, expired)

	st := f.state(t)
	assert.NotContains(t, st.Premium, "dead")
	assert.NotContains(t, st.Premium, "edge")
	assert.Contains(t, st.Premium, "live")
	assert.Contains(t, st.Premium, "perm")

	require.Len(t, f.tr.messages["dead"], 1)
	require.Len(t, f.tr.messages["edge"], 1)
}

func TestSweepOnceIdempotent(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Update(func(st *types.State) error {
		st.Premium["dead"] = types.ExpiryAt(f.now.Unix() - 1)
		return nil
	}))

	assert.Len(t, f.engine.SweepOnce(context.Background()), 1)
	assert.Empty(t, f.engine.SweepOnce(context.Background()))
}
