package autoshare

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyzzavilable/jaseb-bot/internal/fanout"
	"github.com/kyzzavilable/jaseb-bot/store"
	"github.com/kyzzavilable/jaseb-bot/types"
)

type fakeTransport struct {
	mu    sync.Mutex
	texts map[any][]string
}

func (f *fakeTransport) SendMessage(_ context.Context, chatID any, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.texts == nil {
		f.texts = make(map[any][]string)
	}
	f.texts[chatID] = append(f.texts[chatID], text)
	return nil
}
func (f *fakeTransport) SendHTML(ctx context.Context, chatID any, text string) error {
	return f.SendMessage(ctx, chatID, text)
}
func (f *fakeTransport) SendPhoto(context.Context, any, string, string) error    { return nil }
func (f *fakeTransport) SendVideo(context.Context, any, string, string) error    { return nil }
func (f *fakeTransport) SendDocument(context.Context, any, string, string) error { return nil }
func (f *fakeTransport) SendVoice(context.Context, any, string, string) error    { return nil }
func (f *fakeTransport) SendSticker(context.Context, any, string) error          { return nil }
func (f *fakeTransport) ForwardMessage(context.Context, any, any, int) error     { return nil }
func (f *fakeTransport) SendDocumentFile(context.Context, any, string, string) error {
	return nil
}
func (f *fakeTransport) GetChatMemberCount(context.Context, any) (int, error) { return 0, nil }

var _ types.Transport = (*fakeTransport)(nil)

func (f *fakeTransport) sent(chatID any) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.texts[chatID])
}

type fixture struct {
	sched *Scheduler
	tr    *fakeTransport
	store types.StateStore
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, st.Update(func(s *types.State) error {
		s.AddGroup(-1)
		s.SetCooldownMinutes(1)
		return nil
	}))
	tr := &fakeTransport{}
	f := &fixture{
		sched: NewScheduler(st, fanout.NewDispatcher(tr)),
		tr:    tr,
		store: st,
		now:   time.Unix(50_000, 0),
	}
	f.sched.now = func() time.Time { return f.now }
	return f
}

func textPayload(s string) *types.Payload {
	return &types.Payload{Kind: types.PayloadText, Text: s}
}

func TestEnableWithoutPayload(t *testing.T) {
	f := newFixture(t)
	require.ErrorIs(t, f.sched.Enable("111"), ErrNoPayload)
	assert.False(t, f.sched.Active("111"))
}

func TestFirstSendDeferredByOneWindow(t *testing.T) {
	f := newFixture(t)
	f.sched.SetPayload("111", textPayload("halo"))
	require.NoError(t, f.sched.Enable("111"))

	// Right after enabling nothing is due yet.
	f.sched.scanOnce(context.Background())
	assert.Zero(t, f.tr.sent(int64(-1)))

	// One cooldown window later the payload goes out.
	f.now = f.now.Add(time.Minute)
	f.sched.scanOnce(context.Background())
	assert.Equal(t, 1, f.tr.sent(int64(-1)))

	// And not again until the next window elapses.
	f.sched.scanOnce(context.Background())
	assert.Equal(t, 1, f.tr.sent(int64(-1)))

	f.now = f.now.Add(time.Minute)
	f.sched.scanOnce(context.Background())
	assert.Equal(t, 2, f.tr.sent(int64(-1)))
}

func TestDisableStopsCycleKeepsPayload(t *testing.T) {
	f := newFixture(t)
	f.sched.SetPayload("111", textPayload("halo"))
	require.NoError(t, f.sched.Enable("111"))

	f.sched.Disable("111")
	f.now = f.now.Add(5 * time.Minute)
	f.sched.scanOnce(context.Background())
	assert.Zero(t, f.tr.sent(int64(-1)))

	assert.True(t, f.sched.HasPayload("111"))
	require.NoError(t, f.sched.Enable("111"))
	assert.True(t, f.sched.Active("111"))
}

func TestSetPayloadResetsCycle(t *testing.T) {
	f := newFixture(t)
	f.sched.SetPayload("111", textPayload("a"))
	require.NoError(t, f.sched.Enable("111"))

	// Replacing the payload turns the cycle off until re-enabled.
	f.sched.SetPayload("111", textPayload("b"))
	assert.False(t, f.sched.Active("111"))

	f.now = f.now.Add(5 * time.Minute)
	f.sched.scanOnce(context.Background())
	assert.Zero(t, f.tr.sent(int64(-1)))
}
