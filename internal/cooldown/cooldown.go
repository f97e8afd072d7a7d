// Package cooldown is a per-action, per-actor rate gate over the persisted
// cooldown ledger. Every action namespace ("share", "broadcast") keeps an
// independent ledger; the window is the global Settings cooldown.
package cooldown

import (
	"time"

	"github.com/kyzzavilable/jaseb-bot/types"
)

type Gate struct {
	store types.StateStore
	now   func() time.Time
}

func NewGate(store types.StateStore) *Gate {
	return &Gate{store: store, now: time.Now}
}

// CheckAndConsume charges one use of action for actor. Exempt actors
// (primary owners) are always allowed and never recorded, so their usage
// never starts a window. For everyone else the last use is stamped before
// the caller proceeds: the cooldown is charged on attempt, not on success.
// When rejected, remaining holds the wait left in the window.
func (g *Gate) CheckAndConsume(action, actor string, exempt bool) (allowed bool, remaining time.Duration, err error) {
	if exempt {
		return true, 0, nil
	}
	err = g.store.Update(func(st *types.State) error {
		now := g.now().Unix()
		window := int64(st.CooldownMinutes()) * 60
		elapsed := now - st.LastUse(action, actor)
		if elapsed < window {
			remaining = time.Duration(window-elapsed) * time.Second
			return nil
		}
		st.StampUse(action, actor, now)
		allowed = true
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return allowed, remaining, nil
}
