// Package entitlement derives premium grants from group membership events
// and expires numeric grants over time.
package entitlement

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kyzzavilable/jaseb-bot/internal/access"
	"github.com/kyzzavilable/jaseb-bot/internal/besteffort"
	"github.com/kyzzavilable/jaseb-bot/internal/messages"
	"github.com/kyzzavilable/jaseb-bot/types"
)

const (
	// MinGroupMembers is the minimum group size for a join to earn a grant.
	MinGroupMembers = 20
	// MinGroupsPermanent is the add-count at which premium turns permanent.
	MinGroupsPermanent = 10
	// DaysPerGroup is the grant earned per qualifying group.
	DaysPerGroup = 2

	grantSeconds  = DaysPerGroup * 86400
	sweepInterval = time.Minute
)

// MemberEvent identifies one membership change: the group, the actor who
// added or removed the bot, and display fields for notifications.
type MemberEvent struct {
	GroupID       int64
	GroupTitle    string
	ActorID       string
	ActorName     string
	ActorUsername string
}

type Engine struct {
	store     types.StateStore
	tr        types.Transport
	acl       *access.Control
	backupDir string
	now       func() time.Time
}

func NewEngine(store types.StateStore, tr types.Transport, acl *access.Control, backupDir string) *Engine {
	return &Engine{
		store:     store,
		tr:        tr,
		acl:       acl,
		backupDir: backupDir,
		now:       time.Now,
	}
}

// HandleAdded processes the bot gaining member or administrator status in a
// group. A failing member-count lookup degrades to 0 members, so no grant is
// issued (fail closed).
func (e *Engine) HandleAdded(ctx context.Context, ev MemberEvent) error {
	members, err := e.tr.GetChatMemberCount(ctx, ev.GroupID)
	if err != nil {
		members = 0
	}

	var (
		total     int
		permanent bool
		granted   bool
	)
	err = e.store.Update(func(st *types.State) error {
		if !st.AddGroup(ev.GroupID) {
			return nil
		}
		granted = true
		total = st.BumpGroupCount(ev.ActorID, +1)
		if members < MinGroupMembers {
			return nil
		}
		if total >= MinGroupsPermanent {
			st.Premium[ev.ActorID] = types.PermanentExpiry()
			permanent = true
			return nil
		}
		now := e.now().Unix()
		base := now
		if cur, ok := st.Premium[ev.ActorID]; ok {
			if cur.Permanent {
				// A manual permanent grant is never downgraded by stacking.
				permanent = true
				return nil
			}
			if cur.Unix > base {
				base = cur.Unix
			}
		}
		st.Premium[ev.ActorID] = types.ExpiryAt(base + grantSeconds)
		return nil
	})
	if err != nil || !granted {
		return err
	}

	if members < MinGroupMembers {
		besteffort.Attempt("shortfall notice", func() error {
			return e.tr.SendMessage(ctx, ev.ActorID, messages.GroupTooSmall(ev.GroupTitle, members, MinGroupMembers))
		})
	} else if permanent {
		besteffort.Attempt("grant notice", func() error {
			return e.tr.SendMessage(ctx, ev.ActorID, messages.GrantPermanent(total))
		})
	} else {
		besteffort.Attempt("grant notice", func() error {
			return e.tr.SendMessage(ctx, ev.ActorID, messages.GrantDays(total, DaysPerGroup))
		})
	}

	if members >= MinGroupMembers {
		e.report(ctx, messages.GroupJoinReport(ev.ActorName, ev.ActorUsername, ev.ActorID, ev.GroupTitle, ev.GroupID, total, members))
	}
	log.Info().Int64("group", ev.GroupID).Str("actor", ev.ActorID).Int("total", total).Msg("bot added to group")
	return nil
}

// HandleRemoved processes the bot losing access to a registered group. When
// the actor's add-count drops below the permanent threshold the premium
// entry is deleted entirely, whether numeric or permanent.
func (e *Engine) HandleRemoved(ctx context.Context, ev MemberEvent) error {
	var (
		total   int
		revoked bool
		removed bool
	)
	err := e.store.Update(func(st *types.State) error {
		if !st.RemoveGroup(ev.GroupID) {
			return nil
		}
		removed = true
		total = st.BumpGroupCount(ev.ActorID, -1)
		if total < MinGroupsPermanent {
			if _, ok := st.Premium[ev.ActorID]; ok {
				delete(st.Premium, ev.ActorID)
				revoked = true
			}
		}
		return nil
	})
	if err != nil || !removed {
		return err
	}

	if revoked {
		besteffort.Attempt("revoke notice", func() error {
			return e.tr.SendMessage(ctx, ev.ActorID, messages.PremiumRevoked())
		})
	}

	members, err := e.tr.GetChatMemberCount(ctx, ev.GroupID)
	if err != nil {
		members = 0
	}
	e.report(ctx, messages.GroupLeaveReport(ev.ActorName, ev.ActorUsername, ev.ActorID, ev.GroupTitle, ev.GroupID, total, members))
	log.Info().Int64("group", ev.GroupID).Str("actor", ev.ActorID).Int("total", total).Bool("revoked", revoked).Msg("bot removed from group")
	return nil
}

// report sends a summary and a fresh snapshot export to the primary owner.
func (e *Engine) report(ctx context.Context, summary string) {
	to := e.acl.PrimaryOwner()
	if to == "" {
		return
	}
	besteffort.Attempt("owner report", func() error {
		return e.tr.SendHTML(ctx, to, summary)
	})
	path, err := e.store.Export(e.backupDir)
	if err != nil {
		log.Error().Err(err).Msg("snapshot export failed")
		return
	}
	besteffort.Attempt("backup delivery", func() error {
		return e.tr.SendDocumentFile(ctx, to, path, "data-backup.json")
	})
}

// RunSweep expires numeric premium entries every minute until ctx is done.
func (e *Engine) RunSweep(ctx context.Context) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			e.SweepOnce(ctx)
		}
	}
}

// SweepOnce deletes every numeric entry at or past its expiry and notifies
// the affected actors. The snapshot is re-persisted even when nothing
// changed; the sweep is idempotent.
func (e *Engine) SweepOnce(ctx context.Context) []string {
	var expired []string
	err := e.store.Update(func(st *types.State) error {
		now := e.now().Unix()
		for uid, exp := range st.Premium {
			if !exp.Permanent && exp.Unix <= now {
				delete(st.Premium, uid)
				expired = append(expired, uid)
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("premium expiry sweep failed")
		return nil
	}
	for _, uid := range expired {
		log.Info().Str("actor", uid).Msg("premium expired")
		besteffort.Attempt("expiry notice", func() error {
			return e.tr.SendMessage(ctx, uid, messages.PremiumExpired())
		})
	}
	return expired
}
