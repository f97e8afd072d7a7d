package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/kyzzavilable/jaseb-bot/internal/fanout"
	"github.com/kyzzavilable/jaseb-bot/internal/messages"
	"github.com/kyzzavilable/jaseb-bot/internal/telegram"
	"github.com/kyzzavilable/jaseb-bot/types"
)

// Fanout target selection: group shares go to registered groups, broadcasts
// to every user who started the bot.
type shareTarget int

const (
	shareToGroups shareTarget = iota
	broadcastToUsers
)

const (
	resendDelay  = 300 * time.Millisecond
	forwardDelay = 15 * time.Second

	// minGroupsForShare lets non-premium users share once they have added
	// the bot to at least this many groups.
	minGroupsForShare = 2
)

func (t shareTarget) command(forward bool) string {
	switch {
	case t == shareToGroups && forward:
		return "sharemsgv2"
	case t == shareToGroups:
		return "sharemsg"
	case forward:
		return "broadcastv2"
	default:
		return "broadcast"
	}
}

func (t shareTarget) unit() string {
	if t == shareToGroups {
		return "grup/channel"
	}
	return "user"
}

func (t shareTarget) recipients(st *types.State) []any {
	if t == shareToGroups {
		return st.GroupRecipients()
	}
	return st.UserRecipients()
}

func (t shareTarget) action() string {
	if t == shareToGroups {
		return types.ActionShare
	}
	return types.ActionBroadcast
}

func (t shareTarget) emptyNotice() string {
	if t == shareToGroups {
		return messages.NoGroups()
	}
	return messages.NoUsers()
}

// handleShare runs the cooldown-gated resend fanout (/sharemsg, /broadcast).
func (bh *Handlers) handleShare(ctx context.Context, b *bot.Bot, update *models.Update, target shareTarget) {
	msg := update.Message
	chatID := msg.Chat.ID
	actor := types.ActorKey(msg.From.ID)
	command := target.command(false)

	st, err := bh.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("state load failed")
		return
	}
	if !bh.shareAllowed(st, actor, target) {
		if target == shareToGroups {
			sendText(ctx, b, chatID, messages.OwnerOrPremiumOnly())
		} else {
			sendText(ctx, b, chatID, messages.OwnerOnly())
		}
		return
	}
	if msg.ReplyToMessage == nil {
		sendText(ctx, b, chatID, messages.NeedReply("di-"+command))
		return
	}
	payload := telegram.PayloadFromMessage(msg.ReplyToMessage)
	if payload == nil {
		sendText(ctx, b, chatID, messages.UnsupportedShare())
		return
	}

	exempt := bh.acl.IsPrimaryOwner(actor)
	allowed, remaining, err := bh.gate.CheckAndConsume(target.action(), actor, exempt)
	if err != nil {
		log.Error().Err(err).Msg("cooldown check failed")
		sendText(ctx, b, chatID, messages.CommandFailed(command))
		return
	}
	if !allowed {
		sendText(ctx, b, chatID, messages.CooldownWait(command, remaining))
		return
	}

	recipients := target.recipients(st)
	if len(recipients) == 0 {
		sendText(ctx, b, chatID, target.emptyNotice())
		return
	}

	sendText(ctx, b, chatID, messages.FanoutStart(command, len(recipients), target.unit()))
	res := bh.disp.Dispatch(ctx, fanout.Request{
		Recipients: recipients,
		Payload:    payload,
		Mode:       fanout.ModeResend,
		Delay:      resendDelay,
	})
	sendText(ctx, b, chatID, messages.FanoutDone(command, res.Total, res.Succeeded, res.Failed, target.unit()))
}

// handleForwardShare runs the forward-mode fanout (/sharemsgv2,
// /broadcastv2). No cooldown gate; instead a long fixed delay that only
// primary owners skip.
func (bh *Handlers) handleForwardShare(ctx context.Context, b *bot.Bot, update *models.Update, target shareTarget) {
	msg := update.Message
	chatID := msg.Chat.ID
	actor := types.ActorKey(msg.From.ID)
	command := target.command(true)

	st, err := bh.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("state load failed")
		return
	}
	if !bh.acl.IsOwner(st, actor) && !bh.acl.IsPremium(st, actor) {
		sendText(ctx, b, chatID, messages.OwnerOrPremiumOnly())
		return
	}
	if msg.ReplyToMessage == nil {
		sendText(ctx, b, chatID, messages.NeedReply("di-"+command))
		return
	}

	recipients := target.recipients(st)
	if len(recipients) == 0 {
		sendText(ctx, b, chatID, target.emptyNotice())
		return
	}

	delay := forwardDelay
	if bh.acl.IsPrimaryOwner(actor) {
		delay = 0
	}

	sendText(ctx, b, chatID, messages.FanoutStart(command, len(recipients), target.unit()))
	res := bh.disp.Dispatch(ctx, fanout.Request{
		Recipients:      recipients,
		Mode:            fanout.ModeForward,
		Delay:           delay,
		SourceChat:      msg.Chat.ID,
		SourceMessageID: msg.ReplyToMessage.ID,
	})
	sendText(ctx, b, chatID, messages.FanoutDone(command, res.Total, res.Succeeded, res.Failed, target.unit()))
}

// shareAllowed checks the resend-fanout privilege: group shares open to
// owners, premium users and anyone who added the bot to enough groups;
// broadcasts are owner only.
func (bh *Handlers) shareAllowed(st *types.State, actor string, target shareTarget) bool {
	if target == broadcastToUsers {
		return bh.acl.IsOwner(st, actor)
	}
	return bh.acl.IsOwner(st, actor) ||
		bh.acl.IsPremium(st, actor) ||
		st.UserGroupCount[actor] >= minGroupsForShare
}

// handleSetPayload stores the replied-to message as the auto-share payload.
func (bh *Handlers) handleSetPayload(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	chatID := msg.Chat.ID
	actor := types.ActorKey(msg.From.ID)

	if _, ok := bh.requireOwner(ctx, b, chatID, actor); !ok {
		return
	}
	if msg.ReplyToMessage == nil {
		sendText(ctx, b, chatID, messages.NeedReply("dijadikan pesan auto-share"))
		return
	}
	payload := telegram.PayloadFromMessage(msg.ReplyToMessage)
	if payload == nil {
		sendText(ctx, b, chatID, messages.UnsupportedAutoShare())
		return
	}
	bh.auto.SetPayload(actor, payload)
	sendText(ctx, b, chatID, messages.AutoSharePayloadSaved())
}

// handleAuto controls the auto-share cycle: on, off or status.
func (bh *Handlers) handleAuto(ctx context.Context, b *bot.Bot, chatID any, actor string, args []string) {
	if _, ok := bh.requireOwner(ctx, b, chatID, actor); !ok {
		return
	}
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	switch mode {
	case "on":
		if err := bh.auto.Enable(actor); err != nil {
			sendText(ctx, b, chatID, messages.AutoShareNoPayload())
			return
		}
		sendText(ctx, b, chatID, messages.AutoShareStarted())
	case "off":
		bh.auto.Disable(actor)
		sendText(ctx, b, chatID, messages.AutoShareStopped())
	case "status":
		sendText(ctx, b, chatID, messages.AutoShareStatus(bh.auto.Active(actor)))
	default:
		sendText(ctx, b, chatID, messages.Usage("/auto on | off | status"))
	}
}
