package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/kyzzavilable/jaseb-bot/internal/entitlement"
	"github.com/kyzzavilable/jaseb-bot/types"
)

// HandleMembership reacts to the bot's own status changing in a group:
// gaining member or admin status feeds the entitlement grant path, losing
// access feeds the revoke path. Private chats are ignored.
func (bh *Handlers) HandleMembership(ctx context.Context, b *bot.Bot, update *models.Update) {
	ev := update.MyChatMember
	if ev == nil || ev.Chat.Type == "private" {
		return
	}

	memberEvent := entitlement.MemberEvent{
		GroupID:       ev.Chat.ID,
		GroupTitle:    ev.Chat.Title,
		ActorID:       types.ActorKey(ev.From.ID),
		ActorName:     fullName(&ev.From),
		ActorUsername: ev.From.Username,
	}

	switch ev.NewChatMember.Type {
	case models.ChatMemberTypeMember, models.ChatMemberTypeAdministrator:
		if err := bh.engine.HandleAdded(ctx, memberEvent); err != nil {
			log.Error().Err(err).Int64("group", ev.Chat.ID).Msg("membership add failed")
		}
	case models.ChatMemberTypeLeft, models.ChatMemberTypeBanned:
		if err := bh.engine.HandleRemoved(ctx, memberEvent); err != nil {
			log.Error().Err(err).Int64("group", ev.Chat.ID).Msg("membership remove failed")
		}
	}
}
