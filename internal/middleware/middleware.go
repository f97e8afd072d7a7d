// Package middleware wraps bot handlers with the blacklist gate and update
// classification.
package middleware

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/kyzzavilable/jaseb-bot/internal/access"
	"github.com/kyzzavilable/jaseb-bot/internal/contextkeys"
	"github.com/kyzzavilable/jaseb-bot/internal/messages"
	"github.com/kyzzavilable/jaseb-bot/types"
)

type Middlewares struct {
	store types.StateStore
	acl   *access.Control
}

func New(store types.StateStore, acl *access.Control) *Middlewares {
	return &Middlewares{store: store, acl: acl}
}

// BlacklistMiddleware drops message and button updates from blacklisted
// users with a rejection notice. Membership updates always pass so a
// blacklisted user removing the bot from a group is still processed.
func (m *Middlewares) BlacklistMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		var (
			userID int64
			chatID int64
		)
		switch {
		case update.Message != nil && update.Message.From != nil:
			userID = update.Message.From.ID
			chatID = update.Message.Chat.ID
		case update.CallbackQuery != nil:
			userID = update.CallbackQuery.From.ID
			chatID = chatIDFromMaybeInaccessibleMessage(update.CallbackQuery.Message)
		default:
			next(ctx, b, update)
			return
		}
		if userID == 0 {
			next(ctx, b, update)
			return
		}

		st, err := m.store.Load()
		if err != nil {
			log.Error().Err(err).Msg("blacklist check load failed")
			next(ctx, b, update)
			return
		}
		if m.acl.IsBlacklisted(st, types.ActorKey(userID)) {
			if chatID != 0 {
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   messages.Blocked(),
				})
			}
			return
		}
		next(ctx, b, update)
	}
}

// AnalyzeMessageMiddleware tags the context with the update class and, for
// commands, the parsed name and arguments.
func (m *Middlewares) AnalyzeMessageMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		switch {
		case update.MyChatMember != nil:
			ctx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeMembership)
		case update.CallbackQuery != nil && update.CallbackQuery.Data != "":
			ctx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeButton)
			ctx = contextkeys.WithCallbackData(ctx, update.CallbackQuery.Data)
		case update.Message != nil && strings.HasPrefix(update.Message.Text, "/"):
			ctx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeCommand)
			ctx = contextkeys.WithCommand(ctx, ParseCommand(update.Message.Text))
		case update.Message != nil:
			ctx = contextkeys.WithMessageType(ctx, classifyMessage(update.Message))
		}
		next(ctx, b, update)
	}
}

// ParseCommand splits "/cmd@BotName arg1 arg2" into its name and args.
func ParseCommand(text string) contextkeys.Command {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return contextkeys.Command{}
	}
	name := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	return contextkeys.Command{
		Name: strings.ToLower(name),
		Args: fields[1:],
	}
}

func classifyMessage(msg *models.Message) contextkeys.MessageType {
	switch {
	case len(msg.Photo) > 0,
		msg.Video != nil,
		msg.Document != nil,
		msg.Voice != nil,
		msg.Sticker != nil,
		msg.Audio != nil,
		msg.VideoNote != nil:
		return contextkeys.MessageTypeMedia
	case msg.Text != "":
		return contextkeys.MessageTypeText
	default:
		return contextkeys.MessageTypeUnknown
	}
}

func chatIDFromMaybeInaccessibleMessage(m models.MaybeInaccessibleMessage) int64 {
	if m.Message != nil {
		return m.Message.Chat.ID
	}
	if m.InaccessibleMessage != nil {
		return m.InaccessibleMessage.Chat.ID
	}
	return 0
}
