package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/kyzzavilable/jaseb-bot/internal/messages"
	"github.com/kyzzavilable/jaseb-bot/internal/relay"
	"github.com/kyzzavilable/jaseb-bot/internal/telegram"
	"github.com/kyzzavilable/jaseb-bot/types"
)

var menuButtons = map[string]bool{
	messages.ButtonBack:         true,
	messages.ButtonJasherMenu:   true,
	messages.ButtonPlansOwner:   true,
	messages.ButtonPlansFree:    true,
	messages.ButtonToolsMenu:    true,
	messages.ButtonContactOwner: true,
	messages.ButtonContactAdmin: true,
}

// HandleText covers everything that is not a slash command: reply-keyboard
// menu buttons, relay session traffic and owner replies to forwarded
// session messages.
func (bh *Handlers) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	chatID := msg.Chat.ID
	actor := types.ActorKey(msg.From.ID)
	text := strings.TrimSpace(msg.Text)

	// Button presses are removed so the chat stays a single rolling menu.
	if menuButtons[text] {
		_, _ = b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: msg.ID,
		})
	}

	switch text {
	case messages.ButtonBack:
		bh.sendMainMenu(ctx, b, chatID, atUsername(msg.From))
		return
	case messages.ButtonJasherMenu:
		bh.sendSubMenu(ctx, b, chatID, atUsername(msg.From), messages.JasherMenuCaption)
		return
	case messages.ButtonPlansFree:
		bh.sendSubMenu(ctx, b, chatID, atUsername(msg.From), messages.FreePlansCaption)
		return
	case messages.ButtonToolsMenu:
		bh.sendSubMenu(ctx, b, chatID, atUsername(msg.From), messages.ToolsMenuCaption)
		return
	case messages.ButtonPlansOwner:
		st, err := bh.store.Load()
		if err != nil {
			log.Error().Err(err).Msg("state load failed")
			return
		}
		if !bh.acl.IsOwner(st, actor) {
			sendText(ctx, b, chatID, messages.OwnerMenuDenied())
			return
		}
		bh.replaceMenu(ctx, b, chatID, messages.OwnerMenuCaption(bh.botInfo(atUsername(msg.From), st)), backKeyboard())
		return
	case messages.ButtonContactOwner:
		sendText(ctx, b, chatID, messages.ContactOwner(bh.cfg.Developer))
		return
	case messages.ButtonContactAdmin:
		bh.startRelaySession(ctx, b, msg)
		return
	case messages.ButtonCancel:
		if bh.relay.End(ctx, actor, fullName(msg.From)) {
			_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:      chatID,
				Text:        messages.SessionClosed(),
				ReplyMarkup: mainMenuKeyboard(),
			})
		}
		return
	}

	// Owner side: a reply to a forwarded session message goes back to the
	// user named in the forward origin.
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.ForwardOrigin != nil {
		if bh.sendOwnerReply(ctx, b, msg, actor) {
			return
		}
	}

	// User side: any other private message inside an open session is
	// forwarded to the owner.
	if msg.Chat.Type == "private" && bh.relay.Active(actor) {
		if err := bh.relay.ForwardInbound(ctx, actor, msg.ID); err != nil {
			log.Error().Err(err).Str("user", actor).Msg("relay forward failed")
		}
	}
}

func (bh *Handlers) sendSubMenu(ctx context.Context, b *bot.Bot, chatID int64, username string, caption func(messages.BotInfo) string) {
	st, err := bh.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("state load failed")
		return
	}
	bh.replaceMenu(ctx, b, chatID, caption(bh.botInfo(username, st)), backKeyboard())
}

func (bh *Handlers) startRelaySession(ctx context.Context, b *bot.Bot, msg *models.Message) {
	actor := types.ActorKey(msg.From.ID)
	err := bh.relay.Start(ctx, actor, fullName(msg.From), bh.acl.PrimaryOwner())
	if err != nil && !errors.Is(err, relay.ErrAlreadyActive) {
		log.Error().Err(err).Str("user", actor).Msg("relay start failed")
		return
	}
	_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        messages.SessionOpened(),
		ReplyMarkup: cancelKeyboard(),
	})
}

// sendOwnerReply resolves the target user from the forward origin and relays
// the owner's reply. Reports whether the message was consumed.
func (bh *Handlers) sendOwnerReply(ctx context.Context, b *bot.Bot, msg *models.Message, actor string) bool {
	if !bh.acl.IsPrimaryOwner(actor) {
		return false
	}
	userID := ""
	if origin := msg.ReplyToMessage.ForwardOrigin; origin.Type == models.MessageOriginTypeUser && origin.MessageOriginUser != nil {
		userID = types.ActorKey(origin.MessageOriginUser.SenderUser.ID)
	}
	err := bh.relay.SendFromOwner(ctx, actor, userID, telegram.PayloadFromMessage(msg))
	if err != nil {
		if errors.Is(err, relay.ErrNoSession) {
			return false
		}
		log.Error().Err(err).Msg("relay reply failed")
	}
	return true
}
