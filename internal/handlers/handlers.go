// Package handlers routes classified Telegram updates to the bot's command,
// menu, relay and membership logic.
package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/kyzzavilable/jaseb-bot/internal/access"
	"github.com/kyzzavilable/jaseb-bot/internal/autoshare"
	"github.com/kyzzavilable/jaseb-bot/internal/config"
	"github.com/kyzzavilable/jaseb-bot/internal/contextkeys"
	"github.com/kyzzavilable/jaseb-bot/internal/cooldown"
	"github.com/kyzzavilable/jaseb-bot/internal/entitlement"
	"github.com/kyzzavilable/jaseb-bot/internal/fanout"
	"github.com/kyzzavilable/jaseb-bot/internal/messages"
	"github.com/kyzzavilable/jaseb-bot/internal/relay"
	"github.com/kyzzavilable/jaseb-bot/types"
)

type Handlers struct {
	cfg    *config.Config
	store  types.StateStore
	tr     types.Transport
	acl    *access.Control
	gate   *cooldown.Gate
	disp   *fanout.Dispatcher
	engine *entitlement.Engine
	auto   *autoshare.Scheduler
	relay  *relay.Relay

	startedAt time.Time
	menus     *menuTracker
}

func NewHandlers(
	cfg *config.Config,
	store types.StateStore,
	tr types.Transport,
	acl *access.Control,
	gate *cooldown.Gate,
	disp *fanout.Dispatcher,
	engine *entitlement.Engine,
	auto *autoshare.Scheduler,
	rl *relay.Relay,
) *Handlers {
	return &Handlers{
		cfg:       cfg,
		store:     store,
		tr:        tr,
		acl:       acl,
		gate:      gate,
		disp:      disp,
		engine:    engine,
		auto:      auto,
		relay:     rl,
		startedAt: time.Now(),
		menus:     newMenuTracker(),
	}
}

func (bh *Handlers) MainHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	messageType, _ := contextkeys.GetMessageType(ctx)

	switch messageType {
	case contextkeys.MessageTypeMembership:
		bh.HandleMembership(ctx, b, update)
	case contextkeys.MessageTypeCommand:
		bh.HandleCommand(ctx, b, update)
	case contextkeys.MessageTypeButton:
		bh.HandleCallback(ctx, b, update)
	case contextkeys.MessageTypeText, contextkeys.MessageTypeMedia:
		bh.HandleText(ctx, b, update)
	default:
		log.Debug().Str("type", string(messageType)).Msg("update ignored")
	}
}

// uptime reports how long the process has been serving updates.
func (bh *Handlers) uptime() time.Duration {
	return time.Since(bh.startedAt)
}

func fullName(u *models.User) string {
	if u == nil {
		return ""
	}
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}

func atUsername(u *models.User) string {
	if u == nil || u.Username == "" {
		return ""
	}
	return "@" + u.Username
}

func sendText(ctx context.Context, b *bot.Bot, chatID any, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		log.Error().Err(err).Interface("chat", chatID).Msg("send failed")
	}
}

func sendHTML(ctx context.Context, b *bot.Bot, chatID any, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: messages.ParseModeHTML,
	})
	if err != nil {
		log.Error().Err(err).Interface("chat", chatID).Msg("send failed")
	}
}
