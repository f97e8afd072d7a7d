package handlers

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/kyzzavilable/jaseb-bot/internal/messages"
	"github.com/kyzzavilable/jaseb-bot/types"
)

// menuTracker remembers the last menu message per chat so a fresh menu can
// replace it instead of stacking.
type menuTracker struct {
	mu   sync.Mutex
	last map[int64]int
}

func newMenuTracker() *menuTracker {
	return &menuTracker{last: make(map[int64]int)}
}

func (t *menuTracker) swap(chatID int64, messageID int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.last[chatID]
	t.last[chatID] = messageID
	return prev
}

func mainMenuKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: messages.ButtonJasherMenu}, {Text: messages.ButtonPlansFree}},
			{{Text: messages.ButtonPlansOwner}, {Text: messages.ButtonContactOwner}},
			{{Text: messages.ButtonToolsMenu}, {Text: messages.ButtonContactAdmin}},
		},
		ResizeKeyboard: true,
	}
}

func backKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard:       [][]models.KeyboardButton{{{Text: messages.ButtonBack}}},
		ResizeKeyboard: true,
	}
}

func cancelKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard:       [][]models.KeyboardButton{{{Text: messages.ButtonCancel}}},
		ResizeKeyboard: true,
	}
}

// replaceMenu deletes the previous menu in the chat and sends a new one as a
// photo caption, falling back to plain text when no images are configured.
func (bh *Handlers) replaceMenu(ctx context.Context, b *bot.Bot, chatID int64, caption string, kb *models.ReplyKeyboardMarkup) {
	var sentID int
	if image := bh.cfg.RandomMenuImage(); image != "" {
		sent, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:      chatID,
			Photo:       &models.InputFileString{Data: image},
			Caption:     caption,
			ParseMode:   messages.ParseModeHTML,
			ReplyMarkup: kb,
		})
		if err != nil {
			log.Error().Err(err).Int64("chat", chatID).Msg("menu photo send failed")
			return
		}
		sentID = sent.ID
	} else {
		sent, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        caption,
			ParseMode:   messages.ParseModeHTML,
			ReplyMarkup: kb,
		})
		if err != nil {
			log.Error().Err(err).Int64("chat", chatID).Msg("menu send failed")
			return
		}
		sentID = sent.ID
	}

	if prev := bh.menus.swap(chatID, sentID); prev != 0 {
		_, _ = b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: prev,
		})
	}
}

// botInfo assembles the menu caption header fields from config and state.
func (bh *Handlers) botInfo(username string, st *types.State) messages.BotInfo {
	return messages.BotInfo{
		Username:   username,
		Developer:  bh.cfg.Developer,
		Version:    bh.cfg.Version,
		ChannelURL: bh.cfg.ChannelURL,
		Groups:     len(st.Groups),
		Users:      len(st.Users),
		Uptime:     bh.uptime(),
	}
}

func (bh *Handlers) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	chatID := msg.Chat.ID
	actor := types.ActorKey(msg.From.ID)

	if !bh.requireJoin(ctx, b, msg.From.ID, chatID) {
		return
	}

	err := bh.store.Update(func(st *types.State) error {
		st.AddUser(actor)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("start registration failed")
	}

	bh.sendMainMenu(ctx, b, chatID, atUsername(msg.From))
}

func (bh *Handlers) sendMainMenu(ctx context.Context, b *bot.Bot, chatID int64, username string) {
	st, err := bh.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("state load failed")
		return
	}
	bh.replaceMenu(ctx, b, chatID, messages.MainMenuCaption(bh.botInfo(username, st)), mainMenuKeyboard())
}

// requireJoin enforces the channel-join gate when a channel is configured.
// Lookup failures let the user through.
func (bh *Handlers) requireJoin(ctx context.Context, b *bot.Bot, userID, chatID int64) bool {
	if bh.cfg.ChannelUsername == "" {
		return true
	}
	if bh.isChannelMember(ctx, b, userID) {
		return true
	}
	_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   messages.JoinRequired(),
		ReplyMarkup: &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "📢 Join Channel", URL: bh.cfg.ChannelURL}},
				{{Text: "🔄 Coba Lagi", CallbackData: "check_join_again"}},
			},
		},
	})
	return false
}

func (bh *Handlers) isChannelMember(ctx context.Context, b *bot.Bot, userID int64) bool {
	member, err := b.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: "@" + bh.cfg.ChannelUsername,
		UserID: userID,
	})
	if err != nil {
		log.Warn().Err(err).Int64("user", userID).Msg("channel membership lookup failed")
		return true
	}
	switch member.Type {
	case models.ChatMemberTypeOwner, models.ChatMemberTypeAdministrator, models.ChatMemberTypeMember:
		return true
	default:
		return false
	}
}

// HandleCallback answers inline-button presses; only the join recheck button
// exists today.
func (bh *Handlers) HandleCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	q := update.CallbackQuery
	if q == nil {
		return
	}
	if q.Data == "check_join_again" {
		if bh.isChannelMember(ctx, b, q.From.ID) {
			sendText(ctx, b, q.From.ID, messages.JoinThanks())
		} else {
			sendText(ctx, b, q.From.ID, messages.JoinStillMissing())
		}
	}
	_, _ = b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: q.ID,
	})
}
