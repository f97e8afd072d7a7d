package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/kyzzavilable/jaseb-bot/internal/messages"
	"github.com/kyzzavilable/jaseb-bot/types"
)

// handleBackup exports the snapshot and delivers it to the invoker.
func (bh *Handlers) handleBackup(ctx context.Context, b *bot.Bot, chatID any, actor string) {
	if _, ok := bh.requireOwner(ctx, b, chatID, actor); !ok {
		return
	}
	path, err := bh.store.Export(bh.cfg.BackupDir)
	if err != nil {
		log.Error().Err(err).Msg("backup export failed")
		sendText(ctx, b, chatID, messages.BackupFailed())
		return
	}
	if err := bh.tr.SendDocumentFile(ctx, chatID, path, "data-backup.json"); err != nil {
		log.Error().Err(err).Msg("backup delivery failed")
		sendText(ctx, b, chatID, messages.BackupFailed())
	}
}

// handlePing reports host CPU, memory and bot uptime.
func (bh *Handlers) handlePing(ctx context.Context, b *bot.Bot, chatID any, actor string) {
	if _, ok := bh.requireOwner(ctx, b, chatID, actor); !ok {
		return
	}

	infos, err := cpu.InfoWithContext(ctx)
	if err != nil || len(infos) == 0 {
		log.Error().Err(err).Msg("cpu info failed")
		sendText(ctx, b, chatID, messages.PingFailed())
		return
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("memory info failed")
		sendText(ctx, b, chatID, messages.PingFailed())
		return
	}

	const gb = 1 << 30
	sendHTML(ctx, b, chatID, messages.PingInfo(
		infos[0].ModelName,
		len(infos),
		float64(vm.Available)/gb,
		float64(vm.Total)/gb,
		bh.uptime(),
	))
}

// handleCekID sends the invoker's ID card, as a photo caption when a
// profile photo exists.
func (bh *Handlers) handleCekID(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	from := msg.From
	chatID := msg.Chat.ID

	// Telegram encodes the home data center in the high bits of the ID.
	dcID := int((from.ID >> 27) & 7)
	card := messages.IDCard(
		fullName(from),
		types.ActorKey(from.ID),
		atUsername(from),
		dcID,
		time.Now().Format("02/01/2006"),
	)

	photos, err := b.GetUserProfilePhotos(ctx, &bot.GetUserProfilePhotosParams{
		UserID: from.ID,
		Limit:  1,
	})
	if err == nil && photos.TotalCount > 0 && len(photos.Photos) > 0 && len(photos.Photos[0]) > 0 {
		_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:    chatID,
			Photo:     &models.InputFileString{Data: photos.Photos[0][0].FileID},
			Caption:   card,
			ParseMode: messages.ParseModeHTML,
		})
		if err == nil {
			return
		}
	}
	sendHTML(ctx, b, chatID, card)
}
