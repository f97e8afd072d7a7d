// Package telegram adapts the go-telegram/bot client to the narrow
// transport surface used by the core services.
package telegram

import (
	"context"
	"os"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kyzzavilable/jaseb-bot/internal/messages"
	"github.com/kyzzavilable/jaseb-bot/types"
)

type Client struct {
	b *bot.Bot
}

func NewClient(b *bot.Bot) *Client {
	return &Client{b: b}
}

var _ types.Transport = (*Client)(nil)

func (c *Client) SendMessage(ctx context.Context, chatID any, text string) error {
	_, err := c.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

func (c *Client) SendHTML(ctx context.Context, chatID any, text string) error {
	_, err := c.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: messages.ParseModeHTML,
	})
	return err
}

func (c *Client) SendPhoto(ctx context.Context, chatID any, fileID, caption string) error {
	_, err := c.b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileString{Data: fileID},
		Caption: caption,
	})
	return err
}

func (c *Client) SendVideo(ctx context.Context, chatID any, fileID, caption string) error {
	_, err := c.b.SendVideo(ctx, &bot.SendVideoParams{
		ChatID:  chatID,
		Video:   &models.InputFileString{Data: fileID},
		Caption: caption,
	})
	return err
}

func (c *Client) SendDocument(ctx context.Context, chatID any, fileID, caption string) error {
	_, err := c.b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileString{Data: fileID},
		Caption:  caption,
	})
	return err
}

func (c *Client) SendVoice(ctx context.Context, chatID any, fileID, caption string) error {
	_, err := c.b.SendVoice(ctx, &bot.SendVoiceParams{
		ChatID:  chatID,
		Voice:   &models.InputFileString{Data: fileID},
		Caption: caption,
	})
	return err
}

func (c *Client) SendSticker(ctx context.Context, chatID any, fileID string) error {
	_, err := c.b.SendSticker(ctx, &bot.SendStickerParams{
		ChatID:  chatID,
		Sticker: &models.InputFileString{Data: fileID},
	})
	return err
}

func (c *Client) ForwardMessage(ctx context.Context, to any, from any, messageID int) error {
	_, err := c.b.ForwardMessage(ctx, &bot.ForwardMessageParams{
		ChatID:     to,
		FromChatID: from,
		MessageID:  messageID,
	})
	return err
}

// SendDocumentFile uploads a local file as a document.
func (c *Client) SendDocumentFile(ctx context.Context, chatID any, path, filename string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = c.b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: filename,
			Data:     f,
		},
	})
	return err
}

func (c *Client) GetChatMemberCount(ctx context.Context, chatID any) (int, error) {
	return c.b.GetChatMemberCount(ctx, &bot.GetChatMemberCountParams{ChatID: chatID})
}

// PayloadFromMessage distills a Telegram message into the stored payload
// form used by fanout and the relay. Returns nil for content that has no
// re-send mapping.
func PayloadFromMessage(m *models.Message) *types.Payload {
	switch {
	case m == nil:
		return nil
	case m.Text != "":
		return &types.Payload{Kind: types.PayloadText, Text: m.Text}
	case len(m.Photo) > 0:
		return &types.Payload{
			Kind:    types.PayloadPhoto,
			FileID:  m.Photo[len(m.Photo)-1].FileID,
			Caption: m.Caption,
		}
	case m.Video != nil:
		return &types.Payload{Kind: types.PayloadVideo, FileID: m.Video.FileID, Caption: m.Caption}
	case m.Document != nil:
		return &types.Payload{Kind: types.PayloadDocument, FileID: m.Document.FileID, Caption: m.Caption}
	case m.Sticker != nil:
		return &types.Payload{Kind: types.PayloadSticker, FileID: m.Sticker.FileID}
	case m.Voice != nil:
		return &types.Payload{Kind: types.PayloadVoice, FileID: m.Voice.FileID, Caption: m.Caption}
	default:
		return nil
	}
}
