// Package fanout delivers one payload to many recipients with a fixed
// inter-recipient delay. Per-recipient failures are counted and never abort
// the batch; a batch never retries and always runs its recipient list to
// completion.
package fanout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kyzzavilable/jaseb-bot/internal/besteffort"
	"github.com/kyzzavilable/jaseb-bot/internal/messages"
	"github.com/kyzzavilable/jaseb-bot/types"
)

type Mode string

const (
	// ModeResend re-emits the payload content as a new message, selecting
	// the send primitive by payload tag.
	ModeResend Mode = "resend"
	// ModeForward forwards the original message verbatim, keeping the
	// platform's forward attribution.
	ModeForward Mode = "forward"
)

// Request describes one fanout batch. SourceChat and SourceMessageID are
// only used in forward mode; Payload only in resend mode. The caller is
// responsible for validating that a payload or source message exists.
type Request struct {
	Recipients      []any
	Payload         *types.Payload
	Mode            Mode
	Delay           time.Duration
	SourceChat      any
	SourceMessageID int
}

type Result struct {
	BatchID   string
	Total     int
	Succeeded int
	Failed    int
}

type Dispatcher struct {
	tr    types.Transport
	sleep func(time.Duration)
}

func NewDispatcher(tr types.Transport) *Dispatcher {
	return &Dispatcher{tr: tr, sleep: time.Sleep}
}

// Dispatch visits every recipient in order, attempting exactly one delivery
// each, and waits req.Delay after every recipient (success or failure).
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	res := Result{
		BatchID: uuid.NewString(),
		Total:   len(req.Recipients),
	}

	for _, to := range req.Recipients {
		ok := besteffort.Attempt("fanout delivery", func() error {
			if req.Mode == ModeForward {
				return d.tr.ForwardMessage(ctx, to, req.SourceChat, req.SourceMessageID)
			}
			return d.resend(ctx, to, req.Payload)
		})
		if ok {
			res.Succeeded++
		} else {
			res.Failed++
		}
		if req.Delay > 0 {
			d.sleep(req.Delay)
		}
	}

	log.Info().
		Str("batch", res.BatchID).
		Str("mode", string(req.Mode)).
		Int("total", res.Total).
		Int("succeeded", res.Succeeded).
		Int("failed", res.Failed).
		Msg("fanout finished")
	return res
}

// resend branches on the payload tag. An unsupported tag sends a fallback
// notice to the recipient instead of failing the batch.
func (d *Dispatcher) resend(ctx context.Context, to any, p *types.Payload) error {
	if p == nil {
		return d.tr.SendMessage(ctx, to, messages.UnsupportedShare())
	}
	switch p.Kind {
	case types.PayloadText:
		return d.tr.SendMessage(ctx, to, p.Text)
	case types.PayloadPhoto:
		return d.tr.SendPhoto(ctx, to, p.FileID, p.Caption)
	case types.PayloadVideo:
		return d.tr.SendVideo(ctx, to, p.FileID, p.Caption)
	case types.PayloadDocument:
		return d.tr.SendDocument(ctx, to, p.FileID, p.Caption)
	case types.PayloadSticker:
		return d.tr.SendSticker(ctx, to, p.FileID)
	default:
		return d.tr.SendMessage(ctx, to, messages.UnsupportedShare())
	}
}
