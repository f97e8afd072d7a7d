// Package relay pairs a user chat with an owner chat so the two sides can
// exchange messages through the bot. Sessions are process local and do not
// survive a restart.
package relay

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kyzzavilable/jaseb-bot/internal/messages"
	"github.com/kyzzavilable/jaseb-bot/types"
)

var (
	ErrNoSession     = errors.New("no active relay session")
	ErrAlreadyActive = errors.New("relay session already active")
)

type Relay struct {
	tr types.Transport

	mu       sync.Mutex
	sessions map[string]string // user ID -> owner ID
}

func New(tr types.Transport) *Relay {
	return &Relay{tr: tr, sessions: make(map[string]string)}
}

// Start opens a session from user to owner and notifies the owner side.
// A user holds at most one session at a time.
func (r *Relay) Start(ctx context.Context, userID, userName, ownerID string) error {
	r.mu.Lock()
	if _, ok := r.sessions[userID]; ok {
		r.mu.Unlock()
		return ErrAlreadyActive
	}
	r.sessions[userID] = ownerID
	r.mu.Unlock()

	if err := r.tr.SendHTML(ctx, ownerID, messages.SessionOpenedOwnerSide(userID, userName)); err != nil {
		return err
	}
	log.Info().Str("user", userID).Str("owner", ownerID).Msg("relay session opened")
	return nil
}

// End closes the user's session and notifies the owner side. Ending a
// session that does not exist is a no-op reporting false.
func (r *Relay) End(ctx context.Context, userID, userName string) bool {
	r.mu.Lock()
	ownerID, ok := r.sessions[userID]
	if ok {
		delete(r.sessions, userID)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}

	_ = r.tr.SendHTML(ctx, ownerID, messages.SessionClosedOwnerSide(userID, userName))
	log.Info().Str("user", userID).Str("owner", ownerID).Msg("relay session closed")
	return true
}

// Active reports whether the user has an open session.
func (r *Relay) Active(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[userID]
	return ok
}

// Counterpart returns the owner bound to the user's session.
func (r *Relay) Counterpart(userID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ownerID, ok := r.sessions[userID]
	return ownerID, ok
}

// userFor finds the session whose owner side is ownerID.
func (r *Relay) userFor(ownerID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for user, owner := range r.sessions {
		if owner == ownerID {
			return user, true
		}
	}
	return "", false
}

// ForwardInbound relays a user message to the session owner by forwarding
// the original message, then acknowledges to the user.
func (r *Relay) ForwardInbound(ctx context.Context, userID string, messageID int) error {
	ownerID, ok := r.Counterpart(userID)
	if !ok {
		return ErrNoSession
	}
	if err := r.tr.ForwardMessage(ctx, ownerID, userID, messageID); err != nil {
		return err
	}
	return r.tr.SendMessage(ctx, userID, messages.SessionInboundAck())
}

// SendFromOwner relays an owner reply to userID by payload content. The
// caller resolves which user the reply targets (via the forward origin);
// when userID is empty the owner's single open session is used.
func (r *Relay) SendFromOwner(ctx context.Context, ownerID, userID string, p *types.Payload) error {
	if userID == "" {
		u, ok := r.userFor(ownerID)
		if !ok {
			return ErrNoSession
		}
		userID = u
	}

	var err error
	switch {
	case p == nil:
		return ErrNoSession
	case p.Kind == types.PayloadText:
		err = r.tr.SendMessage(ctx, userID, p.Text)
	case p.Kind == types.PayloadPhoto:
		err = r.tr.SendPhoto(ctx, userID, p.FileID, p.Caption)
	case p.Kind == types.PayloadVoice:
		err = r.tr.SendVoice(ctx, userID, p.FileID, p.Caption)
	case p.Kind == types.PayloadDocument:
		err = r.tr.SendDocument(ctx, userID, p.FileID, p.Caption)
	case p.Kind == types.PayloadVideo:
		err = r.tr.SendVideo(ctx, userID, p.FileID, p.Caption)
	default:
		err = r.tr.SendMessage(ctx, userID, p.Text)
	}
	if err != nil {
		return err
	}
	return r.tr.SendMessage(ctx, ownerID, messages.SessionOutboundAck())
}
