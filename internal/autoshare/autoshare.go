// Package autoshare periodically re-sends a stored payload to every
// registered group on behalf of each enabled owner. Scheduler state is
// process local; stored payloads live in the snapshot only through the
// owner's explicit /setpesan.
package autoshare

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kyzzavilable/jaseb-bot/internal/fanout"
	"github.com/kyzzavilable/jaseb-bot/types"
)

var ErrNoPayload = errors.New("no payload set")

const (
	scanInterval = 10 * time.Second
	sendDelay    = 300 * time.Millisecond
)

type entry struct {
	active   bool
	payload  *types.Payload
	lastSent int64
}

type Scheduler struct {
	store types.StateStore
	disp  *fanout.Dispatcher
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]*entry // owner ID -> state
}

func NewScheduler(store types.StateStore, disp *fanout.Dispatcher) *Scheduler {
	return &Scheduler{
		store:   store,
		disp:    disp,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// SetPayload stores the payload to repeat and disables any running cycle so
// a new payload never goes out mid-interval.
func (s *Scheduler) SetPayload(ownerID string, p *types.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[ownerID] = &entry{payload: p}
}

// Enable starts the cycle for ownerID. The first send happens after one
// full cooldown window, not immediately.
func (s *Scheduler) Enable(ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[ownerID]
	if !ok || e.payload == nil {
		return ErrNoPayload
	}
	e.active = true
	e.lastSent = s.now().Unix()
	return nil
}

// Disable stops the cycle but keeps the stored payload.
func (s *Scheduler) Disable(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[ownerID]; ok {
		e.active = false
	}
}

func (s *Scheduler) Active(ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[ownerID]
	return ok && e.active
}

// HasPayload reports whether ownerID has stored a payload.
func (s *Scheduler) HasPayload(ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[ownerID]
	return ok && e.payload != nil
}

// Run scans every 10 seconds for owners whose cooldown window has elapsed.
func (s *Scheduler) Run(ctx context.Context) {
	t := time.NewTicker(scanInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.scanOnce(ctx)
		}
	}
}

func (s *Scheduler) scanOnce(ctx context.Context) {
	st, err := s.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("autoshare scan load failed")
		return
	}
	window := int64(st.CooldownMinutes()) * 60
	recipients := st.GroupRecipients()
	now := s.now().Unix()

	type job struct {
		owner   string
		payload *types.Payload
	}
	var due []job
	s.mu.Lock()
	for owner, e := range s.entries {
		if !e.active || e.payload == nil {
			continue
		}
		if now-e.lastSent < window {
			continue
		}
		// Stamped before dispatch so a slow batch cannot double-fire.
		e.lastSent = now
		due = append(due, job{owner: owner, payload: e.payload})
	}
	s.mu.Unlock()

	for _, j := range due {
		if len(recipients) == 0 {
			log.Warn().Str("owner", j.owner).Msg("autoshare skipped, no groups registered")
			continue
		}
		res := s.disp.Dispatch(ctx, fanout.Request{
			Recipients: recipients,
			Payload:    j.payload,
			Mode:       fanout.ModeResend,
			Delay:      sendDelay,
		})
		log.Info().
			Str("owner", j.owner).
			Str("batch", res.BatchID).
			Int("succeeded", res.Succeeded).
			Int("failed", res.Failed).
			Msg("autoshare cycle finished")
	}
}
