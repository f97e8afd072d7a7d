// Package besteffort makes the swallow-and-count delivery policy explicit:
// notifications and per-recipient fanout sends are attempted once, logged on
// failure, and never propagate an error to the surrounding flow.
package besteffort

import "github.com/rs/zerolog/log"

// Attempt runs fn and reports whether it returned nil. A failure is logged
// under the given label and otherwise swallowed.
func Attempt(label string, fn func() error) bool {
	if err := fn(); err != nil {
		log.Debug().Err(err).Str("op", label).Msg("best-effort call failed")
		return false
	}
	return true
}
