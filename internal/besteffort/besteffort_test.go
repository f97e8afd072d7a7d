package besteffort

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttempt(t *testing.T) {
	assert.True(t, Attempt("ok", func() error { return nil }))
	assert.False(t, Attempt("fail", func() error { return errors.New("boom") }))
}
