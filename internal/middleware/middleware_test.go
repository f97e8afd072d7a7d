package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kyzzavilable/jaseb-bot/internal/contextkeys"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		want contextkeys.Command
	}{
		{"/start", contextkeys.Command{Name: "start", Args: []string{}}},
		{"/addakses 123 3d", contextkeys.Command{Name: "addakses", Args: []string{"123", "3d"}}},
		{"/auto@JasebBot on", contextkeys.Command{Name: "auto", Args: []string{"on"}}},
		{"/SHAREMSG", contextkeys.Command{Name: "sharemsg", Args: []string{}}},
		{"   ", contextkeys.Command{}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParseCommand(tt.text)
			assert.Equal(t, tt.want.Name, got.Name)
			assert.ElementsMatch(t, tt.want.Args, got.Args)
		})
	}
}
