package attrs

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractString(t *testing.T) {
	args := []any{
		"subject", "@ana",
		"count", 3,
		slog.String("kind", "handle"),
		"reason", errors.New("contact already exists"),
		"elapsed", 2 * time.Second,
	}

	tests := []struct {
		key  string
		want string
	}{
		{"subject", "@ana"},
		{"kind", "handle"},
		{"reason", "contact already exists"},
		{"elapsed", "2s"},
		{"count", ""},
		{"missing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractString(args, tt.key))
		})
	}
}

func TestExtractString_DanglingKey(t *testing.T) {
	assert.Empty(t, ExtractString([]any{"subject"}, "subject"))
	assert.Empty(t, ExtractString(nil, "subject"))
}
