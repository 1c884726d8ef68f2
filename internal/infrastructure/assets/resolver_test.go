package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dishcart/assistant/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single word", "Onion", "onion.jpg"},
		{"two words", "Basmati Rice", "basmatirice.jpg"},
		{"mixed case and padding", "  Curry   Leaves ", "curryleaves.jpg"},
		{"already lowercase", "curd", "curd.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Key(tt.input))
		})
	}
}

func TestResolve(t *testing.T) {
	cfg := &config.Config{}
	cfg.Assets.BaseURL = "/images/"
	cfg.Assets.Placeholder = "/images/placeholder.jpg"
	cfg.Assets.Known = []string{"basmatirice.jpg", "onion.jpg"}

	resolver := NewResolver(cfg, zaptest.NewLogger(t))

	t.Run("known ingredient", func(t *testing.T) {
		assert.Equal(t, "/images/basmatirice.jpg", resolver.Resolve("Basmati Rice"))
	})

	t.Run("unknown ingredient falls back to placeholder", func(t *testing.T) {
		assert.Equal(t, "/images/placeholder.jpg", resolver.Resolve("Saffron"))
	})

	t.Run("empty name falls back to placeholder", func(t *testing.T) {
		assert.Equal(t, "/images/placeholder.jpg", resolver.Resolve(""))
	})
}

func TestResolveFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "curd.jpg"), []byte("img"), 0o644))

	cfg := &config.Config{}
	cfg.Assets.BaseURL = "/images"
	cfg.Assets.Placeholder = "/images/placeholder.jpg"
	cfg.Assets.Dir = dir

	resolver := NewResolver(cfg, zaptest.NewLogger(t))

	assert.Equal(t, "/images/curd.jpg", resolver.Resolve("Curd"))
	assert.Equal(t, "/images/placeholder.jpg", resolver.Resolve("Onion"))
}
