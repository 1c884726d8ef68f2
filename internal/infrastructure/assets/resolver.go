// Package assets resolves ingredient display names to image URLs.
package assets

import (
	"os"
	"strings"

	"github.com/dishcart/assistant/internal/infrastructure/config"
	"github.com/dishcart/assistant/internal/ports/outbound"
	"go.uber.org/zap"
)

// Resolver maps ingredient names to static image assets. The lookup key
// is the lowercased name with whitespace removed plus a ".jpg" suffix;
// a miss falls back to the placeholder.
type Resolver struct {
	baseURL     string
	placeholder string
	known       map[string]struct{}
}

// NewResolver builds a resolver from configuration. Known assets come
// from the configured list plus, when a directory is configured, the
// files actually present in it.
func NewResolver(cfg *config.Config, logger *zap.Logger) outbound.ImageResolver {
	known := make(map[string]struct{}, len(cfg.Assets.Known))
	for _, name := range cfg.Assets.Known {
		known[name] = struct{}{}
	}

	if cfg.Assets.Dir != "" {
		entries, err := os.ReadDir(cfg.Assets.Dir)
		if err != nil {
			logger.Warn("Failed to scan asset directory",
				zap.String("dir", cfg.Assets.Dir),
				zap.Error(err),
			)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				known[entry.Name()] = struct{}{}
			}
		}
	}

	return &Resolver{
		baseURL:     strings.TrimRight(cfg.Assets.BaseURL, "/"),
		placeholder: cfg.Assets.Placeholder,
		known:       known,
	}
}

// Resolve returns the image URL for an ingredient name.
func (r *Resolver) Resolve(name string) string {
	if name == "" {
		return r.placeholder
	}

	file := Key(name)
	if _, ok := r.known[file]; !ok {
		return r.placeholder
	}
	return r.baseURL + "/" + file
}

// Key derives the asset file name for an ingredient display name.
func Key(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "")) + ".jpg"
}
