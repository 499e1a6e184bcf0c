package testsupport

import (
	"path/filepath"
	"testing"

	"folio/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.BooksDir = filepath.Join(base, "books")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Catalog.Path = filepath.Join(base, "catalog.db")
	cfg.Manifest.ImageURLPrefix = "https://library.test/books/{book_id}-{author}"
	cfg.Manifest.DefaultWidth = 2645
	cfg.Manifest.DefaultHeight = 3933
	cfg.Watcher.SettleSeconds = 1
	cfg.Watcher.RescanIntervalSeconds = 0

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithCatalog enables the catalog store on the test config.
func WithCatalog() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Catalog.Enabled = true
	}
}

// WithAPIToken sets the daemon API bearer token.
func WithAPIToken(token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.APIToken = token
	}
}
