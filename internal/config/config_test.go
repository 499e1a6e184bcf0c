package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/services"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Manifest.DefaultWidth != defaultImageWidth || cfg.Manifest.DefaultHeight != defaultImageHeight {
		t.Fatalf("unexpected default dimensions: %dx%d", cfg.Manifest.DefaultWidth, cfg.Manifest.DefaultHeight)
	}
	if len(cfg.Images.Extensions) == 0 {
		t.Fatal("expected default image extensions")
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	content := `
[paths]
books_dir = "` + filepath.Join(dir, "books") + `"

[manifest]
image_url_prefix = "https://example.org/c/{book_id}-{author}/"

[images]
extensions = [".JPG", "png", "png", ""]

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Manifest.ImageURLPrefix != "https://example.org/c/{book_id}-{author}" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.Manifest.ImageURLPrefix)
	}
	want := []string{"jpg", "png"}
	if len(cfg.Images.Extensions) != len(want) {
		t.Fatalf("extensions = %v, want %v", cfg.Images.Extensions, want)
	}
	for i := range want {
		if cfg.Images.Extensions[i] != want[i] {
			t.Fatalf("extensions = %v, want %v", cfg.Images.Extensions, want)
		}
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level not lowered: %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadTemplate(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	cfg.Manifest.ImageURLPrefix = "https://example.org/static"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for template without {book_id}")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestValidateRejectsRelativeURL(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	cfg.Manifest.ImageURLPrefix = "/collections/{book_id}"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for relative URL")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[manifest]") {
		t.Fatal("sample config missing manifest section")
	}
	// The sample must itself load cleanly.
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/books")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "books") {
		t.Fatalf("ExpandPath = %q", got)
	}
}
