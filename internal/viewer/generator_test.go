package viewer

import (
	"bytes"
	"strings"
	"testing"

	"folio/internal/metadata"
)

func TestGenerateEmbedsReferences(t *testing.T) {
	meta := metadata.BookMetadata{ID: "42-shakespeare", Author: "William Shakespeare"}
	out, err := Generate(meta, "https://library.test/books/42-shakespeare-william-shakespeare/manifest.json")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	text := string(out)
	for _, want := range []string{
		"mirador-viewer-42-shakespeare-william-shakespeare",
		"loadedManifest: 'https://library.test/books/42-shakespeare-william-shakespeare/manifest.json'",
		"William Shakespeare",
		"export default BookViewer;",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestGenerateMissingAuthorUsesFallback(t *testing.T) {
	meta := metadata.BookMetadata{ID: "7-unknown"}
	out, err := Generate(meta, "https://library.test/books/7-unknown-unknown/manifest.json")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(string(out), "mirador-viewer-7-unknown-unknown") {
		t.Fatalf("expected placeholder slug:\n%s", out)
	}
	if !strings.Contains(string(out), "Unknown Author") {
		t.Fatalf("expected author fallback:\n%s", out)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	meta := metadata.BookMetadata{ID: "b1", Author: "A"}
	first, err := Generate(meta, "https://x/manifest.json")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Generate(meta, "https://x/manifest.json")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("identical inputs produced different stubs")
	}
}
