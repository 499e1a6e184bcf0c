package metadata_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"folio/internal/metadata"
	"folio/internal/services"
	"folio/internal/testsupport"
)

func TestExtractPrefersCoreProperties(t *testing.T) {
	folder := t.TempDir()
	testsupport.WriteDocx(t, filepath.Join(folder, "metadata.docx"),
		"Ludovico Ariosto", "Orlando Furioso",
		"Author: Someone Else")

	meta, err := metadata.Extract(folder)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.Author != "Ludovico Ariosto" {
		t.Fatalf("author = %q, want core property value", meta.Author)
	}
	if meta.Title != "Orlando Furioso" {
		t.Fatalf("title = %q", meta.Title)
	}
}

func TestExtractFallsBackToLabeledLine(t *testing.T) {
	folder := t.TempDir()
	testsupport.WriteDocx(t, filepath.Join(folder, "metadata.docx"), "", "",
		"Some introduction paragraph",
		"Author: William Shakespeare",
		"Titolo: Sonetti")

	meta, err := metadata.Extract(folder)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.Author != "William Shakespeare" {
		t.Fatalf("author = %q", meta.Author)
	}
	if meta.Title != "Sonetti" {
		t.Fatalf("title = %q", meta.Title)
	}
}

func TestExtractMissingFieldsIsNotAnError(t *testing.T) {
	folder := t.TempDir()
	testsupport.WriteDocx(t, filepath.Join(folder, "metadata.docx"), "", "",
		"No recognizable labels here")

	meta, err := metadata.Extract(folder)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.Author != "" || meta.Title != "" {
		t.Fatalf("expected empty fields, got %+v", meta)
	}
	if meta.ID != filepath.Base(folder) {
		t.Fatalf("id = %q, want folder name", meta.ID)
	}
}

func TestExtractNoDocumentSignalsUnavailable(t *testing.T) {
	folder := t.TempDir()
	_, err := metadata.Extract(folder)
	if !errors.Is(err, services.ErrMetadataUnavailable) {
		t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
	}
}

func TestExtractCorruptDocumentSignalsUnavailable(t *testing.T) {
	folder := t.TempDir()
	if err := os.WriteFile(filepath.Join(folder, "metadata.docx"), []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := metadata.Extract(folder)
	if !errors.Is(err, services.ErrMetadataUnavailable) {
		t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
	}
}

func TestExtractIgnoresLockFiles(t *testing.T) {
	folder := t.TempDir()
	if err := os.WriteFile(filepath.Join(folder, "~$metadata.docx"), []byte("lock"), 0o644); err != nil {
		t.Fatal(err)
	}
	testsupport.WriteDocx(t, filepath.Join(folder, "zmetadata.docx"), "Dante Alighieri", "")

	meta, err := metadata.Extract(folder)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.Author != "Dante Alighieri" {
		t.Fatalf("author = %q", meta.Author)
	}
}

func TestExtractFields(t *testing.T) {
	folder := t.TempDir()
	path := filepath.Join(folder, "Scheda descrittiva_5A01_VERIFICATA.docx")
	testsupport.WriteDocx(t, path, "", "",
		"Autore: Pietro Aretino",
		"Titolo: Lettere",
		"continued on a second line",
		"Pubblicazione: Venezia, 1538",
		"Note varie senza etichetta")

	fields, err := metadata.ExtractFields(path)
	if err != nil {
		t.Fatalf("ExtractFields: %v", err)
	}
	if fields["author"] != "Pietro Aretino" {
		t.Fatalf("author = %q", fields["author"])
	}
	if fields["title"] != "Lettere continued on a second line" {
		t.Fatalf("title = %q", fields["title"])
	}
	if fields["publication"] != "Venezia, 1538 Note varie senza etichetta" {
		t.Fatalf("publication = %q", fields["publication"])
	}
}

func TestExtractFieldsSecondaryAuthorNotShadowed(t *testing.T) {
	folder := t.TempDir()
	path := filepath.Join(folder, "desc.docx")
	testsupport.WriteDocx(t, path, "", "",
		"Autore: Primary",
		"Autore secondario: Secondary")

	fields, err := metadata.ExtractFields(path)
	if err != nil {
		t.Fatalf("ExtractFields: %v", err)
	}
	if fields["author"] != "Primary" {
		t.Fatalf("author = %q", fields["author"])
	}
	if fields["second_author"] != "Secondary" {
		t.Fatalf("second_author = %q", fields["second_author"])
	}
}
