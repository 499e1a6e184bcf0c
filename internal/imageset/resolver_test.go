package imageset_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"folio/internal/imageset"
	"folio/internal/services"
	"folio/internal/testsupport"
)

func defaultOptions() imageset.Options {
	return imageset.Options{
		Extensions:    []string{"jpg", "jpeg", "png"},
		DefaultWidth:  2645,
		DefaultHeight: 3933,
	}
}

func TestResolveNaturalOrder(t *testing.T) {
	folder := t.TempDir()
	for _, name := range []string{"image002.jpg", "image010.jpg", "image001.jpg"} {
		testsupport.WritePNG(t, filepath.Join(folder, name), 10, 20)
	}

	images, err := imageset.Resolve(folder, defaultOptions())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := []string{"image001.jpg", "image002.jpg", "image010.jpg"}
	if len(images) != len(want) {
		t.Fatalf("got %d images, want %d", len(images), len(want))
	}
	for i, entry := range images {
		if entry.FileName != want[i] {
			t.Fatalf("order = %v", images)
		}
		if entry.SequenceIndex != i {
			t.Fatalf("sequence index %d for position %d", entry.SequenceIndex, i)
		}
	}
}

func TestResolveReadsDimensions(t *testing.T) {
	folder := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(folder, "page1.png"), 120, 200)

	images, err := imageset.Resolve(folder, defaultOptions())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if images[0].Width != 120 || images[0].Height != 200 {
		t.Fatalf("dimensions = %dx%d", images[0].Width, images[0].Height)
	}
}

func TestResolveFallsBackPerBook(t *testing.T) {
	folder := t.TempDir()
	// First page decodable, second not: the whole book uses defaults.
	testsupport.WritePNG(t, filepath.Join(folder, "page1.png"), 120, 200)
	testsupport.WriteOpaqueImage(t, filepath.Join(folder, "page2.jpg"))

	images, err := imageset.Resolve(folder, defaultOptions())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	for _, entry := range images {
		if entry.Width != 2645 || entry.Height != 3933 {
			t.Fatalf("entry %s = %dx%d, want book-wide defaults", entry.FileName, entry.Width, entry.Height)
		}
	}
}

func TestResolveFiltersExtensionsCaseInsensitively(t *testing.T) {
	folder := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(folder, "page1.PNG"), 10, 10)
	if err := os.WriteFile(filepath.Join(folder, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(folder, "metadata.docx"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	images, err := imageset.Resolve(folder, defaultOptions())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(images) != 1 || images[0].FileName != "page1.PNG" {
		t.Fatalf("images = %v", images)
	}
}

func TestResolveEmptySignalsNoImages(t *testing.T) {
	folder := t.TempDir()
	if err := os.WriteFile(filepath.Join(folder, "metadata.docx"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := imageset.Resolve(folder, defaultOptions())
	if !errors.Is(err, services.ErrNoImages) {
		t.Fatalf("expected ErrNoImages, got %v", err)
	}
}

func TestResolveIgnoresSubdirectories(t *testing.T) {
	folder := t.TempDir()
	if err := os.MkdirAll(filepath.Join(folder, "thumbs.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}
	testsupport.WritePNG(t, filepath.Join(folder, "page1.png"), 10, 10)

	images, err := imageset.Resolve(folder, defaultOptions())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("images = %v", images)
	}
}
