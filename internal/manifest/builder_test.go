package manifest

import (
	"bytes"
	"strings"
	"testing"

	"folio/internal/imageset"
	"folio/internal/metadata"
)

const testTemplate = "https://library.test/books/{book_id}-{author}"

func testImages() []imageset.Entry {
	return []imageset.Entry{
		{SequenceIndex: 0, FileName: "image001.jpg", Width: 2645, Height: 3933},
		{SequenceIndex: 1, FileName: "image002.jpg", Width: 2645, Height: 3933},
		{SequenceIndex: 2, FileName: "image003.jpg", Width: 2645, Height: 3933},
	}
}

func TestBuildShape(t *testing.T) {
	meta := metadata.BookMetadata{ID: "42-shakespeare", Author: "William Shakespeare"}
	doc := Build(meta, testImages(), Options{URLPrefixTemplate: testTemplate})

	if doc.Context != "http://iiif.io/api/presentation/2/context.json" {
		t.Fatalf("context = %q", doc.Context)
	}
	wantPrefix := "https://library.test/books/42-shakespeare-william-shakespeare"
	if doc.ID != wantPrefix+"/manifest.json" {
		t.Fatalf("manifest id = %q", doc.ID)
	}
	if len(doc.Sequences) != 1 {
		t.Fatalf("sequences = %d", len(doc.Sequences))
	}
	canvases := doc.Sequences[0].Canvases
	if len(canvases) != 3 {
		t.Fatalf("canvas count = %d, want one per image", len(canvases))
	}
	for i, canvas := range canvases {
		if canvas.Width != 2645 || canvas.Height != 3933 {
			t.Fatalf("canvas %d geometry = %dx%d", i, canvas.Width, canvas.Height)
		}
		resource := canvas.Images[0].Resource
		if !strings.HasPrefix(resource.ID, wantPrefix+"/image") {
			t.Fatalf("resource url = %q", resource.ID)
		}
		if resource.Format != "image/jpeg" {
			t.Fatalf("resource format = %q", resource.Format)
		}
		if canvas.Images[0].On != canvas.ID {
			t.Fatalf("annotation on = %q, canvas id = %q", canvas.Images[0].On, canvas.ID)
		}
	}
	// Canvas order mirrors image order.
	if canvases[0].Images[0].Resource.ID != wantPrefix+"/image001.jpg" {
		t.Fatalf("first canvas image = %q", canvases[0].Images[0].Resource.ID)
	}
}

func TestLabelFallback(t *testing.T) {
	cases := []struct {
		name string
		meta metadata.BookMetadata
		want string
	}{
		{"title wins", metadata.BookMetadata{ID: "b1", Title: "T", Author: "A"}, "T"},
		{"author next", metadata.BookMetadata{ID: "b1", Author: "A"}, "A"},
		{"id last", metadata.BookMetadata{ID: "b1"}, "b1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Label(tc.meta); got != tc.want {
				t.Fatalf("Label = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestImageURLPrefixMissingAuthor(t *testing.T) {
	meta := metadata.BookMetadata{ID: "7-unknown"}
	got := ImageURLPrefix(testTemplate, meta)
	if got != "https://library.test/books/7-unknown-unknown" {
		t.Fatalf("prefix = %q", got)
	}
}

func TestImageURLPrefixSlugifiesAuthor(t *testing.T) {
	meta := metadata.BookMetadata{ID: "12", Author: "Niccolò  Machiavelli"}
	got := ImageURLPrefix(testTemplate, meta)
	if !strings.HasSuffix(got, "12-niccolo-machiavelli") {
		t.Fatalf("prefix = %q", got)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	meta := metadata.BookMetadata{ID: "42-shakespeare", Author: "William Shakespeare"}
	doc := Build(meta, testImages(), Options{URLPrefixTemplate: testTemplate})

	first, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := Encode(Build(meta, testImages(), Options{URLPrefixTemplate: testTemplate}))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("identical inputs produced different manifests")
	}
}

func TestPageLabel(t *testing.T) {
	cases := []struct {
		entry imageset.Entry
		want  string
	}{
		{imageset.Entry{SequenceIndex: 0, FileName: "5A01_001r.jpg"}, "001r"},
		{imageset.Entry{SequenceIndex: 4, FileName: "page5.png"}, "page5"},
		{imageset.Entry{SequenceIndex: 2, FileName: "_.jpg"}, "p. 3"},
	}
	for _, tc := range cases {
		if got := pageLabel(tc.entry); got != tc.want {
			t.Errorf("pageLabel(%q) = %q, want %q", tc.entry.FileName, got, tc.want)
		}
	}
}

func TestBuildAddsAuthorMetadata(t *testing.T) {
	doc := Build(metadata.BookMetadata{ID: "b", Author: "A"}, testImages(), Options{URLPrefixTemplate: testTemplate})
	if len(doc.Metadata) != 1 || doc.Metadata[0].Value != "A" {
		t.Fatalf("metadata = %v", doc.Metadata)
	}
	doc = Build(metadata.BookMetadata{ID: "b"}, testImages(), Options{URLPrefixTemplate: testTemplate})
	if len(doc.Metadata) != 0 {
		t.Fatalf("expected no metadata entries, got %v", doc.Metadata)
	}
}
