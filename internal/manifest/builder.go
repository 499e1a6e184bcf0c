package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"folio/internal/imageset"
	"folio/internal/metadata"
	"folio/internal/textutil"
)

// FileName is the manifest's fixed on-disk name inside a book folder.
const FileName = "manifest.json"

// unknownAuthorSegment substitutes for the {author} placeholder when no
// author could be extracted.
const unknownAuthorSegment = "unknown"

// Options carries the builder's external configuration.
type Options struct {
	// URLPrefixTemplate is the published base URL for a book's images, with
	// {book_id} and {author} placeholders.
	URLPrefixTemplate string
}

// ImageURLPrefix expands the URL template for one book. The author is
// slugified before substitution; a missing author substitutes a placeholder
// segment rather than failing.
func ImageURLPrefix(template string, meta metadata.BookMetadata) string {
	slug := textutil.Slugify(meta.Author)
	if slug == "" {
		slug = unknownAuthorSegment
	}
	prefix := strings.ReplaceAll(template, "{book_id}", meta.ID)
	prefix = strings.ReplaceAll(prefix, "{author}", slug)
	return strings.TrimRight(prefix, "/")
}

// Build constructs the IIIF manifest for one book. Pure transform: same
// inputs always produce the same document, canvases follow the image order
// one to one.
func Build(meta metadata.BookMetadata, images []imageset.Entry, opts Options) Manifest {
	prefix := ImageURLPrefix(opts.URLPrefixTemplate, meta)

	canvases := make([]Canvas, len(images))
	for i, img := range images {
		canvases[i] = buildCanvas(prefix, img)
	}

	doc := Manifest{
		Context: contextPresentation2,
		ID:      prefix + "/" + FileName,
		Type:    typeManifest,
		Label:   Label(meta),
		Sequences: []Sequence{
			{Type: typeSequence, Canvases: canvases},
		},
	}
	if meta.Author != "" {
		doc.Metadata = append(doc.Metadata, Metadata{Label: "Author", Value: meta.Author})
	}
	return doc
}

// Label applies the display label fallback policy: title, then author, then
// the book id.
func Label(meta metadata.BookMetadata) string {
	if meta.Title != "" {
		return meta.Title
	}
	if meta.Author != "" {
		return meta.Author
	}
	return meta.ID
}

// Encode serializes a manifest deterministically.
func Encode(doc Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

func buildCanvas(prefix string, img imageset.Entry) Canvas {
	canvasID := fmt.Sprintf("%s/canvas%d", prefix, img.SequenceIndex+1)
	return Canvas{
		ID:     canvasID,
		Type:   typeCanvas,
		Label:  pageLabel(img),
		Height: img.Height,
		Width:  img.Width,
		Images: []Annotation{
			{
				Type:       typeAnnotation,
				Motivation: motivationPainting,
				Resource: Resource{
					ID:     prefix + "/" + img.FileName,
					Type:   typeImage,
					Format: formatFor(img.FileName),
					Height: img.Height,
					Width:  img.Width,
				},
				On: canvasID,
			},
		},
	}
}

// pageLabel derives a canvas label from the file name: the extension goes,
// and a leading identifier segment before the first underscore goes too
// (scan batches name files "<shelf-mark>_<page>.jpg"). Falls back to a plain
// page number.
func pageLabel(img imageset.Entry) string {
	name := strings.TrimSuffix(img.FileName, filepath.Ext(img.FileName))
	if _, rest, found := strings.Cut(name, "_"); found {
		name = rest
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Sprintf("p. %d", img.SequenceIndex+1)
	}
	return name
}

func formatFor(fileName string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "tif", "tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
