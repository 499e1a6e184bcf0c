// Package imageset discovers and orders the page images of a book folder.
//
// Ordering is a natural sort over file names so image002 precedes image010.
// Dimensions come from image headers via image.DecodeConfig; the first
// unreadable header switches the whole book to the configured default
// geometry, matching the convention that one book's scans share geometry.
package imageset

import (
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"folio/internal/services"
	"folio/internal/textutil"
)

// Entry describes one page image in sequence order.
type Entry struct {
	SequenceIndex int
	FileName      string
	Width         int
	Height        int
}

// Options controls discovery and the dimension fallback.
type Options struct {
	// Extensions lists recognized extensions without the leading dot,
	// lowercase.
	Extensions []string
	// DefaultWidth/DefaultHeight apply to every page once any page's
	// dimensions cannot be read.
	DefaultWidth  int
	DefaultHeight int
}

// Resolve lists a folder's recognized image files in natural order with
// sequence numbers assigned from zero. An empty result yields
// services.ErrNoImages so the caller can skip the folder.
func Resolve(folder string, opts Options) ([]Entry, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, services.Wrap(services.ErrNoImages, "imageset", "read folder", folder, err)
	}

	extensions := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		extensions[ext] = struct{}{}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		if _, ok := extensions[ext]; ok {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, services.Wrap(services.ErrNoImages, "imageset", "scan", "no recognized images in "+folder, nil)
	}

	sort.Slice(names, func(i, j int) bool { return textutil.NaturalLess(names[i], names[j]) })

	images := make([]Entry, len(names))
	useDefaults := false
	for i, name := range names {
		entry := Entry{SequenceIndex: i, FileName: name}
		if !useDefaults {
			width, height, err := readDimensions(filepath.Join(folder, name))
			if err != nil {
				useDefaults = true
			} else {
				entry.Width = width
				entry.Height = height
			}
		}
		images[i] = entry
	}

	if useDefaults {
		for i := range images {
			images[i].Width = opts.DefaultWidth
			images[i].Height = opts.DefaultHeight
		}
	}
	return images, nil
}

// readDimensions decodes only the image header.
func readDimensions(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
