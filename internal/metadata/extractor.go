package metadata

import (
	"os"
	"path/filepath"
	"strings"

	"folio/internal/services"
)

// BookMetadata is the normalized identity record for one book folder. ID is
// derived from the folder name and always present; Title and Author may be
// empty, in which case generation substitutes documented fallbacks.
type BookMetadata struct {
	ID     string
	Title  string
	Author string
}

var authorLabels = []string{"Author", "Autore"}

var titleLabels = []string{"Title", "Titolo"}

// strategy attempts to pull one field from a parsed document. Strategies run
// in order; the first non-empty value wins.
type strategy func(doc *Document) string

var authorStrategies = []strategy{
	func(doc *Document) string { return doc.Creator },
	func(doc *Document) string { return labeledValue(doc.Paragraphs, authorLabels) },
}

var titleStrategies = []strategy{
	func(doc *Document) string { return doc.Title },
	func(doc *Document) string { return labeledValue(doc.Paragraphs, titleLabels) },
}

// Extract reads the metadata document in a book folder and produces a
// BookMetadata record. A folder without a readable document yields
// services.ErrMetadataUnavailable; a document without author or title lines
// is not an error.
func Extract(folder string) (BookMetadata, error) {
	meta := BookMetadata{ID: filepath.Base(filepath.Clean(folder))}

	docPath, err := findDocx(folder)
	if err != nil {
		return meta, err
	}

	doc, err := OpenDocx(docPath)
	if err != nil {
		return meta, services.Wrap(services.ErrMetadataUnavailable, "metadata", "open document", filepath.Base(docPath), err)
	}

	meta.Author = firstValue(authorStrategies, doc)
	meta.Title = firstValue(titleStrategies, doc)
	return meta, nil
}

func findDocx(folder string) (string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return "", services.Wrap(services.ErrMetadataUnavailable, "metadata", "read folder", folder, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		// Word drops ~$ lock files next to open documents.
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), ".docx") {
			return filepath.Join(folder, name), nil
		}
	}
	return "", services.Wrap(services.ErrMetadataUnavailable, "metadata", "find document", "no .docx in "+folder, nil)
}

func firstValue(strategies []strategy, doc *Document) string {
	for _, apply := range strategies {
		if value := strings.TrimSpace(apply(doc)); value != "" {
			return value
		}
	}
	return ""
}

// labeledValue scans paragraph text for a "Label: value" line using any of
// the recognized labels.
func labeledValue(paragraphs []string, labels []string) string {
	for _, paragraph := range paragraphs {
		for _, line := range strings.Split(paragraph, "\n") {
			for _, label := range labels {
				rest, ok := cutLabel(line, label)
				if ok && rest != "" {
					return rest
				}
			}
		}
	}
	return ""
}

func cutLabel(line, label string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) <= len(label) || !strings.EqualFold(trimmed[:len(label)], label) {
		return "", false
	}
	rest := strings.TrimSpace(trimmed[len(label):])
	if !strings.HasPrefix(rest, ":") {
		return "", false
	}
	return strings.TrimSpace(rest[1:]), true
}
