package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"folio/internal/metadata"
)

// ImportCSV loads description rows from a spreadsheet export. The first
// record is a header row; a book_id column is required and the remaining
// headers are matched against catalog column names. Unknown columns are
// ignored. Returns the number of rows upserted.
func (s *Store) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	ctx = ensureContext(ctx)
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return 0, fmt.Errorf("import csv: empty input")
	}
	if err != nil {
		return 0, fmt.Errorf("import csv: read header: %w", err)
	}

	idColumn := -1
	for i, name := range header {
		header[i] = normalizeHeader(name)
		if header[i] == "book_id" {
			idColumn = i
		}
	}
	if idColumn < 0 {
		return 0, fmt.Errorf("import csv: no book_id column in header")
	}

	imported := 0
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("import csv: read record: %w", err)
		}
		line++
		if idColumn >= len(record) || strings.TrimSpace(record[idColumn]) == "" {
			continue
		}

		desc := Description{
			BookID:   strings.TrimSpace(record[idColumn]),
			Language: DefaultLanguage,
		}
		for i, value := range record {
			if i == idColumn || i >= len(header) {
				continue
			}
			desc.SetField(header[i], strings.TrimSpace(value))
		}
		if err := s.Upsert(ctx, desc); err != nil {
			return imported, fmt.Errorf("import csv: line %d: %w", line, err)
		}
		imported++
	}
	return imported, nil
}

// ImportDocuments scans a directory for verified description sheets
// ("Scheda descrittiva_<number>_VERIFICATA.docx"), extracts their labeled
// fields, and upserts one row per sheet keyed by the normalized book number.
// Sheets that fail to parse are skipped; the error from the last failure is
// returned alongside the count so a partial import still lands.
func (s *Store) ImportDocuments(ctx context.Context, dir string) (int, error) {
	ctx = ensureContext(ctx)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("import documents: %w", err)
	}

	imported := 0
	var lastErr error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") || !strings.EqualFold(filepath.Ext(name), ".docx") {
			continue
		}
		number, ok := ParseDescriptionFileName(name)
		if !ok {
			continue
		}

		fields, err := metadata.ExtractFields(filepath.Join(dir, name))
		if err != nil {
			lastErr = fmt.Errorf("import documents: %s: %w", name, err)
			continue
		}

		desc := Description{BookID: number, Language: DefaultLanguage}
		for column, value := range fields {
			desc.SetField(column, value)
		}
		if err := s.Upsert(ctx, desc); err != nil {
			return imported, fmt.Errorf("import documents: %s: %w", name, err)
		}
		imported++
	}
	return imported, lastErr
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "id" || name == "book" || name == "number" {
		return "book_id"
	}
	return name
}
