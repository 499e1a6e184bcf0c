package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const descriptionColumns = `book_id, language, author, second_author, title, publication,
	dimensions, location, signature, binding, language_info, decoration, description,
	created_at, updated_at`

// Get returns the description row for a book in the default language, or nil
// when the catalog has none. Callers fall back to document-derived metadata
// on nil.
func (s *Store) Get(ctx context.Context, bookID string) (*Description, error) {
	return s.GetLanguage(ctx, bookID, DefaultLanguage)
}

// GetLanguage returns the description row for a book in a specific language.
func (s *Store) GetLanguage(ctx context.Context, bookID, language string) (*Description, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+descriptionColumns+" FROM book_descriptions WHERE book_id = ? AND language = ?",
		bookID, language)

	desc, err := scanDescription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get description %s/%s: %w", bookID, language, err)
	}
	return desc, nil
}

// List returns all description rows ordered by book id.
func (s *Store) List(ctx context.Context) ([]*Description, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+descriptionColumns+" FROM book_descriptions ORDER BY book_id, language")
	if err != nil {
		return nil, fmt.Errorf("list descriptions: %w", err)
	}
	defer rows.Close()

	var out []*Description
	for rows.Next() {
		desc, err := scanDescription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan description: %w", err)
		}
		out = append(out, desc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate descriptions: %w", err)
	}
	return out, nil
}

// Upsert inserts a description row or merges it into an existing one.
// Merging only overwrites columns for which the incoming row has a non-empty
// value, so partial sources (spreadsheet rows, description sheets) compose.
func (s *Store) Upsert(ctx context.Context, desc Description) error {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(desc.BookID) == "" {
		return errors.New("upsert description: book_id is required")
	}
	if strings.TrimSpace(desc.Language) == "" {
		desc.Language = DefaultLanguage
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	existing, err := s.GetLanguage(ctx, desc.BookID, desc.Language)
	if err != nil {
		return err
	}

	if existing == nil {
		columns := []string{"book_id", "language"}
		placeholders := []string{"?", "?"}
		args := []any{desc.BookID, desc.Language}
		for _, pair := range desc.fieldPairs() {
			columns = append(columns, pair.column)
			placeholders = append(placeholders, "?")
			args = append(args, nullableString(*pair.value))
		}
		columns = append(columns, "created_at", "updated_at")
		placeholders = append(placeholders, "?", "?")
		args = append(args, now, now)

		query := fmt.Sprintf("INSERT INTO book_descriptions (%s) VALUES (%s)",
			strings.Join(columns, ", "), strings.Join(placeholders, ", "))
		if _, err := s.execWithRetry(ctx, query, args...); err != nil {
			return fmt.Errorf("insert description %s: %w", desc.BookID, err)
		}
		return nil
	}

	setClauses := []string{"updated_at = ?"}
	args := []any{now}
	for _, pair := range desc.fieldPairs() {
		if strings.TrimSpace(*pair.value) == "" {
			continue
		}
		setClauses = append(setClauses, pair.column+" = ?")
		args = append(args, *pair.value)
	}
	args = append(args, desc.BookID, desc.Language)

	query := fmt.Sprintf("UPDATE book_descriptions SET %s WHERE book_id = ? AND language = ?",
		strings.Join(setClauses, ", "))
	if _, err := s.execWithRetry(ctx, query, args...); err != nil {
		return fmt.Errorf("update description %s: %w", desc.BookID, err)
	}
	return nil
}

// FindByNumber locates the description whose book id matches a normalized
// shelf number, either exactly or as the id's leading segment ("5A1" matches
// "5A01-aretino").
func (s *Store) FindByNumber(ctx context.Context, number string) (*Description, error) {
	normalized := NormalizeNumber(number)
	if normalized == "" {
		return nil, nil
	}

	descriptions, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, desc := range descriptions {
		id := desc.BookID
		if idx := strings.IndexByte(id, '-'); idx > 0 {
			id = id[:idx]
		}
		if NormalizeNumber(id) == normalized {
			return desc, nil
		}
	}
	return nil, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDescription(row rowScanner) (*Description, error) {
	var desc Description
	var fields [11]sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&desc.BookID, &desc.Language,
		&fields[0], &fields[1], &fields[2], &fields[3], &fields[4], &fields[5],
		&fields[6], &fields[7], &fields[8], &fields[9], &fields[10],
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	for i, pair := range desc.fieldPairs() {
		*pair.value = fields[i].String
	}
	desc.CreatedAt = parseTimestamp(createdAt)
	desc.UpdatedAt = parseTimestamp(updatedAt)
	return &desc, nil
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
