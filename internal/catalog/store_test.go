package catalog_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/catalog"
	"folio/internal/testsupport"
)

func newStore(t *testing.T) *catalog.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithCatalog())
	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUpsertAndGet(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	err := store.Upsert(ctx, catalog.Description{
		BookID: "42-shakespeare",
		Author: "William Shakespeare",
		Title:  "First Folio",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	desc, err := store.Get(ctx, "42-shakespeare")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if desc == nil {
		t.Fatal("expected description, got nil")
	}
	if desc.Author != "William Shakespeare" || desc.Title != "First Folio" {
		t.Errorf("unexpected fields: author=%q title=%q", desc.Author, desc.Title)
	}
	if desc.Language != catalog.DefaultLanguage {
		t.Errorf("language = %q, want %q", desc.Language, catalog.DefaultLanguage)
	}
	if desc.CreatedAt.IsZero() || desc.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	store := newStore(t)

	desc, err := store.Get(context.Background(), "no-such-book")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if desc != nil {
		t.Fatalf("expected nil for missing book, got %+v", desc)
	}
}

func TestUpsertMergesNonEmptyFields(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, catalog.Description{
		BookID: "5A1",
		Author: "Pietro Aretino",
		Title:  "Le carte parlanti",
	}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	if err := store.Upsert(ctx, catalog.Description{
		BookID:      "5A1",
		Description: "Quarto volume, legatura in pergamena.",
	}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	desc, err := store.Get(ctx, "5A1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if desc.Title != "Le carte parlanti" {
		t.Errorf("title overwritten by empty field: %q", desc.Title)
	}
	if !strings.Contains(desc.Description, "pergamena") {
		t.Errorf("description not merged: %q", desc.Description)
	}
}

func TestUpsertRequiresBookID(t *testing.T) {
	store := newStore(t)

	if err := store.Upsert(context.Background(), catalog.Description{Title: "Untitled"}); err == nil {
		t.Fatal("expected error for missing book id")
	}
}

func TestList(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for _, id := range []string{"9-vasari", "5A1", "42-shakespeare"} {
		if err := store.Upsert(ctx, catalog.Description{BookID: id}); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	descriptions, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(descriptions) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(descriptions))
	}
	for i := 1; i < len(descriptions); i++ {
		if descriptions[i-1].BookID > descriptions[i].BookID {
			t.Fatalf("rows not ordered: %q before %q", descriptions[i-1].BookID, descriptions[i].BookID)
		}
	}
}

func TestImportCSV(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	input := strings.NewReader(strings.Join([]string{
		"book_id,author,title,location",
		"5A1,Pietro Aretino,Le carte parlanti,Sala manoscritti",
		"7B2,,Anonimo veneziano,",
		",skipped,no id,",
	}, "\n"))

	imported, err := store.ImportCSV(ctx, input)
	if err != nil {
		t.Fatalf("import csv: %v", err)
	}
	if imported != 2 {
		t.Fatalf("imported = %d, want 2", imported)
	}

	desc, err := store.Get(ctx, "5A1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if desc == nil || desc.Location != "Sala manoscritti" {
		t.Errorf("unexpected row: %+v", desc)
	}
}

func TestImportCSVRequiresBookIDColumn(t *testing.T) {
	store := newStore(t)

	_, err := store.ImportCSV(context.Background(), strings.NewReader("author,title\na,b\n"))
	if err == nil || !strings.Contains(err.Error(), "book_id") {
		t.Fatalf("expected book_id column error, got %v", err)
	}
}

func TestImportDocuments(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	testsupport.WriteDocx(t, filepath.Join(dir, "Scheda descrittiva_5A01_VERIFICATA.docx"), "", "",
		"Autore: Pietro Aretino",
		"Titolo: Le carte parlanti",
		"Legatura: Pergamena floscia",
	)
	testsupport.WriteDocx(t, filepath.Join(dir, "notes.docx"), "", "", "unrelated")

	imported, err := store.ImportDocuments(ctx, dir)
	if err != nil {
		t.Fatalf("import documents: %v", err)
	}
	if imported != 1 {
		t.Fatalf("imported = %d, want 1", imported)
	}

	desc, err := store.Get(ctx, "5A1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if desc == nil {
		t.Fatal("expected row keyed by normalized number 5A1")
	}
	if desc.Author != "Pietro Aretino" || desc.Binding != "Pergamena floscia" {
		t.Errorf("unexpected fields: %+v", desc)
	}
}

func TestFindByNumber(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, catalog.Description{BookID: "5A01-aretino", Title: "Le carte parlanti"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	desc, err := store.FindByNumber(ctx, "5a1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if desc == nil || desc.Title != "Le carte parlanti" {
		t.Errorf("unexpected match: %+v", desc)
	}

	missing, err := store.FindByNumber(ctx, "99Z9")
	if err != nil {
		t.Fatalf("find missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown number, got %+v", missing)
	}
}

func TestNormalizeNumber(t *testing.T) {
	cases := map[string]string{
		"5A01":  "5A1",
		"5a1":   "5A1",
		"12B003": "12B3",
		"5A0":   "5A0",
		"odd":   "ODD",
		"":      "",
	}
	for input, want := range cases {
		if got := catalog.NormalizeNumber(input); got != want {
			t.Errorf("NormalizeNumber(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseDescriptionFileName(t *testing.T) {
	number, ok := catalog.ParseDescriptionFileName("Scheda descrittiva_5A01_VERIFICATA.docx")
	if !ok || number != "5A1" {
		t.Fatalf("parse = %q, %v", number, ok)
	}
	if _, ok := catalog.ParseDescriptionFileName("inventory.docx"); ok {
		t.Fatal("expected no match for unrelated file")
	}
}
