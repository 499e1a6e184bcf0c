package metadata

import "strings"

// FieldMap maps descriptive-document labels to catalog column names. The
// source documents are Italian library description sheets.
var FieldMap = map[string]string{
	"Autore":            "author",
	"Autore secondario": "second_author",
	"Titolo":            "title",
	"Pubblicazione":     "publication",
	"Dimensioni":        "dimensions",
	"Collocazione":      "location",
	"Segnatura":         "signature",
	"Legatura":          "binding",
	"Lingua":            "language_info",
	"Decorazione":       "decoration",
	"Author":            "author",
	"Title":             "title",
}

// ExtractFields pulls every recognized labeled field from a descriptive
// document. A value continues across following paragraphs until the next
// recognized label. Unlabeled leading text is ignored.
func ExtractFields(docPath string) (map[string]string, error) {
	doc, err := OpenDocx(docPath)
	if err != nil {
		return nil, err
	}
	return fieldsFromParagraphs(doc.Paragraphs), nil
}

func fieldsFromParagraphs(paragraphs []string) map[string]string {
	fields := map[string]string{}
	var current string
	var value strings.Builder

	flush := func() {
		if current == "" {
			return
		}
		if text := collapseSpaces(value.String()); text != "" {
			fields[current] = text
		}
		current = ""
		value.Reset()
	}

	for _, paragraph := range paragraphs {
		for _, line := range strings.Split(paragraph, "\n") {
			if column, rest, ok := matchLabel(line); ok {
				flush()
				current = column
				value.WriteString(rest)
				continue
			}
			if current != "" {
				value.WriteByte(' ')
				value.WriteString(line)
			}
		}
	}
	flush()
	return fields
}

func matchLabel(line string) (column, rest string, ok bool) {
	for label, col := range FieldMap {
		if r, matched := cutLabel(line, label); matched {
			return col, r, true
		}
	}
	return "", "", false
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
