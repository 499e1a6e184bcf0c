package catalog

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultLanguage is the language code assumed for description rows that do
// not specify one.
const DefaultLanguage = "it"

// Description is one descriptive-metadata row keyed by book id and language.
type Description struct {
	BookID       string
	Language     string
	Author       string
	SecondAuthor string
	Title        string
	Publication  string
	Dimensions   string
	Location     string
	Signature    string
	Binding      string
	LanguageInfo string
	Decoration   string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// fieldColumns maps Description fields to their columns in declaration
// order, used by upserts and the CSV importer. Keep in sync with schema.sql.
type fieldPair struct {
	column string
	value  *string
}

func (d *Description) fieldPairs() []fieldPair {
	return []fieldPair{
		{"author", &d.Author},
		{"second_author", &d.SecondAuthor},
		{"title", &d.Title},
		{"publication", &d.Publication},
		{"dimensions", &d.Dimensions},
		{"location", &d.Location},
		{"signature", &d.Signature},
		{"binding", &d.Binding},
		{"language_info", &d.LanguageInfo},
		{"decoration", &d.Decoration},
		{"description", &d.Description},
	}
}

// SetField assigns a value to the Description field backing the given
// column. Unknown columns are ignored and reported false.
func (d *Description) SetField(column, value string) bool {
	for _, pair := range d.fieldPairs() {
		if pair.column == column {
			*pair.value = value
			return true
		}
	}
	return false
}

var bookNumberPattern = regexp.MustCompile(`^(\d+)([A-Z]+)(\d+)$`)

// NormalizeNumber canonicalizes shelf numbers so 5A01 and 5A1 compare equal:
// uppercase, leading zeros stripped from the trailing numeric part.
func NormalizeNumber(number string) string {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return ""
	}
	match := bookNumberPattern.FindStringSubmatch(number)
	if match == nil {
		return number
	}
	value, err := strconv.Atoi(match[3])
	if err != nil {
		return number
	}
	return match[1] + match[2] + strconv.Itoa(value)
}

var descriptionFilePattern = regexp.MustCompile(`Scheda descrittiva_([A-Za-z0-9()]+)_VERIFICATA`)

// ParseDescriptionFileName extracts the normalized book number from a
// description sheet file name like "Scheda descrittiva_5A01_VERIFICATA.docx".
func ParseDescriptionFileName(name string) (string, bool) {
	match := descriptionFilePattern.FindStringSubmatch(name)
	if match == nil {
		return "", false
	}
	return NormalizeNumber(match[1]), true
}
