// Package metadata extracts bibliographic metadata from the Word document
// that accompanies each book folder.
//
// Extraction runs an ordered chain of strategies per field: structured core
// properties first (dc:creator, dc:title), then labeled lines in the body
// text ("Author: ...", "Autore: ..."). The first non-empty value wins.
// Absent fields are normal; only a missing or unreadable document is an
// error, and that error marks the folder as skippable.
package metadata
