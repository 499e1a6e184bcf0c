// Package catalog persists descriptive book metadata in SQLite. Rows are
// keyed by book id and language and can be populated from spreadsheet
// exports or verified description sheets; the processing pipeline consults
// the catalog to enrich manifests when a matching row exists.
package catalog
