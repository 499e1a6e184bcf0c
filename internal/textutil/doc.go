// Package textutil provides text processing utilities shared across the
// pipeline: URL slug generation, natural (numeric-aware) ordering for page
// file names, and filename sanitization.
package textutil
