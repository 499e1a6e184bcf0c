package api

import "time"

// DaemonStatus is the wire form of the daemon's runtime state.
type DaemonStatus struct {
	Running      bool   `json:"running"`
	PID          int    `json:"pid"`
	BooksDir     string `json:"books_dir"`
	CatalogPath  string `json:"catalog_path,omitempty"`
	LockFilePath string `json:"lock_file_path"`
	Watching     bool   `json:"watching"`
}

// BookResult is the wire form of one book's processing outcome.
type BookResult struct {
	BookID    string `json:"book_id"`
	Status    string `json:"status"`
	Detail    string `json:"detail,omitempty"`
	PageCount int    `json:"page_count,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SweepReport is the wire form of one sweep over the books directory.
type SweepReport struct {
	RunID    string       `json:"run_id"`
	Started  time.Time    `json:"started"`
	Finished time.Time    `json:"finished"`
	Summary  string       `json:"summary"`
	Results  []BookResult `json:"results"`
}

// BookSummary describes one book folder and whether its outputs exist.
type BookSummary struct {
	BookID    string `json:"book_id"`
	Processed bool   `json:"processed"`
}

// BookListResponse is the payload of the book listing endpoint.
type BookListResponse struct {
	Books []BookSummary `json:"books"`
}
