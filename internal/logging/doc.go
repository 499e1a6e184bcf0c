// Package logging builds slog loggers with the repository's two output
// formats: a compact console format for interactive use and JSON for
// ingestion. Components tag their loggers via WithComponent so console lines
// read "TIME LEVEL component: message k=v".
package logging
