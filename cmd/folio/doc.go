// Command folio is the CLI for the folio book publishing pipeline: process
// book folders, inspect their state, manage the descriptive catalog, and
// talk to a running daemon.
package main
