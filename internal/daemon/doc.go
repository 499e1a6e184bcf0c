// Package daemon runs the long-lived folio process: the folder watcher, the
// pipeline it drives, and an HTTP control API. A lock file keeps a second
// daemon from racing the first over the same books directory.
package daemon
