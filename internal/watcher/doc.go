// Package watcher turns filesystem activity under the books directory into
// pipeline runs. Each book folder gets a settle timer that resets on every
// event inside it; the pipeline only sees folders that have stopped
// changing. Because the pipeline skips folders that already hold outputs,
// duplicate triggers from the safety-net rescan are harmless.
package watcher
