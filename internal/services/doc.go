// Package services defines the shared error taxonomy for the processing
// pipeline. Sentinel errors distinguish skippable conditions (missing
// metadata, empty image sets) from genuine failures so the orchestrator can
// classify them without string matching.
package services
