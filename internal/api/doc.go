// Package api defines the wire types of the daemon's control API and the
// HTTP client the CLI uses to reach it.
package api
