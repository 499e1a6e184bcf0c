// Package config loads and validates folio's TOML configuration.
//
// Configuration is read once at process start from an explicit path, from
// ~/.config/folio/config.toml, or from a project-local folio.toml, in that
// order. Missing files yield defaults. The loaded Config is passed by
// reference into every component; nothing is hot-reloaded.
package config
