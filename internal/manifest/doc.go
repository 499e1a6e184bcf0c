// Package manifest builds IIIF Presentation 2.x manifests from extracted
// book metadata and a resolved page image sequence. Building is a pure
// transform with no filesystem or network access.
package manifest
