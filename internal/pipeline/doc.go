// Package pipeline orchestrates book processing: document metadata
// extraction, page image resolution, IIIF manifest construction, and viewer
// stub generation, finishing with an atomic write of both outputs into the
// book folder. A folder that already holds both outputs is skipped without
// further inspection, which makes reprocessing sweeps idempotent.
package pipeline
