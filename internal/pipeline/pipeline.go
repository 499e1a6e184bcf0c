package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"folio/internal/catalog"
	"folio/internal/config"
	"folio/internal/fileutil"
	"folio/internal/imageset"
	"folio/internal/logging"
	"folio/internal/manifest"
	"folio/internal/metadata"
	"folio/internal/services"
	"folio/internal/viewer"
)

// Status classifies the outcome of processing one book folder.
type Status string

const (
	StatusProcessed          Status = "processed"
	StatusSkippedAlreadyDone Status = "skipped_already_done"
	StatusSkippedNoMetadata  Status = "skipped_no_metadata"
	StatusSkippedNoImages    Status = "skipped_no_images"
	StatusFailed             Status = "failed"
)

// Result describes what happened to one book folder.
type Result struct {
	BookID    string
	Folder    string
	Status    Status
	Detail    string
	PageCount int
	Err       error
}

// Processor turns settled book folders into manifest and viewer outputs. It
// is safe to call from multiple goroutines; each Process call is
// independent.
type Processor struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog *catalog.Store
}

// New constructs a Processor. The catalog store may be nil, in which case
// books are processed from their document metadata alone.
func New(cfg *config.Config, logger *slog.Logger, store *catalog.Store) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{
		cfg:     cfg,
		logger:  logging.WithComponent(logger, "pipeline"),
		catalog: store,
	}
}

// AlreadyProcessed reports whether a folder already holds both generated
// outputs. Folders that pass this check are skipped without opening any
// document.
func AlreadyProcessed(folder string) bool {
	return fileutil.Exists(filepath.Join(folder, manifest.FileName)) &&
		fileutil.Exists(filepath.Join(folder, viewer.FileName))
}

// Process runs one folder through the full pipeline: extract metadata,
// resolve the page images, build the manifest, render the viewer stub, and
// write both outputs atomically. Skips are not errors; Result.Status tells
// the caller what happened.
func (p *Processor) Process(ctx context.Context, folder string) Result {
	bookID := filepath.Base(folder)
	result := Result{BookID: bookID, Folder: folder}

	if err := ctx.Err(); err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	if AlreadyProcessed(folder) {
		result.Status = StatusSkippedAlreadyDone
		result.Detail = "manifest and viewer already present"
		p.logger.Debug("skipping processed book", logging.String("book_id", bookID))
		return result
	}

	meta, err := metadata.Extract(folder)
	if err != nil {
		if errors.Is(err, services.ErrMetadataUnavailable) {
			result.Status = StatusSkippedNoMetadata
			result.Detail = err.Error()
			p.logger.Warn("no usable metadata", logging.String("book_id", bookID), logging.Error(err))
			return result
		}
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	description := p.enrich(ctx, &meta)

	images, err := imageset.Resolve(folder, imageset.Options{
		Extensions:    p.cfg.Images.Extensions,
		DefaultWidth:  p.cfg.Manifest.DefaultWidth,
		DefaultHeight: p.cfg.Manifest.DefaultHeight,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoImages) {
			result.Status = StatusSkippedNoImages
			result.Detail = err.Error()
			p.logger.Warn("no page images", logging.String("book_id", bookID), logging.Error(err))
			return result
		}
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	doc := manifest.Build(meta, images, manifest.Options{
		URLPrefixTemplate: p.cfg.Manifest.ImageURLPrefix,
	})
	if description != "" {
		doc.Description = description
	}

	manifestData, err := manifest.Encode(doc)
	if err != nil {
		result.Status = StatusFailed
		result.Err = services.Wrap(services.ErrWrite, "pipeline", "encode", "encode manifest", err)
		return result
	}

	viewerData, err := viewer.Generate(meta, doc.ID)
	if err != nil {
		result.Status = StatusFailed
		result.Err = services.Wrap(services.ErrWrite, "pipeline", "render", "render viewer stub", err)
		return result
	}

	err = fileutil.WriteAll(
		fileutil.Output{Path: filepath.Join(folder, manifest.FileName), Data: manifestData},
		fileutil.Output{Path: filepath.Join(folder, viewer.FileName), Data: viewerData},
	)
	if err != nil {
		result.Status = StatusFailed
		result.Err = services.Wrap(services.ErrWrite, "pipeline", "write", "write outputs", err)
		return result
	}

	result.Status = StatusProcessed
	result.PageCount = len(images)
	p.logger.Info("book processed",
		logging.String("book_id", bookID),
		logging.String("author", meta.Author),
		logging.Int("pages", len(images)))
	return result
}

// enrich fills empty metadata fields from the catalog when a matching row
// exists. Catalog trouble never blocks processing; it is logged and the
// document-derived metadata stands. Returns the catalog description text for
// the manifest, if any.
func (p *Processor) enrich(ctx context.Context, meta *metadata.BookMetadata) string {
	if p.catalog == nil {
		return ""
	}

	desc, err := p.catalog.Get(ctx, meta.ID)
	if err == nil && desc == nil {
		desc, err = p.catalog.FindByNumber(ctx, meta.ID)
	}
	if err != nil {
		p.logger.Warn("catalog lookup failed", logging.String("book_id", meta.ID), logging.Error(err))
		return ""
	}
	if desc == nil {
		return ""
	}

	if meta.Title == "" {
		meta.Title = desc.Title
	}
	if meta.Author == "" {
		meta.Author = desc.Author
	}
	return desc.Description
}
