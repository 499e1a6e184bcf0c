package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"folio/internal/catalog"
	"folio/internal/config"
	"folio/internal/logging"
	"folio/internal/pipeline"
	"folio/internal/watcher"
)

// Daemon coordinates the folder watcher and the control API, and enforces
// single-instance execution via a lock file.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	processor *pipeline.Processor
	watcher   *watcher.Watcher
	catalog   *catalog.Store
	api       *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	BooksDir     string
	CatalogPath  string
	LockFilePath string
	Watching     bool
}

// New constructs a daemon. The catalog store may be nil when the catalog is
// disabled.
func New(cfg *config.Config, logger *slog.Logger, store *catalog.Store) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	processor := pipeline.New(cfg, logger, store)
	lockPath := filepath.Join(cfg.Paths.LogDir, "foliod.lock")

	d := &Daemon{
		cfg:       cfg,
		logger:    logging.WithComponent(logger, "daemon"),
		processor: processor,
		watcher:   watcher.New(cfg, processor, logger),
		catalog:   store,
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}

	api, err := newAPIServer(cfg, d, logger)
	if err != nil {
		return nil, err
	}
	d.api = api
	return d, nil
}

// Start acquires the daemon lock, starts the watcher, and brings up the
// control API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if err := d.cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another folio daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.watcher.Start(d.ctx); err != nil {
		d.releaseLock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start watcher: %w", err)
	}
	if d.api != nil {
		if err := d.api.start(d.ctx); err != nil {
			d.watcher.Stop()
			d.releaseLock()
			d.cancel()
			d.ctx = nil
			d.cancel = nil
			return err
		}
	}

	d.running.Store(true)
	d.logger.Info("folio daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop halts the watcher and the API and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.api != nil {
		d.api.stop()
	}
	d.watcher.Stop()
	d.releaseLock()
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("folio daemon stopped")
}

// Close stops the daemon and releases held resources.
func (d *Daemon) Close() error {
	d.Stop()
	if d.catalog != nil {
		return d.catalog.Close()
	}
	return nil
}

// APIAddr returns the bound control API address, or empty when the API is
// disabled or not started.
func (d *Daemon) APIAddr() string {
	if d.api == nil {
		return ""
	}
	return d.api.addr()
}

// ProcessAll runs one pipeline sweep over the books directory.
func (d *Daemon) ProcessAll(ctx context.Context) (pipeline.Report, error) {
	return d.processor.ProcessAll(ctx)
}

// Status reports the daemon's runtime state.
func (d *Daemon) Status() Status {
	catalogPath := ""
	if d.catalog != nil {
		catalogPath = d.catalog.Path()
	}
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		BooksDir:     d.cfg.Paths.BooksDir,
		CatalogPath:  catalogPath,
		LockFilePath: d.lockPath,
		Watching:     d.running.Load(),
	}
}

func (d *Daemon) releaseLock() {
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
}
