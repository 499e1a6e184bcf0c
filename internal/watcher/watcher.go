package watcher

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"folio/internal/config"
	"folio/internal/logging"
	"folio/internal/pipeline"
)

// bookProcessor is the slice of the pipeline the watcher drives.
type bookProcessor interface {
	Process(ctx context.Context, folder string) pipeline.Result
	ProcessAll(ctx context.Context) (pipeline.Report, error)
}

// Watcher reacts to filesystem activity under the books directory. A folder
// is handed to the pipeline only after it has been quiet for the configured
// settle window, so partially uploaded books are never processed. A periodic
// full rescan catches folders whose events were missed.
type Watcher struct {
	cfg       *config.Config
	logger    *slog.Logger
	processor bookProcessor

	settle time.Duration
	rescan time.Duration

	mu      sync.Mutex
	running bool
	timers  map[string]*time.Timer

	fs     *fsnotify.Watcher
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New constructs a Watcher over the configured books directory.
func New(cfg *config.Config, processor bookProcessor, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Watcher{
		cfg:       cfg,
		logger:    logging.WithComponent(logger, "watcher"),
		processor: processor,
		settle:    time.Duration(cfg.Watcher.SettleSeconds) * time.Second,
		rescan:    time.Duration(cfg.Watcher.RescanIntervalSeconds) * time.Second,
		timers:    map[string]*time.Timer{},
	}
}

// Start begins watching. It processes the existing backlog once, then reacts
// to events until Stop is called or the context is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	if w == nil {
		return errors.New("watcher unavailable")
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return errors.New("watcher already running")
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fs.Add(w.cfg.Paths.BooksDir); err != nil {
		_ = fs.Close()
		return err
	}
	// Watch existing book folders so file writes inside them reset the
	// settle window.
	entries, err := os.ReadDir(w.cfg.Paths.BooksDir)
	if err != nil {
		_ = fs.Close()
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			_ = fs.Add(filepath.Join(w.cfg.Paths.BooksDir, entry.Name()))
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.fs = fs
	w.ctx = runCtx
	w.cancel = cancel
	w.running = true

	w.wg.Add(1)
	go w.loop(fs)

	w.logger.Info("watching for new books",
		logging.String("dir", w.cfg.Paths.BooksDir),
		logging.Duration("settle", w.settle))
	return nil
}

// Stop halts watching and waits for in-flight processing to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	fs := w.fs
	for folder, timer := range w.timers {
		timer.Stop()
		delete(w.timers, folder)
	}
	w.running = false
	w.cancel = nil
	w.fs = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if fs != nil {
		_ = fs.Close()
	}
	w.wg.Wait()
}

func (w *Watcher) loop(fs *fsnotify.Watcher) {
	defer w.wg.Done()

	w.sweep()

	var rescan <-chan time.Time
	if w.rescan > 0 {
		ticker := time.NewTicker(w.rescan)
		defer ticker.Stop()
		rescan = ticker.C
	}

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-rescan:
			w.sweep()
		case event, ok := <-fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	folder, ok := w.bookFolder(event.Name)
	if !ok {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.mu.Lock()
			fs := w.fs
			w.mu.Unlock()
			if fs != nil {
				_ = fs.Add(event.Name)
			}
		}
	}

	if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename) {
		w.schedule(folder)
	}
}

// bookFolder maps an event path to the top-level book folder it belongs to.
func (w *Watcher) bookFolder(path string) (string, bool) {
	rel, err := filepath.Rel(w.cfg.Paths.BooksDir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	name := rel
	if idx := strings.IndexByte(rel, filepath.Separator); idx > 0 {
		name = rel[:idx]
	}
	if strings.HasPrefix(name, ".") {
		return "", false
	}
	return filepath.Join(w.cfg.Paths.BooksDir, name), true
}

// schedule arms or resets the settle timer for a folder. The folder is
// processed once the timer fires without another event resetting it.
func (w *Watcher) schedule(folder string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}

	if timer, ok := w.timers[folder]; ok {
		timer.Reset(w.settle)
		return
	}
	w.timers[folder] = time.AfterFunc(w.settle, func() {
		w.fire(folder)
	})
}

func (w *Watcher) fire(folder string) {
	w.mu.Lock()
	delete(w.timers, folder)
	if !w.running || w.ctx == nil || w.ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	ctx := w.ctx
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		if info, err := os.Stat(folder); err != nil || !info.IsDir() {
			return
		}
		result := w.processor.Process(ctx, folder)
		if result.Status == pipeline.StatusFailed {
			w.logger.Error("book processing failed",
				logging.String("book_id", result.BookID),
				logging.Error(result.Err))
		}
	}()
}

func (w *Watcher) sweep() {
	if _, err := w.processor.ProcessAll(w.ctx); err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Warn("rescan sweep failed", logging.Error(err))
	}
}
