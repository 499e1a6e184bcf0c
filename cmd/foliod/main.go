// Command foliod is the folio daemon: it watches the books directory,
// processes settled book folders, and serves the control API.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"folio/internal/catalog"
	"folio/internal/config"
	"folio/internal/daemon"
	"folio/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	logger, err := logging.NewFromOptions(cfg.Logging.Level, cfg.Logging.Format, cfg.Paths.LogDir)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	var store *catalog.Store
	if cfg.Catalog.Enabled {
		store, err = catalog.Open(cfg)
		if err != nil {
			logger.Error("open catalog", logging.Error(err))
			return
		}
	}

	d, err := daemon.New(cfg, logger, store)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}

	<-ctx.Done()
}
