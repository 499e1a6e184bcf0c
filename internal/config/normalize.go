package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeManifest()
	c.normalizeImages()
	c.normalizeWatcher()
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.BooksDir, err = expandPath(c.Paths.BooksDir); err != nil {
		return fmt.Errorf("paths.books_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizeManifest() {
	c.Manifest.ImageURLPrefix = strings.TrimSpace(c.Manifest.ImageURLPrefix)
	c.Manifest.ImageURLPrefix = strings.TrimRight(c.Manifest.ImageURLPrefix, "/")
	if c.Manifest.ImageURLPrefix == "" {
		c.Manifest.ImageURLPrefix = defaultImageURLPrefix
	}
	if c.Manifest.DefaultWidth <= 0 {
		c.Manifest.DefaultWidth = defaultImageWidth
	}
	if c.Manifest.DefaultHeight <= 0 {
		c.Manifest.DefaultHeight = defaultImageHeight
	}
}

func (c *Config) normalizeImages() {
	cleaned := make([]string, 0, len(c.Images.Extensions))
	seen := map[string]struct{}{}
	for _, ext := range c.Images.Extensions {
		ext = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(ext, ".")))
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		cleaned = append(cleaned, ext)
	}
	if len(cleaned) == 0 {
		cleaned = defaultImageExtensions()
	}
	c.Images.Extensions = cleaned
}

func (c *Config) normalizeWatcher() {
	if c.Watcher.SettleSeconds <= 0 {
		c.Watcher.SettleSeconds = defaultSettleSeconds
	}
	if c.Watcher.RescanIntervalSeconds < 0 {
		c.Watcher.RescanIntervalSeconds = 0
	}
}

func (c *Config) normalizeCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		c.Catalog.Path = defaultCatalogPath
	}
	var err error
	if c.Catalog.Path, err = expandPath(c.Catalog.Path); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
