package config

import (
	"strings"

	"folio/internal/services"
)

// Validate ensures the configuration is usable. Violations are fatal at
// process start.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateManifest(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.BooksDir) == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "paths.books_dir is required", nil)
	}
	return nil
}

func (c *Config) validateManifest() error {
	prefix := c.Manifest.ImageURLPrefix
	if !strings.HasPrefix(prefix, "http://") && !strings.HasPrefix(prefix, "https://") {
		return services.Wrap(services.ErrConfiguration, "config", "validate",
			"manifest.image_url_prefix must be an absolute http(s) URL", nil)
	}
	if !strings.Contains(prefix, "{book_id}") {
		return services.Wrap(services.ErrConfiguration, "config", "validate",
			"manifest.image_url_prefix must contain the {book_id} placeholder", nil)
	}
	if c.Manifest.DefaultWidth <= 0 || c.Manifest.DefaultHeight <= 0 {
		return services.Wrap(services.ErrConfiguration, "config", "validate",
			"manifest default dimensions must be positive", nil)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return services.Wrap(services.ErrConfiguration, "config", "validate",
			"logging.format must be console or json", nil)
	}
	return nil
}
