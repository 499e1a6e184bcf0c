package config

const (
	defaultBooksDir       = "~/books"
	defaultLogDir         = "~/.local/share/folio/logs"
	defaultAPIBind        = "127.0.0.1:7519"
	defaultImageURLPrefix = "https://collections.example.org/books/{book_id}-{author}"
	defaultImageWidth     = 2645
	defaultImageHeight    = 3933
	defaultSettleSeconds  = 5
	defaultRescanSeconds  = 300
	defaultCatalogPath    = "~/.local/share/folio/catalog.db"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

func defaultImageExtensions() []string {
	return []string{"jpg", "jpeg", "png", "tif", "tiff"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			BooksDir: defaultBooksDir,
			LogDir:   defaultLogDir,
			APIBind:  defaultAPIBind,
		},
		Manifest: Manifest{
			ImageURLPrefix: defaultImageURLPrefix,
			DefaultWidth:   defaultImageWidth,
			DefaultHeight:  defaultImageHeight,
		},
		Images: Images{
			Extensions: defaultImageExtensions(),
		},
		Watcher: Watcher{
			SettleSeconds:         defaultSettleSeconds,
			RescanIntervalSeconds: defaultRescanSeconds,
		},
		Catalog: Catalog{
			Path: defaultCatalogPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
