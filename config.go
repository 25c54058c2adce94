package folio

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultSiteName = "Blog"

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name, prefixed to page titles (default "Blog")
	URL         string `yaml:"url"`         // Canonical base URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for RSS and the index page
	Author      string `yaml:"author"`      // Author name for JSON-LD
	Image       string `yaml:"image"`       // Optional share image for the index page
	Locale      string `yaml:"locale"`      // Date locale, e.g. "en_US" (default)

	Addr         string `yaml:"addr"`          // Listen address (default ":3000")
	DatabasePath string `yaml:"database_path"` // SQLite path (default "data/blog.db")
	ContentDir   string `yaml:"content_dir"`   // Markdown directory; when set, documents are served from files
	Watch        bool   `yaml:"watch"`         // Reload ContentDir on change
	LogLevel     string `yaml:"log_level"`     // debug, info, warn, error (default "info")

	DocumentCacheTTL time.Duration `yaml:"document_cache_ttl"` // SQLite document cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = defaultSiteName
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Locale == "" {
		c.Locale = "en_US"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DocumentCacheTTL == 0 {
		c.DocumentCacheTTL = 5 * time.Minute
	}
}

// LoadConfigFile reads a YAML site configuration.
func LoadConfigFile(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any FOLIO_* environment variables that are set.
func (c *SiteConfig) ApplyEnv() {
	c.Name = EnvOr("FOLIO_SITE_NAME", c.Name)
	c.URL = EnvOr("FOLIO_SITE_URL", c.URL)
	c.Description = EnvOr("FOLIO_SITE_DESCRIPTION", c.Description)
	c.Author = EnvOr("FOLIO_SITE_AUTHOR", c.Author)
	c.Image = EnvOr("FOLIO_SITE_IMAGE", c.Image)
	c.Locale = EnvOr("FOLIO_LOCALE", c.Locale)
	c.Addr = EnvOr("FOLIO_ADDR", c.Addr)
	c.DatabasePath = EnvOr("FOLIO_DATABASE_PATH", c.DatabasePath)
	c.ContentDir = EnvOr("FOLIO_CONTENT_DIR", c.ContentDir)
	c.LogLevel = EnvOr("FOLIO_LOG_LEVEL", c.LogLevel)
	if v, err := strconv.ParseBool(os.Getenv("FOLIO_WATCH")); err == nil {
		c.Watch = v
	}
	if v, err := time.ParseDuration(os.Getenv("FOLIO_CACHE_TTL")); err == nil {
		c.DocumentCacheTTL = v
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithDocumentStore serves documents from store instead of SQLite or ContentDir.
// If store also implements DocumentLister it backs the index, feed and sitemap.
func WithDocumentStore(store DocumentStore) Option {
	return func(a *App) {
		a.store = store
	}
}
