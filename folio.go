// Package folio is a small blog engine built with Go, Echo, and templ.
// It resolves post slugs into display-ready documents and synthesizes the
// head metadata (Open Graph, Twitter card, canonical URL) for each page.
//
// Users provide templ components via the ViewFuncs struct; the views
// package ships defaults.
package folio

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	glog "github.com/labstack/gommon/log"
)

// ViewFuncs holds the templ components the framework calls when rendering pages.
type ViewFuncs struct {
	Index       func(docs []Document, meta MetadataBlock, cfg SiteConfig) templ.Component
	Post        func(doc Document, related []Document, meta MetadataBlock, cfg SiteConfig) templ.Component
	NotFound    func(err *NotFoundError, cfg SiteConfig) templ.Component
	ServerError func(cfg SiteConfig) templ.Component
}

// App is the central folio application. It wires together the document
// store, resolver, metadata synthesizer, handlers, and templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Resolver *Resolver
	Synth    Synthesizer
	Views    ViewFuncs

	store        DocumentStore
	lister       DocumentLister
	closers      []func() error
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.LogLevel))

	a := &App{
		Config:    cfg,
		Echo:      e,
		Views:     views,
		Synth:     NewSynthesizer(cfg),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the document source, then registers middleware and routes.
// ctx bounds the lifetime of the content watcher, if enabled.
func (a *App) Setup(ctx context.Context) error {
	if a.store == nil {
		if err := a.openStore(ctx); err != nil {
			return err
		}
	}
	if l, ok := a.store.(DocumentLister); ok {
		a.lister = l
	}

	a.Resolver = NewResolver(a.store)
	a.Resolver.Dates = NewDateFormatter(a.Config.Locale)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) openStore(ctx context.Context) error {
	if a.Config.ContentDir != "" {
		docs, err := LoadDocuments(ctx, os.DirFS(a.Config.ContentDir))
		if err != nil {
			return fmt.Errorf("folio: load content: %w", err)
		}
		mem, err := NewMemoryStore(docs...)
		if err != nil {
			return fmt.Errorf("folio: load content: %w", err)
		}
		a.store = mem
		a.Echo.Logger.Infof("loaded %d documents from %s", len(docs), a.Config.ContentDir)

		if a.Config.Watch {
			w, err := NewWatcher(a.Config.ContentDir, mem, a.Echo.Logger)
			if err != nil {
				return fmt.Errorf("folio: %w", err)
			}
			w.Start(ctx)
			a.closers = append(a.closers, w.Close)
		}
		return nil
	}

	db, err := NewSQLiteStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.closers = append(a.closers, db.Close)
	a.store = NewDocumentCache(db, a.Config.DocumentCacheTTL)
	return nil
}

// Start sets the app up and starts the server.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(ctx); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.ico", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleIndex)
	e.GET("/posts/:slug", a.handlePost)
}

// Close releases the store and stops the content watcher.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func logLevel(s string) glog.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return glog.DEBUG
	case "warn", "warning":
		return glog.WARN
	case "error":
		return glog.ERROR
	case "off":
		return glog.OFF
	default:
		return glog.INFO
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("folio: required environment variable %s is not set", key)
	}
	return v
}
