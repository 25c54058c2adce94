package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/eringen/folio"
	"github.com/eringen/folio/views"
)

// version is set at build time via ldflags.
var version = "dev"

type globals struct {
	Config  string `short:"c" help:"YAML site configuration file." type:"path"`
	EnvFile string `help:"Environment file loaded before reading FOLIO_* variables." default:".env"`
}

type cli struct {
	Globals globals `embed:""`

	Serve   serveCmd   `cmd:"" default:"withargs" help:"Start the blog server."`
	Resolve resolveCmd `cmd:"" help:"Resolve a slug and print the document and its metadata as JSON."`
	Import  importCmd  `cmd:"" help:"Import a directory of markdown documents into the SQLite store."`
	Version versionCmd `cmd:"" help:"Print the folio version."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("folio"),
		kong.Description("A blog engine built with Go, Echo, and templ."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&c.Globals))
}

func (g *globals) siteConfig() (folio.SiteConfig, error) {
	if err := godotenv.Load(g.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return folio.SiteConfig{}, fmt.Errorf("load %s: %w", g.EnvFile, err)
	}
	var cfg folio.SiteConfig
	if g.Config != "" {
		var err error
		if cfg, err = folio.LoadConfigFile(g.Config); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

type serveCmd struct {
	Addr    string `help:"Listen address."`
	Content string `help:"Serve markdown documents from this directory instead of SQLite." type:"existingdir"`
	Watch   bool   `help:"Reload the content directory on change."`
}

func (s *serveCmd) Run(g *globals) error {
	cfg, err := g.siteConfig()
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Addr = s.Addr
	}
	if s.Content != "" {
		cfg.ContentDir = s.Content
	}
	cfg.Watch = cfg.Watch || s.Watch

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := folio.New(cfg, views.Default())
	defer app.Close()

	errc := make(chan error, 1)
	go func() { errc <- app.Start(ctx) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.Echo.Shutdown(shutdownCtx)
	}
}

type resolveCmd struct {
	Slug    string `arg:"" help:"Document slug."`
	Content string `help:"Resolve from this markdown directory instead of SQLite." type:"existingdir"`
}

type resolveOutput struct {
	Document folio.Document      `json:"document"`
	Metadata folio.MetadataBlock `json:"metadata"`
}

func (r *resolveCmd) Run(g *globals) error {
	cfg, err := g.siteConfig()
	if err != nil {
		return err
	}
	if r.Content != "" {
		cfg.ContentDir = r.Content
	}
	cfg.Watch = false
	cfg.LogLevel = "error"

	ctx := context.Background()
	app := folio.New(cfg, views.Default())
	defer app.Close()
	if err := app.Setup(ctx); err != nil {
		return err
	}

	doc, err := app.Resolver.Resolve(ctx, r.Slug)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resolveOutput{Document: doc, Metadata: app.Synth.Synthesize(doc)})
}

type importCmd struct {
	Dir string `arg:"" help:"Directory of markdown documents." type:"existingdir"`
}

func (i *importCmd) Run(g *globals) error {
	cfg, err := g.siteConfig()
	if err != nil {
		return err
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "data/blog.db"
	}

	ctx := context.Background()
	docs, err := folio.LoadDocuments(ctx, os.DirFS(i.Dir))
	if err != nil {
		return err
	}
	store, err := folio.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.ReplaceAll(ctx, docs); err != nil {
		return err
	}
	fmt.Printf("imported %d documents into %s\n", len(docs), cfg.DatabasePath)
	return nil
}

type versionCmd struct{}

func (versionCmd) Run() error {
	fmt.Printf("folio %s\n", version)
	return nil
}
