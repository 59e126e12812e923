package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/logging"
	"github.com/patternbook/patternbook/internal/server"
	"github.com/patternbook/patternbook/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Serve the catalog over HTTP with live reload",
	Long: `Serve the catalog over HTTP: a JSON API for the query operations,
the rendered documentation as HTML and Markdown, and a websocket channel
that reloads connected browsers whenever a catalog source file changes.

Endpoints:
  /                         Rendered HTML documentation
  /api/patterns             All entries (?category= to filter)
  /api/patterns/{name}      One entry by exact name
  /api/categories/{cat}     One category in insertion order
  /api/search?q=substr      Case-insensitive substring search
  /render                   Deterministic Markdown document
  /ws                       Live-reload websocket

Examples:
  patternbook serve
  patternbook serve --port 9000
  PATTERNBOOK_SERVER_PORT=9000 patternbook serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "Port to serve on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	AddFlagValidation(serveCmd, "port", ValidatePort)

	// Flag values override config file values through viper
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, violations, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	if err := reportViolations(violations, cfg.Catalog.Strict); err != nil {
		return err
	}

	srv := server.New(cfg, cat, logger)

	// Reload the catalog and swap it into the server when sources change
	sw, err := watcher.New(time.Duration(cfg.Watch.DebounceMillis)*time.Millisecond, logger)
	if err != nil {
		return fmt.Errorf("creating source watcher: %w", err)
	}
	defer sw.Stop()

	sw.AddFilter(watcher.CatalogFilter)
	sw.AddHandler(func(events []watcher.ChangeEvent) error {
		fresh, vs, loadErr := loadCatalog(cfg)
		if loadErr != nil {
			logger.Error(ctx, loadErr, "Catalog reload failed")
			return loadErr
		}
		for _, v := range vs {
			logger.Warn(ctx, v.Err, "Record rejected during reload", "location", v.Location)
		}
		srv.Swap(fresh)
		logger.Info(ctx, "Catalog reloaded", "entries", fresh.Count(), "changes", len(events))
		return nil
	})

	for _, source := range cfg.Catalog.Sources {
		if err := sw.AddPath(source); err != nil {
			logger.Warn(ctx, err, "Cannot watch catalog source", "source", source)
		}
	}
	if err := sw.Start(ctx); err != nil {
		return fmt.Errorf("starting source watcher: %w", err)
	}

	return srv.Start(ctx)
}
