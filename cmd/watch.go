package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/logging"
	"github.com/patternbook/patternbook/internal/query"
	"github.com/patternbook/patternbook/internal/render"
	"github.com/patternbook/patternbook/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Re-render the documentation whenever sources change",
	Long: `Watch the configured catalog source files and re-run the import,
validation and Markdown render whenever one changes. Changes are
debounced so a burst of editor writes triggers a single rebuild.

Examples:
  patternbook watch
  patternbook watch -o docs/design-patterns.md`,
	RunE: runWatch,
}

var watchOutput string

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Output file (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	output := watchOutput
	if output == "" {
		output = cfg.Render.Output
	}

	rebuild := func() error {
		cat, violations, loadErr := loadCatalog(cfg)
		if loadErr != nil {
			return loadErr
		}
		for _, v := range violations {
			logger.Warn(ctx, v.Err, "Record rejected", "location", v.Location)
		}

		doc := render.Markdown(query.New(cat).All(), render.Options{Title: cfg.Render.Title})
		if writeErr := os.WriteFile(output, doc, 0o644); writeErr != nil {
			return fmt.Errorf("writing %s: %w", output, writeErr)
		}
		logger.Info(ctx, "Rendered catalog", "entries", cat.Count(), "output", output)
		return nil
	}

	// Initial build before watching
	if err := rebuild(); err != nil {
		return err
	}

	sw, err := watcher.New(time.Duration(cfg.Watch.DebounceMillis)*time.Millisecond, logger)
	if err != nil {
		return fmt.Errorf("creating source watcher: %w", err)
	}
	defer sw.Stop()

	sw.AddFilter(watcher.CatalogFilter)
	sw.AddFilter(func(path string) bool {
		// The render output may live next to the sources; never rebuild
		// on our own writes.
		return path != output
	})
	sw.AddHandler(func(events []watcher.ChangeEvent) error {
		return rebuild()
	})

	for _, source := range cfg.Catalog.Sources {
		if err := sw.AddPath(source); err != nil {
			logger.Warn(ctx, err, "Cannot watch catalog source", "source", source)
		}
	}
	if err := sw.Start(ctx); err != nil {
		return fmt.Errorf("starting source watcher: %w", err)
	}

	fmt.Println("Watching catalog sources. Press Ctrl+C to stop.")
	<-ctx.Done()
	return nil
}
