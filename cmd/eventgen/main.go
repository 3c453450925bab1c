// Command eventgen drafts a new event file for the content directory with
// Gemini. The draft is validated before it is written; review it before
// adding it to a location's pool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tatianab/dread/internal/authoring"
	"github.com/tatianab/dread/internal/config"
	"github.com/tatianab/dread/internal/content"
)

func main() {
	id := flag.String("id", "", "id of the new event")
	theme := flag.String("theme", "", "what the event should be about")
	force := flag.Bool("force", false, "overwrite an existing event file")
	flag.Parse()

	if err := run(*id, *theme, *force); err != nil {
		fmt.Fprintf(os.Stderr, "eventgen: %v\n", err)
		os.Exit(1)
	}
}

func run(id, theme string, force bool) error {
	if id == "" || theme == "" {
		return fmt.Errorf("both -id and -theme are required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireGemini(); err != nil {
		return err
	}
	if cfg.ContentDir == "" {
		return fmt.Errorf("DREAD_CONTENT_DIR must point at a writable content directory")
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	lib := content.NewLibrary(os.DirFS(cfg.ContentDir), logger)
	existing, err := lib.ListEvents()
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.ContentDir, "events", id+".yaml")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists; pass -force to overwrite", path)
	}

	ctx := context.Background()
	gen, err := authoring.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return err
	}
	defer gen.Close()

	logger.Info("drafting event", "id", id, "theme", theme, "existing", len(existing))
	ev, data, err := gen.GenerateEvent(ctx, authoring.Request{
		ID:       id,
		Theme:    theme,
		Mystery:  cfg.StartingMystery,
		Existing: existing,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d options)\n", path, len(ev.Options))
	return nil
}
