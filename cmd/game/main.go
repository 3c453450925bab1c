package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/tatianab/dread/internal/config"
	"github.com/tatianab/dread/internal/content"
	"github.com/tatianab/dread/internal/data"
	"github.com/tatianab/dread/internal/engine"
	"github.com/tatianab/dread/internal/journal"
	"github.com/tatianab/dread/internal/models"
	"github.com/tatianab/dread/internal/observe"
	"github.com/tatianab/dread/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var fsys fs.FS = data.FS
	if cfg.ContentDir != "" {
		fsys = os.DirFS(cfg.ContentDir)
	}
	lib := content.NewLibrary(fsys, logger)
	if err := lib.Validate(); err != nil {
		logger.Warn("content has problems", "err", err)
	}
	locations, err := lib.ListLocations()
	if err != nil {
		fmt.Printf("Error listing locations: %v\n", err)
		os.Exit(1)
	}
	if events, err := lib.ListEvents(); err == nil {
		if err := lib.Preload(events...); err != nil {
			logger.Warn("preload failed", "err", err)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting", "seed", seed, "locations", len(locations))

	metrics, err := observe.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		fmt.Printf("Error creating metrics: %v\n", err)
		os.Exit(1)
	}

	display := tui.NewDisplay()
	session := engine.NewSession(engine.SessionConfig{
		Loader:          lib,
		Display:         display,
		Roller:          engine.NewRoller(seed),
		MaxStamina:      cfg.MaxStamina,
		MaxReason:       cfg.MaxReason,
		StartingMystery: cfg.StartingMystery,
		LocationIDs:     locations,
		Logger:          logger,
		Metrics:         metrics,
	})

	if cfg.JournalPath != "" {
		j, err := journal.Open(ctx, cfg.JournalPath)
		if err != nil {
			fmt.Printf("Error opening journal: %v\n", err)
			os.Exit(1)
		}
		defer j.Close()
		session.OnGameOver(func(g engine.GameOver) {
			if err := j.Record(ctx, runSummary(session, g)); err != nil {
				logger.Error("failed to record run", "err", err)
			}
		})
	}

	if err := tui.Run(session, display); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func runSummary(s *engine.Session, g engine.GameOver) journal.Run {
	stats := s.State.Stats
	return journal.Run{
		SessionID: s.ID,
		EndedAt:   time.Now(),
		Turns:     s.Turn(),
		Stamina:   stats.Get(models.StatStamina),
		Reason:    stats.Get(models.StatReason),
		Doom:      stats.Get(models.StatDoom),
		Items:     len(s.State.Inventory),
		Cause:     string(g.Cause),
		Message:   g.Message,
	}
}
