package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/tatianab/dread/internal/config"
	"github.com/tatianab/dread/internal/content"
	"github.com/tatianab/dread/internal/data"
	"github.com/tatianab/dread/internal/engine"
	"github.com/tatianab/dread/internal/journal"
	"github.com/tatianab/dread/internal/models"
	"github.com/tatianab/dread/internal/observe"
)

// maxTurns stops a run that never ends.
const maxTurns = 500

// nullDisplay swallows everything the engine presents.
type nullDisplay struct{}

func (nullDisplay) ShowEvent(string, string, []string) {}
func (nullDisplay) ShowResult(engine.Result)            {}

func main() {
	runs := flag.Int("runs", 100, "number of games to play")
	seed := flag.Int64("seed", 1, "seed for dice and choices")
	record := flag.Bool("journal", false, "record each run in DREAD_JOURNAL")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	lib := content.NewLibrary(data.FS, logger)
	locations, err := lib.ListLocations()
	if err != nil {
		log.Fatalf("Failed to list locations: %v", err)
	}

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(ctx)
	metrics, err := observe.NewMetrics(mp)
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	var j *journal.Journal
	if *record {
		if cfg.JournalPath == "" {
			log.Fatalf("-journal needs DREAD_JOURNAL to be set")
		}
		j, err = journal.Open(ctx, cfg.JournalPath)
		if err != nil {
			log.Fatalf("Failed to open journal: %v", err)
		}
		defer j.Close()
	}

	session := engine.NewSession(engine.SessionConfig{
		Loader:          lib,
		Display:         nullDisplay{},
		Roller:          engine.NewRoller(*seed),
		MaxStamina:      cfg.MaxStamina,
		MaxReason:       cfg.MaxReason,
		StartingMystery: cfg.StartingMystery,
		LocationIDs:     locations,
		Logger:          logger,
		Metrics:         metrics,
	})
	chooser := rand.New(rand.NewSource(*seed + 1))

	if j != nil {
		session.OnGameOver(func(g engine.GameOver) {
			err := j.Record(ctx, journal.Run{
				SessionID: session.ID,
				EndedAt:   time.Now(),
				Turns:     session.Turn(),
				Stamina:   session.State.Stats.Get(models.StatStamina),
				Reason:    session.State.Stats.Get(models.StatReason),
				Doom:      session.State.Stats.Get(models.StatDoom),
				Items:     len(session.State.Inventory),
				Cause:     string(g.Cause),
				Message:   g.Message,
			})
			if err != nil {
				log.Printf("Failed to record run: %v", err)
			}
		})
	}

	fmt.Printf("--- Simulating %d runs (seed %d) ---\n", *runs, *seed)
	var totalTurns, longest, unfinished int
	for i := 0; i < *runs; i++ {
		if i > 0 {
			session.NewGame()
		}
		playRun(session, chooser)
		if _, over := session.Over(); !over {
			unfinished++
		}
		totalTurns += session.Turn()
		longest = max(longest, session.Turn())
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		log.Fatalf("Failed to collect metrics: %v", err)
	}

	fmt.Printf("Average turns survived: %.1f\n", float64(totalTurns)/float64(max(*runs, 1)))
	fmt.Printf("Longest run: %d turns\n", longest)
	if unfinished > 0 {
		fmt.Printf("Runs stopped at %d turns: %d\n", maxTurns, unfinished)
	}

	fmt.Println("\nGame over causes:")
	printBreakdown(observe.CounterBreakdown(rm, observe.GameOversName, "cause"))

	fmt.Println("\nInvestigations:")
	printBreakdown(observe.CounterBreakdown(rm, observe.InvestigationsName, "location"))

	fmt.Println("\nCheck pass rates:")
	for _, stat := range []models.Stat{models.StatStamina, models.StatReason} {
		s := attribute.String("stat", string(stat))
		passed := observe.CounterValue(rm, observe.ChecksName, s, attribute.String("outcome", "passed"))
		failed := observe.CounterValue(rm, observe.ChecksName, s, attribute.String("outcome", "failed"))
		if passed+failed == 0 {
			fmt.Printf("  %s: no checks\n", stat.DisplayName())
			continue
		}
		fmt.Printf("  %s: %d/%d (%.0f%%)\n", stat.DisplayName(), passed, passed+failed, 100*float64(passed)/float64(passed+failed))
	}
}

// playRun picks locations and options at random until the run ends.
func playRun(s *engine.Session, rng *rand.Rand) {
	for s.Turn() <= maxTurns {
		if _, over := s.Over(); over {
			return
		}
		locs := s.Locations()
		if len(locs) == 0 {
			return
		}
		loc := locs[rng.Intn(len(locs))]
		if err := s.Investigate(loc.ID); err != nil {
			log.Printf("Investigate %s: %v", loc.ID, err)
			return
		}

		for s.Resolver.Phase() == engine.PhaseAwaitingChoice {
			ev := s.Resolver.Current()
			if len(ev.Options) > 0 {
				s.Choose(rng.Intn(len(ev.Options)))
			}
			if !s.Close() {
				break
			}
		}
	}
}

func printBreakdown(counts map[string]int64) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %d\n", k, counts[k])
	}
}
