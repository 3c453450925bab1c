package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tatianab/dread/internal/models"
	"github.com/tatianab/dread/internal/observe"
	"github.com/tatianab/dread/internal/player"
)

// Loader supplies immutable content. A missing id reports false; the
// caller logs it.
type Loader interface {
	LoadEvent(id string) (*models.Event, bool)
	LoadLocation(id string) (*models.Location, bool)
}

// SessionConfig wires a Session. Loader, Display and Roller are required.
type SessionConfig struct {
	Loader  Loader
	Display Display
	Roller  Roller

	MaxStamina      int
	MaxReason       int
	StartingMystery string
	LocationIDs     []string

	Logger  *slog.Logger
	Metrics *observe.Metrics
}

// Session is one player's game from start to finish. It owns the player
// state and every component that acts on it; nothing is global.
type Session struct {
	ID string

	State      *player.State
	Resolver   *Resolver
	Controller *Controller
	Detector   *Detector

	loader          Loader
	locationIDs     []string
	startingMystery string
	base            *slog.Logger
	log             *slog.Logger
}

// NewSession builds the components and starts a new game.
func NewSession(cfg SessionConfig) *Session {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observe.Noop()
	}

	st := player.NewState(cfg.MaxStamina, cfg.MaxReason)
	s := &Session{
		State:           st,
		Resolver:        NewResolver(st, NewEvaluator(cfg.Roller), cfg.Display, log, metrics),
		Controller:      NewController(st, cfg.Roller, log, metrics),
		Detector:        NewDetector(st.Stats, log, metrics),
		loader:          cfg.Loader,
		locationIDs:     cfg.LocationIDs,
		startingMystery: cfg.StartingMystery,
		base:            log,
		log:             log,
	}
	s.NewGame()
	return s
}

// NewGame discards the current run and starts a fresh one with a new id.
func (s *Session) NewGame() {
	s.Resolver.Close()
	s.State.Reset()
	s.Controller.Reset()
	s.Detector.Reset()
	if s.startingMystery != "" {
		s.State.BeginMystery(s.startingMystery)
	}
	s.ID = uuid.NewString()
	s.log = s.base.With("session", s.ID)
	s.log.Info("new game")
}

// OnGameOver registers fn to hear the end of a run.
func (s *Session) OnGameOver(fn func(GameOver)) {
	s.Detector.OnGameOver(fn)
}

func (s *Session) Over() (GameOver, bool) {
	return s.Detector.Over()
}

func (s *Session) Turn() int {
	return s.Controller.Turn()
}

// Locations returns the locations currently open to the player. Ids the
// loader cannot resolve are logged and skipped.
func (s *Session) Locations() []*models.Location {
	var all []*models.Location
	for _, id := range s.locationIDs {
		loc, ok := s.loader.LoadLocation(id)
		if !ok {
			s.log.Warn("location not loaded", "location", id)
			continue
		}
		all = append(all, loc)
	}
	return s.Controller.Available(all)
}

// Investigate spends time at a location and shows the event it yields.
// If the time spent ends the run, no event is shown.
func (s *Session) Investigate(locationID string) error {
	if _, over := s.Over(); over {
		return ErrGameOver
	}
	loc, ok := s.loader.LoadLocation(locationID)
	if !ok {
		s.log.Error("location not loaded", "location", locationID)
		return fmt.Errorf("location %q: %w", locationID, ErrMissingResource)
	}
	if len(s.Controller.Available([]*models.Location{loc})) == 0 {
		return fmt.Errorf("location %q: %w", locationID, ErrUnknownLocation)
	}

	eventID, ok := s.Controller.Investigate(loc)
	if !ok {
		return nil
	}
	if _, over := s.Over(); over {
		return nil
	}
	return s.ShowEvent(eventID)
}

// ShowEvent loads and presents an event by id.
func (s *Session) ShowEvent(id string) error {
	ev, ok := s.loader.LoadEvent(id)
	if !ok {
		s.log.Error("event not loaded", "event", id)
		return fmt.Errorf("event %q: %w", id, ErrMissingResource)
	}
	return s.Resolver.Show(ev)
}

// Choose resolves an option on the current event. Once the run is over no
// choice is accepted.
func (s *Session) Choose(index int) (Result, bool) {
	if _, over := s.Over(); over {
		return Result{}, false
	}
	return s.Resolver.Choose(index)
}

// Close hides the current event and then shows the next chained event, if
// one is queued and loads. It reports whether another event is on screen.
func (s *Session) Close() bool {
	s.Resolver.Close()
	for {
		if _, over := s.Over(); over {
			return false
		}
		id, ok := s.State.NextEvent()
		if !ok {
			return false
		}
		if err := s.ShowEvent(id); err != nil {
			continue
		}
		return true
	}
}
