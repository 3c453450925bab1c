package engine

import (
	"context"
	"log/slog"

	"github.com/tatianab/dread/internal/models"
	"github.com/tatianab/dread/internal/observe"
	"github.com/tatianab/dread/internal/player"
)

// Cause identifies which rule ended the run.
type Cause string

const (
	CauseDoom    Cause = "doom"
	CauseStamina Cause = "stamina"
	CauseReason  Cause = "reason"
)

// Message returns the line shown to the player.
func (c Cause) Message() string {
	switch c {
	case CauseDoom:
		return "The Old Ones have awakened."
	case CauseStamina:
		return "You collapsed from exhaustion."
	case CauseReason:
		return "Your mind shattered."
	}
	return ""
}

// GameOver is published once when a run first becomes terminal.
type GameOver struct {
	Cause   Cause
	Message string
}

// Detector watches stat changes for terminal conditions. It does not block
// further mutation; callers stop accepting actions once it has fired.
type Detector struct {
	stats   StatReader
	log     *slog.Logger
	metrics *observe.Metrics

	over      *GameOver
	listeners []func(GameOver)
}

// NewDetector creates a detector and subscribes it to stats.
func NewDetector(stats *player.Stats, log *slog.Logger, metrics *observe.Metrics) *Detector {
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = observe.Noop()
	}
	d := &Detector{stats: stats, log: log, metrics: metrics}
	stats.Subscribe(d.Observe)
	return d
}

// OnGameOver registers fn to hear the terminal condition.
func (d *Detector) OnGameOver(fn func(GameOver)) {
	d.listeners = append(d.listeners, fn)
}

// Check evaluates the rules against the current stats, doom first, then
// stamina, then reason.
func Check(stats StatReader) (Cause, bool) {
	switch {
	case stats.Get(models.StatDoom) >= player.DoomMax:
		return CauseDoom, true
	case stats.Get(models.StatStamina) <= 0:
		return CauseStamina, true
	case stats.Get(models.StatReason) <= 0:
		return CauseReason, true
	}
	return "", false
}

// Observe is the stat-change subscriber.
func (d *Detector) Observe(player.Change) {
	if d.over != nil {
		return
	}
	cause, ok := Check(d.stats)
	if !ok {
		return
	}
	g := GameOver{Cause: cause, Message: cause.Message()}
	d.over = &g
	d.log.Info("game over", "cause", cause)
	d.metrics.RecordGameOver(context.Background(), string(cause))
	for _, fn := range d.listeners {
		fn(g)
	}
}

// Over returns the latched terminal condition, if any.
func (d *Detector) Over() (GameOver, bool) {
	if d.over == nil {
		return GameOver{}, false
	}
	return *d.over, true
}

// Reset unlatches the detector for a new run.
func (d *Detector) Reset() {
	d.over = nil
}
