package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tatianab/dread/internal/models"
	"github.com/tatianab/dread/internal/observe"
	"github.com/tatianab/dread/internal/player"
)

// Phase is the lifecycle position of the event on screen.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseShown
	PhaseAwaitingChoice
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseHidden:
		return "hidden"
	case PhaseShown:
		return "shown"
	case PhaseAwaitingChoice:
		return "awaiting_choice"
	case PhaseResolved:
		return "resolved"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Result is what the display receives once an option resolves.
type Result struct {
	Option    int   // zero-based
	Passed    *bool // nil when the option had no check
	Check     *models.StatCheck
	Roll      int
	Summaries []string
}

// CheckLine renders the pass/fail line, or "" when there was no check.
func (r Result) CheckLine() string {
	if r.Passed == nil || r.Check == nil {
		return ""
	}
	name := r.Check.Stat.DisplayName()
	if *r.Passed {
		return fmt.Sprintf("✓ %s check PASSED!", name)
	}
	return fmt.Sprintf("✗ %s check FAILED!", name)
}

// Display is the presentation surface the resolver drives.
type Display interface {
	ShowEvent(text, image string, labels []string)
	ShowResult(r Result)
}

// Resolver runs one event at a time through
// hidden → shown → awaiting choice → resolved → hidden.
type Resolver struct {
	state   *player.State
	eval    *Evaluator
	display Display
	log     *slog.Logger
	metrics *observe.Metrics

	phase   Phase
	current *models.Event
}

func NewResolver(st *player.State, eval *Evaluator, display Display, log *slog.Logger, metrics *observe.Metrics) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = observe.Noop()
	}
	return &Resolver{
		state:   st,
		eval:    eval,
		display: display,
		log:     log,
		metrics: metrics,
	}
}

func (r *Resolver) Phase() Phase { return r.phase }

// Current returns the event on screen, or nil when hidden.
func (r *Resolver) Current() *models.Event { return r.current }

// Show presents ev, replacing whatever was on screen. Auto-consequences are
// applied first, before any choice.
func (r *Resolver) Show(ev *models.Event) error {
	if ev == nil {
		r.log.Error("event not shown", "error", ErrMissingResource)
		return ErrMissingResource
	}
	if r.current != nil && r.phase != PhaseHidden && r.phase != PhaseResolved {
		r.log.Debug("discarding unresolved event", "event", r.current.ID, "replaced_by", ev.ID)
	}

	r.current = ev
	r.phase = PhaseShown
	r.metrics.RecordEventShown(context.Background(), ev.ID)

	for _, c := range ev.AutoConsequences {
		Apply(c, r.state)
	}
	if r.display != nil {
		r.display.ShowEvent(ev.Text, ev.Image, ev.Labels())
	}
	r.phase = PhaseAwaitingChoice
	r.log.Debug("event shown", "event", ev.ID, "options", len(ev.Options))
	return nil
}

// Choose resolves the option at a zero-based index. It reports false, and
// changes nothing, unless an event awaits a choice and the index exists.
//
// Every consequence of the chosen option is applied whatever the check
// outcome; content branches on success by offering separate options.
func (r *Resolver) Choose(index int) (Result, bool) {
	if r.phase != PhaseAwaitingChoice || r.current == nil {
		return Result{}, false
	}
	opt, ok := r.current.Option(index)
	if !ok {
		r.log.Debug("ignoring invalid choice", "event", r.current.ID, "index", index)
		return Result{}, false
	}

	res := Result{Option: index, Check: opt.Check}
	if opt.Check != nil {
		cr := r.eval.Evaluate(opt.Check, r.state.Stats)
		res.Passed = &cr.Passed
		res.Roll = cr.Roll
		r.metrics.RecordCheck(context.Background(), string(opt.Check.Stat), string(opt.Check.Kind), cr.Passed)
	}

	for _, c := range opt.Consequences {
		if s := c.Summary(); s != "" {
			res.Summaries = append(res.Summaries, s)
		}
		Apply(c, r.state)
	}

	r.phase = PhaseResolved
	if r.display != nil {
		r.display.ShowResult(res)
	}
	r.log.Info("option resolved", "event", r.current.ID, "option", index+1, "passed", res.Passed != nil && *res.Passed, "checked", res.Passed != nil)
	return res, true
}

// Close hides the current event. Calling it while hidden does nothing.
func (r *Resolver) Close() {
	r.phase = PhaseHidden
	r.current = nil
}
