package engine

import (
	"context"
	"log/slog"

	"github.com/tatianab/dread/internal/models"
	"github.com/tatianab/dread/internal/observe"
	"github.com/tatianab/dread/internal/player"
)

// DoomPerTurn is the dread that accrues for every turn spent investigating.
const DoomPerTurn = 2

// TurnUpdate is pushed to turn subscribers after each investigation.
type TurnUpdate struct {
	Turn     int
	Location models.Location
}

// Controller advances time and picks events from location pools.
type Controller struct {
	state   *player.State
	rng     Roller
	log     *slog.Logger
	metrics *observe.Metrics

	turn     int
	unlocked map[string]bool
	watchers []func(TurnUpdate)
}

func NewController(st *player.State, rng Roller, log *slog.Logger, metrics *observe.Metrics) *Controller {
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = observe.Noop()
	}
	c := &Controller{state: st, rng: rng, log: log, metrics: metrics}
	c.Reset()
	return c
}

// Reset starts the clock at turn 1 and relocks every location.
func (c *Controller) Reset() {
	c.turn = 1
	c.unlocked = make(map[string]bool)
}

func (c *Controller) Turn() int { return c.turn }

// SubscribeTurns registers fn for every subsequent investigation.
func (c *Controller) SubscribeTurns(fn func(TurnUpdate)) {
	c.watchers = append(c.watchers, fn)
}

// Unlock makes a location available regardless of its default.
func (c *Controller) Unlock(id string) {
	c.unlocked[id] = true
}

// Available filters locations down to those the player may investigate,
// preserving order.
func (c *Controller) Available(all []*models.Location) []*models.Location {
	var out []*models.Location
	for _, loc := range all {
		if loc.UnlockedByDefault || c.unlocked[loc.ID] {
			out = append(out, loc)
		}
	}
	return out
}

// Investigate spends the location's turn cost, raises doom by DoomPerTurn
// per turn, then draws an event id from the pool with replacement. An
// empty pool still costs time and doom but yields no event.
func (c *Controller) Investigate(loc *models.Location) (string, bool) {
	c.turn += loc.TurnCost
	c.state.Stats.Modify(models.StatDoom, loc.TurnCost*DoomPerTurn)
	c.metrics.RecordInvestigation(context.Background(), loc.ID, loc.TurnCost)

	for _, fn := range c.watchers {
		fn(TurnUpdate{Turn: c.turn, Location: *loc})
	}

	if len(loc.EventPool) == 0 {
		c.log.Info("location has no events", "location", loc.ID, "turn", c.turn)
		return "", false
	}
	id := loc.EventPool[c.rng.Intn(len(loc.EventPool))]
	c.log.Info("investigated", "location", loc.ID, "turn", c.turn, "event", id)
	return id, true
}
