// Package player holds the single mutable entity of a run: the player's
// bounded stats and the collections that consequences grow.
package player

import "github.com/tatianab/dread/internal/models"

// DoomMax is the doom ceiling; reaching it ends the run.
const DoomMax = 100

// Change describes one stat transition.
type Change struct {
	Stat models.Stat
	Old  int
	New  int
}

// Stats stores stamina, reason and doom, each clamped to [0, max].
// Subscribers are notified synchronously, in registration order, after
// every Modify.
type Stats struct {
	stamina    int
	reason     int
	doom       int
	maxStamina int
	maxReason  int

	observers []func(Change)
}

// NewStats returns stats at their maxima with doom at zero. Non-positive
// maxima are raised to 1.
func NewStats(maxStamina, maxReason int) *Stats {
	s := &Stats{
		maxStamina: max(maxStamina, 1),
		maxReason:  max(maxReason, 1),
	}
	s.Reset()
	return s
}

// Reset restores stamina and reason to their maxima and doom to zero
// without notifying subscribers.
func (s *Stats) Reset() {
	s.stamina = s.maxStamina
	s.reason = s.maxReason
	s.doom = 0
}

// Get returns the current value of stat, or 0 for an unknown stat.
func (s *Stats) Get(stat models.Stat) int {
	switch stat {
	case models.StatStamina:
		return s.stamina
	case models.StatReason:
		return s.reason
	case models.StatDoom:
		return s.doom
	}
	return 0
}

// Max returns the upper bound of stat, or 0 for an unknown stat.
func (s *Stats) Max(stat models.Stat) int {
	switch stat {
	case models.StatStamina:
		return s.maxStamina
	case models.StatReason:
		return s.maxReason
	case models.StatDoom:
		return DoomMax
	}
	return 0
}

// Set writes a clamped value and returns what was stored. It does not
// notify subscribers.
func (s *Stats) Set(stat models.Stat, value int) int {
	v := clampInt(value, 0, s.Max(stat))
	switch stat {
	case models.StatStamina:
		s.stamina = v
	case models.StatReason:
		s.reason = v
	case models.StatDoom:
		s.doom = v
	default:
		return 0
	}
	return v
}

// Modify adds delta to stat, clamps, stores and notifies. Unknown stats are
// left alone and nobody is notified.
func (s *Stats) Modify(stat models.Stat, delta int) (oldValue, newValue int) {
	if !stat.Valid() {
		return 0, 0
	}
	oldValue = s.Get(stat)
	newValue = s.Set(stat, oldValue+delta)

	c := Change{Stat: stat, Old: oldValue, New: newValue}
	for _, fn := range s.observers {
		fn(c)
	}
	return oldValue, newValue
}

// Subscribe registers fn for every subsequent Modify.
func (s *Stats) Subscribe(fn func(Change)) {
	s.observers = append(s.observers, fn)
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
