package models

import (
	"fmt"
	"strings"
)

// Stat names a tracked player resource.
type Stat string

const (
	StatStamina Stat = "stamina"
	StatReason  Stat = "reason"
	StatDoom    Stat = "doom"
)

// ParseStat maps a case-insensitive name onto a known stat.
func ParseStat(name string) (Stat, bool) {
	s := Stat(strings.ToLower(strings.TrimSpace(name)))
	return s, s.Valid()
}

func (s Stat) Valid() bool {
	switch s {
	case StatStamina, StatReason, StatDoom:
		return true
	}
	return false
}

// DisplayName returns the title-cased name shown to the player.
func (s Stat) DisplayName() string {
	switch s {
	case StatStamina:
		return "Stamina"
	case StatReason:
		return "Reason"
	case StatDoom:
		return "Doom"
	}
	return "Unknown"
}

// CheckKind selects how a StatCheck is resolved.
type CheckKind string

const (
	CheckFixedThreshold CheckKind = "fixed_threshold"
	CheckDiceRoll       CheckKind = "dice_roll"
)

// StatCheck is a pass/fail gate on a player stat, optionally plus a die.
type StatCheck struct {
	Kind      CheckKind `yaml:"kind"`
	Stat      Stat      `yaml:"stat"`
	Threshold int       `yaml:"threshold"`
	DiceSides int       `yaml:"dice_sides"` // only used by dice_roll
}

// Label renders the check as "Stamina ≥5" or "Reason d20".
func (c StatCheck) Label() string {
	switch c.Kind {
	case CheckFixedThreshold:
		return fmt.Sprintf("%s ≥%d", c.Stat.DisplayName(), c.Threshold)
	case CheckDiceRoll:
		return fmt.Sprintf("%s d%d", c.Stat.DisplayName(), c.DiceSides)
	}
	return c.Stat.DisplayName()
}

// ConsequenceKind discriminates the payload of a Consequence.
type ConsequenceKind string

const (
	ConsequenceStatChange     ConsequenceKind = "stat_change"
	ConsequenceItemGain       ConsequenceKind = "item_gain"
	ConsequenceTriggerEvent   ConsequenceKind = "trigger_event"
	ConsequenceAdvanceMystery ConsequenceKind = "advance_mystery"
)

// Consequence is one atomic state mutation. Only the fields belonging to
// Kind are meaningful.
type Consequence struct {
	Kind            ConsequenceKind `yaml:"kind"`
	Stat            Stat            `yaml:"stat,omitempty"`
	Value           int             `yaml:"value,omitempty"`
	ItemID          string          `yaml:"item,omitempty"`
	NextEventID     string          `yaml:"next_event,omitempty"`
	MysteryProgress int             `yaml:"mystery_progress,omitempty"`
}

// Summary is the one-line description shown after an option resolves.
func (c Consequence) Summary() string {
	switch c.Kind {
	case ConsequenceStatChange:
		return fmt.Sprintf("%s %+d", strings.ToUpper(string(c.Stat)), c.Value)
	case ConsequenceItemGain:
		return "Gained item: " + c.ItemID
	case ConsequenceAdvanceMystery:
		return fmt.Sprintf("Mystery progress +%d", c.MysteryProgress)
	case ConsequenceTriggerEvent:
		return "Another event unfolds..."
	}
	return ""
}

// Option is a single choice within an event.
type Option struct {
	Text         string        `yaml:"text"`
	Check        *StatCheck    `yaml:"check,omitempty"` // nil means automatic pass
	Consequences []Consequence `yaml:"consequences,omitempty"`
}

// Label renders the option for display; index is zero-based and shown
// one-based.
func (o Option) Label(index int) string {
	text := fmt.Sprintf("[%d] %s", index+1, o.Text)
	if o.Check != nil {
		text += " [" + o.Check.Label() + "]"
	}
	return text
}

// Event is a single investigation beat or encounter.
type Event struct {
	ID               string        `yaml:"id"`
	Text             string        `yaml:"text"`
	Image            string        `yaml:"image,omitempty"`
	Options          []Option      `yaml:"options"`
	AutoConsequences []Consequence `yaml:"auto_consequences,omitempty"` // applied the moment the event is shown
}

// Option returns the option at a zero-based index.
func (e *Event) Option(index int) (Option, bool) {
	if index < 0 || index >= len(e.Options) {
		return Option{}, false
	}
	return e.Options[index], true
}

// Labels returns the display label of every option in order.
func (e *Event) Labels() []string {
	labels := make([]string, len(e.Options))
	for i, opt := range e.Options {
		labels[i] = opt.Label(i)
	}
	return labels
}

// Location represents a place the player can investigate.
type Location struct {
	ID                string   `yaml:"id"`
	Name              string   `yaml:"name"`
	Description       string   `yaml:"description"`
	Image             string   `yaml:"image,omitempty"`
	EventPool         []string `yaml:"event_pool"` // duplicates weight the draw
	TurnCost          int      `yaml:"turn_cost"`
	UnlockedByDefault bool     `yaml:"unlocked_by_default"`
}

// Label renders "Name (1 turn)" or "Name (3 turns)".
func (l Location) Label() string {
	unit := "turn"
	if l.TurnCost > 1 {
		unit = "turns"
	}
	return fmt.Sprintf("%s (%d %s)", l.Name, l.TurnCost, unit)
}
