package models

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Defaults applied to fields a content file leaves out.
const (
	DefaultCheckThreshold  = 5
	DefaultDiceSides       = 20
	DefaultMysteryProgress = 1
	DefaultTurnCost        = 1
)

// UnmarshalYAML decodes a check on top of the content defaults.
func (c *StatCheck) UnmarshalYAML(node *yaml.Node) error {
	type raw StatCheck
	r := raw{
		Kind:      CheckFixedThreshold,
		Stat:      StatStamina,
		Threshold: DefaultCheckThreshold,
		DiceSides: DefaultDiceSides,
	}
	if err := node.Decode(&r); err != nil {
		return err
	}
	*c = StatCheck(r)
	return nil
}

// UnmarshalYAML decodes a consequence on top of the content defaults.
func (c *Consequence) UnmarshalYAML(node *yaml.Node) error {
	type raw Consequence
	r := raw{
		Kind:            ConsequenceStatChange,
		Stat:            StatStamina,
		MysteryProgress: DefaultMysteryProgress,
	}
	if err := node.Decode(&r); err != nil {
		return err
	}
	*c = Consequence(r)
	return nil
}

// UnmarshalYAML decodes a location on top of the content defaults. Locations
// are unlocked unless the file says otherwise.
func (l *Location) UnmarshalYAML(node *yaml.Node) error {
	type raw Location
	r := raw{
		TurnCost:          DefaultTurnCost,
		UnlockedByDefault: true,
	}
	if err := node.Decode(&r); err != nil {
		return err
	}
	*l = Location(r)
	return nil
}

// Validate reports every structural problem in the event at once.
func (e *Event) Validate() error {
	var errs []error
	if e.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	for i, opt := range e.Options {
		if opt.Text == "" {
			errs = append(errs, fmt.Errorf("options[%d].text is required", i))
		}
		if opt.Check != nil {
			if err := opt.Check.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("options[%d].check: %w", i, err))
			}
		}
		for j, c := range opt.Consequences {
			if err := c.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("options[%d].consequences[%d]: %w", i, j, err))
			}
		}
	}
	for i, c := range e.AutoConsequences {
		if err := c.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("auto_consequences[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (c StatCheck) Validate() error {
	var errs []error
	switch c.Kind {
	case CheckFixedThreshold:
	case CheckDiceRoll:
		if c.DiceSides < 1 {
			errs = append(errs, fmt.Errorf("dice_sides %d must be at least 1", c.DiceSides))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown kind %q", c.Kind))
	}
	if !c.Stat.Valid() {
		errs = append(errs, fmt.Errorf("unknown stat %q", c.Stat))
	}
	return errors.Join(errs...)
}

func (c Consequence) Validate() error {
	switch c.Kind {
	case ConsequenceStatChange:
		if !c.Stat.Valid() {
			return fmt.Errorf("unknown stat %q", c.Stat)
		}
	case ConsequenceItemGain:
		if c.ItemID == "" {
			return errors.New("item is required")
		}
	case ConsequenceTriggerEvent:
		if c.NextEventID == "" {
			return errors.New("next_event is required")
		}
	case ConsequenceAdvanceMystery:
	default:
		return fmt.Errorf("unknown kind %q", c.Kind)
	}
	return nil
}

// Validate reports every structural problem in the location at once.
func (l *Location) Validate() error {
	var errs []error
	if l.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if l.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if l.TurnCost < 1 {
		errs = append(errs, fmt.Errorf("turn_cost %d must be at least 1", l.TurnCost))
	}
	for i, id := range l.EventPool {
		if id == "" {
			errs = append(errs, fmt.Errorf("event_pool[%d] is empty", i))
		}
	}
	return errors.Join(errs...)
}
