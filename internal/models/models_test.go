package models

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const cellarEventYAML = `
id: flooded_cellar
text: Black water laps at the cellar steps.
options:
  - text: Wade in
    check:
      stat: stamina
      threshold: 6
    consequences:
      - value: -2
      - kind: item_gain
        item: rusted_key
  - text: Listen to the water
    check:
      kind: dice_roll
      stat: reason
      threshold: 15
  - text: Leave
auto_consequences:
  - kind: stat_change
    stat: doom
    value: 3
  - kind: advance_mystery
`

func TestEventYAMLDefaults(t *testing.T) {
	var ev Event
	if err := yaml.Unmarshal([]byte(cellarEventYAML), &ev); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}
	if err := ev.Validate(); err != nil {
		t.Fatalf("Expected valid event, got %v", err)
	}

	wade := ev.Options[0]
	if wade.Check.Kind != CheckFixedThreshold {
		t.Errorf("Expected default kind %s, got %s", CheckFixedThreshold, wade.Check.Kind)
	}
	if wade.Check.DiceSides != DefaultDiceSides {
		t.Errorf("Expected default dice sides %d, got %d", DefaultDiceSides, wade.Check.DiceSides)
	}
	if got := wade.Consequences[0]; got.Kind != ConsequenceStatChange || got.Stat != StatStamina || got.Value != -2 {
		t.Errorf("Expected stamina -2 stat change, got %+v", got)
	}

	listen := ev.Options[1]
	if listen.Check.Kind != CheckDiceRoll || listen.Check.DiceSides != 20 {
		t.Errorf("Expected d20 roll, got %+v", listen.Check)
	}

	if ev.Options[2].Check != nil {
		t.Errorf("Expected no check on Leave, got %+v", ev.Options[2].Check)
	}
	if got := ev.AutoConsequences[1].MysteryProgress; got != DefaultMysteryProgress {
		t.Errorf("Expected mystery progress %d, got %d", DefaultMysteryProgress, got)
	}
}

func TestLocationYAMLDefaults(t *testing.T) {
	var loc Location
	data := "id: chapel\nname: Ruined Chapel\nevent_pool: [a, a, b]\n"
	if err := yaml.Unmarshal([]byte(data), &loc); err != nil {
		t.Fatalf("Failed to unmarshal location: %v", err)
	}
	if loc.TurnCost != 1 || !loc.UnlockedByDefault {
		t.Errorf("Expected turn cost 1 and unlocked, got %d and %v", loc.TurnCost, loc.UnlockedByDefault)
	}

	data = "id: vault\nname: Vault\nturn_cost: 3\nunlocked_by_default: false\n"
	if err := yaml.Unmarshal([]byte(data), &loc); err != nil {
		t.Fatalf("Failed to unmarshal location: %v", err)
	}
	if loc.TurnCost != 3 || loc.UnlockedByDefault {
		t.Errorf("Expected turn cost 3 and locked, got %d and %v", loc.TurnCost, loc.UnlockedByDefault)
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"fixed", Option{Text: "Wade in", Check: &StatCheck{Kind: CheckFixedThreshold, Stat: StatStamina, Threshold: 6}}.Label(0), "[1] Wade in [Stamina ≥6]"},
		{"dice", Option{Text: "Listen", Check: &StatCheck{Kind: CheckDiceRoll, Stat: StatReason, DiceSides: 20}}.Label(1), "[2] Listen [Reason d20]"},
		{"plain", Option{Text: "Leave"}.Label(2), "[3] Leave"},
		{"one turn", Location{Name: "Chapel", TurnCost: 1}.Label(), "Chapel (1 turn)"},
		{"many turns", Location{Name: "Vault", TurnCost: 2}.Label(), "Vault (2 turns)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, tc.got)
			}
		})
	}
}

func TestConsequenceSummary(t *testing.T) {
	tests := []struct {
		c    Consequence
		want string
	}{
		{Consequence{Kind: ConsequenceStatChange, Stat: StatStamina, Value: 1}, "STAMINA +1"},
		{Consequence{Kind: ConsequenceStatChange, Stat: StatDoom, Value: -4}, "DOOM -4"},
		{Consequence{Kind: ConsequenceItemGain, ItemID: "lantern"}, "Gained item: lantern"},
		{Consequence{Kind: ConsequenceAdvanceMystery, MysteryProgress: 2}, "Mystery progress +2"},
		{Consequence{Kind: ConsequenceTriggerEvent, NextEventID: "x"}, "Another event unfolds..."},
	}
	for _, tc := range tests {
		if got := tc.c.Summary(); got != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, got)
		}
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	ev := Event{
		Options: []Option{
			{Check: &StatCheck{Kind: "coin_flip", Stat: "luck"}},
		},
		AutoConsequences: []Consequence{{Kind: ConsequenceItemGain}},
	}
	err := ev.Validate()
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	for _, want := range []string{"id is required", "options[0].text", "unknown kind \"coin_flip\"", "unknown stat \"luck\"", "auto_consequences[0]: item is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %q, got %v", want, err)
		}
	}
}

func TestParseStat(t *testing.T) {
	if s, ok := ParseStat(" Reason "); !ok || s != StatReason {
		t.Errorf("Expected reason, got %q %v", s, ok)
	}
	if _, ok := ParseStat("luck"); ok {
		t.Error("Expected luck to be unknown")
	}
}
