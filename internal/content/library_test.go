package content_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/tatianab/dread/internal/content"
	"github.com/tatianab/dread/internal/models"
)

const bellEvent = `
id: bell
text: A bell tolls beneath the water.
options:
  - text: Dive
    check:
      kind: dice_roll
      stat: stamina
      threshold: 12
      dice_sides: 6
    consequences:
      - kind: trigger_event
        next_event: undertow
  - text: Cover your ears
`

const undertowEvent = `
id: undertow
text: The current drags at you.
options:
  - text: Swim
`

const shoreLocation = `
id: shore
name: Grey Shore
description: Salt and rot.
event_pool: [bell, bell, undertow]
turn_cost: 2
`

func newLibrary(files map[string]string) *content.Library {
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return content.NewLibrary(fsys, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoadAndCache(t *testing.T) {
	t.Parallel()
	lib := newLibrary(map[string]string{
		"events/bell.yaml":     bellEvent,
		"events/undertow.yaml": undertowEvent,
		"locations/shore.yaml": shoreLocation,
	})

	ev, ok := lib.LoadEvent("bell")
	if !ok {
		t.Fatal("LoadEvent: expected bell")
	}
	if ev.Options[0].Check.DiceSides != 6 {
		t.Errorf("Expected d6, got d%d", ev.Options[0].Check.DiceSides)
	}
	again, _ := lib.LoadEvent("bell")
	if again != ev {
		t.Error("Expected the cached event to be returned")
	}

	loc, ok := lib.LoadLocation("shore")
	if !ok {
		t.Fatal("LoadLocation: expected shore")
	}
	if loc.TurnCost != 2 || len(loc.EventPool) != 3 || !loc.UnlockedByDefault {
		t.Errorf("Unexpected location %+v", loc)
	}

	lib.ClearCache()
	if fresh, _ := lib.LoadEvent("bell"); fresh == ev {
		t.Error("Expected a fresh decode after ClearCache")
	}
}

func TestMissingAndInvalid(t *testing.T) {
	t.Parallel()
	lib := newLibrary(map[string]string{
		"events/typo.yaml":     "id: typo\ntext: x\noptoins: []\n",
		"events/wrong_id.yaml": "id: other\ntext: x\n",
		"events/bad_kind.yaml": "id: bad_kind\ntext: x\noptions:\n  - text: y\n    consequences:\n      - kind: teleport\n",
	})

	for _, id := range []string{"absent", "typo", "wrong_id", "bad_kind"} {
		if _, ok := lib.LoadEvent(id); ok {
			t.Errorf("LoadEvent(%q): expected failure", id)
		}
	}
	if _, ok := lib.LoadLocation("absent"); ok {
		t.Error("LoadLocation: expected failure")
	}
	if err := lib.Preload("absent", "typo"); err == nil {
		t.Error("Preload: expected error")
	}
}

func TestListAndValidate(t *testing.T) {
	t.Parallel()
	lib := newLibrary(map[string]string{
		"events/bell.yaml":     bellEvent,
		"events/undertow.yaml": undertowEvent,
		"events/notes.txt":     "ignored",
		"locations/shore.yaml": shoreLocation,
	})

	ids, err := lib.ListEvents()
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if strings.Join(ids, ",") != "bell,undertow" {
		t.Errorf("Expected [bell undertow], got %v", ids)
	}
	if err := lib.Validate(); err != nil {
		t.Errorf("Validate: unexpected error: %v", err)
	}

	broken := newLibrary(map[string]string{
		"events/bell.yaml":     bellEvent,
		"locations/shore.yaml": shoreLocation,
	})
	err = broken.Validate()
	if err == nil {
		t.Fatal("Validate: expected error for dangling references")
	}
	if !strings.Contains(err.Error(), `triggers unknown event "undertow"`) || !strings.Contains(err.Error(), `pools unknown event "undertow"`) {
		t.Errorf("Validate: unexpected error: %v", err)
	}
}

func TestListEmptyLibrary(t *testing.T) {
	t.Parallel()
	ids, err := newLibrary(nil).ListLocations()
	if err != nil || len(ids) != 0 {
		t.Errorf("Expected no locations, got %v %v", ids, err)
	}
}

func TestDecodeLocationValidation(t *testing.T) {
	t.Parallel()
	_, err := content.DecodeLocation(strings.NewReader("id: pit\nname: Pit\nturn_cost: 0\n"))
	if err == nil || !strings.Contains(err.Error(), "turn_cost 0") {
		t.Errorf("Expected turn_cost error, got %v", err)
	}

	loc, err := content.DecodeLocation(strings.NewReader("id: pit\nname: Pit\n"))
	if err != nil {
		t.Fatalf("DecodeLocation: %v", err)
	}
	if loc.TurnCost != models.DefaultTurnCost {
		t.Errorf("Expected default turn cost, got %d", loc.TurnCost)
	}
}
