package player

import (
	"math/rand"
	"testing"

	"github.com/tatianab/dread/internal/models"
)

func TestModifyClampsStamina(t *testing.T) {
	s := NewStats(10, 10)

	oldV, newV := s.Modify(models.StatStamina, -3)
	if oldV != 10 || newV != 7 {
		t.Errorf("Expected 10 -> 7, got %d -> %d", oldV, newV)
	}
	oldV, newV = s.Modify(models.StatStamina, -10)
	if oldV != 7 || newV != 0 {
		t.Errorf("Expected 7 -> 0, got %d -> %d", oldV, newV)
	}
}

func TestModifyStaysInRange(t *testing.T) {
	s := NewStats(8, 12)
	r := rand.New(rand.NewSource(7))
	stats := []models.Stat{models.StatStamina, models.StatReason, models.StatDoom}

	for i := 0; i < 2000; i++ {
		stat := stats[r.Intn(len(stats))]
		delta := r.Intn(61) - 30
		before := s.Get(stat)
		_, got := s.Modify(stat, delta)
		if got < 0 || got > s.Max(stat) {
			t.Fatalf("%s out of range after %+d: %d (max %d)", stat, delta, got, s.Max(stat))
		}
		if before+delta == got {
			// Unclamped moves are reversible.
			if _, back := s.Modify(stat, -delta); back != before {
				t.Fatalf("%s: expected %+d then %+d to return to %d, got %d", stat, delta, -delta, before, back)
			}
		}
	}
}

func TestDoomCeiling(t *testing.T) {
	s := NewStats(10, 10)
	s.Set(models.StatDoom, 90)
	if _, got := s.Modify(models.StatDoom, 15); got != DoomMax {
		t.Errorf("Expected doom %d, got %d", DoomMax, got)
	}
	if got := s.Set(models.StatDoom, 999); got != DoomMax {
		t.Errorf("Expected Set to clamp to %d, got %d", DoomMax, got)
	}
}

func TestModifyNotifiesInOrder(t *testing.T) {
	s := NewStats(10, 10)
	var calls []string
	var seen Change
	s.Subscribe(func(c Change) { calls = append(calls, "first"); seen = c })
	s.Subscribe(func(Change) { calls = append(calls, "second") })

	s.Modify(models.StatReason, -4)

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("Expected [first second], got %v", calls)
	}
	if seen != (Change{Stat: models.StatReason, Old: 10, New: 6}) {
		t.Errorf("Unexpected change %+v", seen)
	}

	s.Set(models.StatReason, 2)
	if len(calls) != 2 {
		t.Errorf("Expected Set to stay silent, got %d calls", len(calls))
	}
}

func TestUnknownStat(t *testing.T) {
	s := NewStats(10, 10)
	notified := false
	s.Subscribe(func(Change) { notified = true })

	if got := s.Get("luck"); got != 0 {
		t.Errorf("Expected 0 for unknown stat, got %d", got)
	}
	if oldV, newV := s.Modify("luck", 5); oldV != 0 || newV != 0 {
		t.Errorf("Expected no-op, got %d -> %d", oldV, newV)
	}
	if notified {
		t.Error("Expected no notification for unknown stat")
	}
}

func TestStateCollections(t *testing.T) {
	st := NewState(10, 10)

	st.AdvanceMystery(3)
	if len(st.MysteryProgress) != 0 {
		t.Errorf("Expected no progress without a mystery, got %v", st.MysteryProgress)
	}

	st.BeginMystery("drowned_bell")
	st.BeginMystery("pale_orchard")
	st.BeginMystery("drowned_bell")
	st.AdvanceMystery(2)
	st.AdvanceMystery(1)
	if got := st.MysteryProgress["drowned_bell"]; got != 3 {
		t.Errorf("Expected progress 3, got %d", got)
	}
	if len(st.ActiveMysteries) != 2 {
		t.Errorf("Expected 2 active mysteries, got %v", st.ActiveMysteries)
	}

	st.AddItem("candle")
	st.AddItem("candle")
	if len(st.Inventory) != 2 {
		t.Errorf("Expected duplicate items to be kept, got %v", st.Inventory)
	}

	st.QueueEvent("a")
	st.QueueEvent("b")
	if id, _ := st.NextEvent(); id != "a" {
		t.Errorf("Expected a first, got %s", id)
	}

	st.Stats.Modify(models.StatDoom, 40)
	st.Reset()
	if st.Stats.Get(models.StatDoom) != 0 || len(st.Inventory) != 0 || len(st.EventQueue) != 0 || len(st.ActiveMysteries) != 0 {
		t.Errorf("Expected a clean state after reset, got %+v", st)
	}
}
