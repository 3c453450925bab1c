package engine

import (
	"math"
	"testing"

	"github.com/tatianab/dread/internal/models"
	"github.com/tatianab/dread/internal/player"
)

func TestEvaluateNilCheckPasses(t *testing.T) {
	e := NewEvaluator(&scriptedRoller{values: []int{0}})
	if res := e.Evaluate(nil, player.NewStats(10, 10)); !res.Passed {
		t.Error("Expected a missing check to pass")
	}
}

func TestFixedThresholdBoundary(t *testing.T) {
	stats := player.NewStats(10, 10)
	e := NewEvaluator(&scriptedRoller{values: []int{0}})
	check := &models.StatCheck{Kind: models.CheckFixedThreshold, Stat: models.StatReason, Threshold: 5}

	for v := 0; v <= 10; v++ {
		stats.Set(models.StatReason, v)
		res := e.Evaluate(check, stats)
		if want := v >= 5; res.Passed != want {
			t.Errorf("reason=%d: expected passed=%v, got %v", v, want, res.Passed)
		}
		if res.Roll != 0 {
			t.Errorf("reason=%d: expected no roll, got %d", v, res.Roll)
		}
	}
}

func TestDiceRollDrawsOnce(t *testing.T) {
	stats := player.NewStats(10, 10)
	stats.Set(models.StatStamina, 4)
	r := &scriptedRoller{values: []int{9, 0}}
	e := NewEvaluator(r)
	check := &models.StatCheck{Kind: models.CheckDiceRoll, Stat: models.StatStamina, Threshold: 14, DiceSides: 20}

	res := e.Evaluate(check, stats)
	if r.calls != 1 {
		t.Fatalf("Expected exactly one draw, got %d", r.calls)
	}
	if res.Roll != 10 || !res.Passed {
		t.Errorf("Expected roll 10 to pass 10+4 >= 14, got %+v", res)
	}

	res = e.Evaluate(check, stats)
	if res.Roll != 1 || res.Passed {
		t.Errorf("Expected roll 1 to fail, got %+v", res)
	}
}

func TestDiceRollPassRate(t *testing.T) {
	const trials = 20000
	tests := []struct {
		sides, threshold, value int
	}{
		{20, 15, 5},
		{6, 8, 3},
		{20, 40, 10},
		{6, 2, 5},
	}
	for _, tc := range tests {
		stats := player.NewStats(10, 10)
		stats.Set(models.StatReason, tc.value)
		e := NewEvaluator(NewRoller(42))
		check := &models.StatCheck{Kind: models.CheckDiceRoll, Stat: models.StatReason, Threshold: tc.threshold, DiceSides: tc.sides}

		passed := 0
		for i := 0; i < trials; i++ {
			res := e.Evaluate(check, stats)
			if res.Roll < 1 || res.Roll > tc.sides {
				t.Fatalf("roll %d outside [1, %d]", res.Roll, tc.sides)
			}
			if res.Passed {
				passed++
			}
		}

		n := float64(tc.sides)
		want := math.Min(1, math.Max(0, (n-float64(tc.threshold-tc.value)+1)/n))
		got := float64(passed) / trials
		if math.Abs(got-want) > 0.02 {
			t.Errorf("d%d vs %d with stat %d: expected pass rate ~%.3f, got %.3f", tc.sides, tc.threshold, tc.value, want, got)
		}
	}
}

func TestUnknownStatReadsZero(t *testing.T) {
	e := NewEvaluator(&scriptedRoller{values: []int{0}})
	check := &models.StatCheck{Kind: models.CheckFixedThreshold, Stat: "luck", Threshold: 1}
	res := e.Evaluate(check, player.NewStats(10, 10))
	if res.Passed || res.StatValue != 0 {
		t.Errorf("Expected unknown stat to read 0 and fail, got %+v", res)
	}
}

func TestRollDieGuardsSides(t *testing.T) {
	if got := RollDie(&scriptedRoller{values: []int{5}}, 0); got != 1 {
		t.Errorf("Expected a d0 to roll 1, got %d", got)
	}
}
