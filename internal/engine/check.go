package engine

import (
	"math/rand"

	"github.com/tatianab/dread/internal/models"
)

// Roller is the engine's only source of randomness. *rand.Rand satisfies it.
type Roller interface {
	// Intn returns a value in [0, n). n is always positive.
	Intn(n int) int
}

// NewRoller returns a seeded pseudo-random Roller.
func NewRoller(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RollDie draws one value in [1, sides]. Fewer than one side rolls a d1.
func RollDie(r Roller, sides int) int {
	if sides < 1 {
		sides = 1
	}
	return r.Intn(sides) + 1
}

// StatReader is the read side of the stat store.
type StatReader interface {
	Get(stat models.Stat) int
}

// CheckResult is the outcome of one evaluation. Roll is zero unless the
// check was a dice roll.
type CheckResult struct {
	Passed    bool
	Roll      int
	StatValue int
}

// Evaluator resolves stat checks.
type Evaluator struct {
	rng Roller
}

func NewEvaluator(rng Roller) *Evaluator {
	return &Evaluator{rng: rng}
}

// Evaluate decides a check against the current stats. A nil check passes.
// A dice roll draws exactly once.
func (e *Evaluator) Evaluate(check *models.StatCheck, stats StatReader) CheckResult {
	if check == nil {
		return CheckResult{Passed: true}
	}
	value := stats.Get(check.Stat)

	switch check.Kind {
	case models.CheckFixedThreshold:
		return CheckResult{Passed: value >= check.Threshold, StatValue: value}
	case models.CheckDiceRoll:
		roll := RollDie(e.rng, check.DiceSides)
		return CheckResult{Passed: roll+value >= check.Threshold, Roll: roll, StatValue: value}
	}
	return CheckResult{StatValue: value}
}
