// Package dice rolls the d6 pools that the evaluation engine consumes.
package dice

import (
	"math/rand"
	"strconv"

	apperrors "github.com/louisbranch/poolsheet/internal/platform/errors"
)

const (
	// Sides is the die size used by every pool.
	Sides = 6
	// MaxPool bounds the number of dice in one roll.
	MaxPool = 20
)

// ErrMissingDice indicates a roll request had no dice specified.
var ErrMissingDice = apperrors.New(apperrors.CodeDiceMissing, "at least one die must be provided")

// ErrInvalidDiceSpec indicates a pool size outside 1..MaxPool.
var ErrInvalidDiceSpec = apperrors.WithMetadata(apperrors.CodeDiceInvalidSpec, "pool size out of range", map[string]string{
	"Max": strconv.Itoa(MaxPool),
})

// Request describes a pool to roll.
type Request struct {
	Count int
	Seed  int64
}

// Pool is a rolled set of d6 values in roll order.
type Pool struct {
	Values []int
	Seed   int64
}

// RollPool rolls Count d6.
//
// RollPool is deterministic with respect to Seed: the same request always
// produces the same values, in the same order.
func RollPool(request Request) (Pool, error) {
	if request.Count == 0 {
		return Pool{}, ErrMissingDice
	}
	if request.Count < 0 || request.Count > MaxPool {
		return Pool{}, ErrInvalidDiceSpec
	}

	rng := rand.New(rand.NewSource(request.Seed))
	values := make([]int, request.Count)
	for i := range values {
		values[i] = rollDie(rng)
	}
	return Pool{Values: values, Seed: request.Seed}, nil
}

// Reroll returns a copy of values with the die at index rolled again.
func Reroll(values []int, index int, seed int64) ([]int, error) {
	if index < 0 || index >= len(values) {
		return nil, apperrors.WithMetadata(apperrors.CodeDiceInvalidSpec, "reroll index out of range", map[string]string{
			"Max":   strconv.Itoa(len(values)),
			"Index": strconv.Itoa(index),
		})
	}
	out := append([]int(nil), values...)
	out[index] = RollOne(seed)
	return out, nil
}

// RollOne rolls a single d6.
func RollOne(seed int64) int {
	return rollDie(rand.New(rand.NewSource(seed)))
}

// rollDie rolls one d6.
func rollDie(rng *rand.Rand) int {
	return rng.Intn(Sides) + 1
}
