package dice

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

// TestRollPoolIsDeterministic ensures the same seed always rolls the same pool.
func TestRollPoolIsDeterministic(t *testing.T) {
	seed := int64(42)
	rng := rand.New(rand.NewSource(seed))
	want := []int{rng.Intn(6) + 1, rng.Intn(6) + 1, rng.Intn(6) + 1}

	first, err := RollPool(Request{Count: 3, Seed: seed})
	if err != nil {
		t.Fatalf("RollPool returned error: %v", err)
	}
	second, err := RollPool(Request{Count: 3, Seed: seed})
	if err != nil {
		t.Fatalf("RollPool returned error: %v", err)
	}
	if !reflect.DeepEqual(first.Values, want) {
		t.Fatalf("values = %v, want %v", first.Values, want)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("rolls differ: %v vs %v", first, second)
	}
	if first.Seed != seed {
		t.Fatalf("seed = %d, want %d", first.Seed, seed)
	}
}

// TestRollPoolValuesInRange ensures every die lands on a d6 face.
func TestRollPoolValuesInRange(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		pool, err := RollPool(Request{Count: MaxPool, Seed: seed})
		if err != nil {
			t.Fatalf("RollPool returned error: %v", err)
		}
		for _, v := range pool.Values {
			if v < 1 || v > Sides {
				t.Fatalf("seed %d rolled %d", seed, v)
			}
		}
	}
}

// TestRollPoolRejectsInvalidCounts ensures empty and oversized pools are rejected.
func TestRollPoolRejectsInvalidCounts(t *testing.T) {
	if _, err := RollPool(Request{Seed: 1}); !errors.Is(err, ErrMissingDice) {
		t.Fatalf("RollPool error = %v, want %v", err, ErrMissingDice)
	}
	for _, count := range []int{-1, MaxPool + 1} {
		if _, err := RollPool(Request{Count: count, Seed: 1}); !errors.Is(err, ErrInvalidDiceSpec) {
			t.Fatalf("RollPool(%d) error = %v, want %v", count, err, ErrInvalidDiceSpec)
		}
	}
}

// TestReroll ensures only the chosen die changes.
func TestReroll(t *testing.T) {
	values := []int{2, 3, 4}
	got, err := Reroll(values, 1, 7)
	if err != nil {
		t.Fatalf("Reroll returned error: %v", err)
	}
	if got[0] != 2 || got[2] != 4 || got[1] != RollOne(7) {
		t.Fatalf("Reroll = %v", got)
	}
	if values[1] != 3 {
		t.Fatal("Reroll mutated its input")
	}
	if _, err := Reroll(values, 3, 7); !errors.Is(err, ErrInvalidDiceSpec) {
		t.Fatalf("Reroll error = %v, want %v", err, ErrInvalidDiceSpec)
	}
}
