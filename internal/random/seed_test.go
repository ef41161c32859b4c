package random

import (
	"errors"
	"testing"
)

func TestResolveSeedUsesRequested(t *testing.T) {
	requested := int64(9)
	seed, err := ResolveSeed(&requested, func() (int64, error) {
		t.Fatal("generator should not run")
		return 0, nil
	})
	if err != nil || seed != 9 {
		t.Fatalf("ResolveSeed = (%d, %v), want (9, nil)", seed, err)
	}
}

func TestResolveSeedGenerates(t *testing.T) {
	seed, err := ResolveSeed(nil, func() (int64, error) { return 77, nil })
	if err != nil || seed != 77 {
		t.Fatalf("ResolveSeed = (%d, %v), want (77, nil)", seed, err)
	}
}

func TestResolveSeedWrapsGeneratorError(t *testing.T) {
	boom := errors.New("boom")
	_, err := ResolveSeed(nil, func() (int64, error) { return 0, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("ResolveSeed error = %v, want %v", err, boom)
	}
}

func TestNewSeed(t *testing.T) {
	if _, err := NewSeed(); err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	if _, err := ResolveSeed(nil, nil); err != nil {
		t.Fatalf("ResolveSeed default generator: %v", err)
	}
}
