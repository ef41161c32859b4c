// Package random provides cryptographic seed generation helpers.
//
// Rolls are deterministic given a seed; this package supplies high-entropy
// seeds when the caller did not pin one.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns the requested seed when set, otherwise a fresh one
// from generate (NewSeed when nil).
func ResolveSeed(requested *int64, generate func() (int64, error)) (int64, error) {
	if requested != nil {
		return *requested, nil
	}
	if generate == nil {
		generate = NewSeed
	}
	seed, err := generate()
	if err != nil {
		return 0, fmt.Errorf("generate seed: %w", err)
	}
	return seed, nil
}
