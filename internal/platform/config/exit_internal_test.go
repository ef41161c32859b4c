package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"testing"
)

func TestExitOnError(t *testing.T) {
	tests := []struct {
		name     string
		step     string
		err      error
		wantCode int
		wantOut  string
	}{
		{name: "nil", err: nil, wantCode: -1},
		{name: "help", step: "parse flags", err: fmt.Errorf("wrapped: %w", flag.ErrHelp), wantCode: 0},
		{name: "step", step: "parse flags", err: errors.New("bad port"), wantCode: 1, wantOut: "parse flags: bad port\n"},
		{name: "no step", err: errors.New("boom"), wantCode: 1, wantOut: "boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code := -1
			t.Cleanup(restoreExit())
			stderr, osExit = &out, func(c int) { code = c }

			ExitOnError(tt.step, tt.err)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d", code, tt.wantCode)
			}
			if out.String() != tt.wantOut {
				t.Fatalf("output = %q, want %q", out.String(), tt.wantOut)
			}
		})
	}
}

func restoreExit() func() {
	prevOut, prevExit := stderr, osExit
	return func() {
		stderr, osExit = prevOut, prevExit
	}
}
