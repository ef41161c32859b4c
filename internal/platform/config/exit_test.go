package config_test

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/louisbranch/poolsheet/internal/platform/config"
)

// TestExitfExitsWithStatusOne runs Exitf in a subprocess since os.Exit
// cannot be observed in-process.
func TestExitfExitsWithStatusOne(t *testing.T) {
	if os.Getenv("POOLSHEET_EXITF_SUBPROCESS") == "1" {
		config.Exitf("roll: %s", "bad seed")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitfExitsWithStatusOne$")
	cmd.Env = append(os.Environ(), "POOLSHEET_EXITF_SUBPROCESS=1")
	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("err = %T %v, want *exec.ExitError", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), "roll: bad seed") {
		t.Fatalf("output = %q, want it to contain %q", out, "roll: bad seed")
	}
}
