package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

var (
	stderr io.Writer = os.Stderr
	osExit           = os.Exit
)

// Exitf writes a formatted message to stderr and exits with status 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	osExit(1)
}

// ExitOnError does nothing for a nil err. A help request exits 0 without
// output; anything else is reported as "step: err" with status 1.
func ExitOnError(step string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		osExit(0)
		return
	}
	if step == "" {
		Exitf("%v", err)
		return
	}
	Exitf("%s: %v", step, err)
}
