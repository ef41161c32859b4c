// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// GRPCDial caps the wait for a gRPC peer to report healthy when the caller
// sets no timeout of its own.
const GRPCDial = 2 * time.Second

// Shutdown limits how long a command waits to flush telemetry on exit.
const Shutdown = 5 * time.Second
