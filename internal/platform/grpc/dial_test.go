package grpc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

func TestDialWaitsForHealth(t *testing.T) {
	addr, _ := startHealthServer(t, grpc_health_v1.HealthCheckResponse_SERVING)

	conn, err := Dial(context.Background(), addr, DialConfig{Timeout: 2 * time.Second, Service: testService})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close conn: %v", err)
	}
}

func TestDialReportsHealthStage(t *testing.T) {
	addr, _ := startHealthServer(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	start := time.Now()
	conn, err := Dial(context.Background(), addr, DialConfig{Timeout: 200 * time.Millisecond})
	if err == nil {
		_ = conn.Close()
		t.Fatal("expected health error")
	}
	if conn != nil {
		t.Fatal("expected nil connection on error")
	}
	var dialErr *DialError
	if !errors.As(err, &dialErr) {
		t.Fatalf("err = %T, want *DialError", err)
	}
	if dialErr.Stage != DialStageHealth {
		t.Fatalf("stage = %q, want %q", dialErr.Stage, DialStageHealth)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("dial took %v, want timeout near 200ms", elapsed)
	}
}

func TestDialRejectsEmptyAddress(t *testing.T) {
	_, err := Dial(context.Background(), "  ", DialConfig{})
	var dialErr *DialError
	if !errors.As(err, &dialErr) || dialErr.Stage != DialStageConnect {
		t.Fatalf("err = %v, want connect stage error", err)
	}
}

func TestDialErrorMessage(t *testing.T) {
	err := &DialError{Stage: DialStageHealth, Addr: "localhost:1", Err: errors.New("boom")}
	if got := err.Error(); !strings.Contains(got, "health") || !strings.Contains(got, "localhost:1") {
		t.Fatalf("Error() = %q, want stage and address", got)
	}
	var nilErr *DialError
	if nilErr.Error() == "" || nilErr.Unwrap() != nil {
		t.Fatal("nil DialError should have a message and no cause")
	}
}
