// Package server wires the sheet runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"

	sheetservice "github.com/louisbranch/poolsheet/internal/services/sheet/api/grpc/sheet"
	"github.com/louisbranch/poolsheet/internal/services/sheet/character"
	sheetpostgres "github.com/louisbranch/poolsheet/internal/services/sheet/storage/postgres"
	sheetsqlite "github.com/louisbranch/poolsheet/internal/services/sheet/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Config holds the runtime inputs for a sheet server.
type Config struct {
	Addr   string
	DBPath string
	// DatabaseURL selects PostgreSQL instead of the SQLite file at DBPath.
	DatabaseURL string
	// Tags backs integer tag references; see tags.New.
	Tags []string
	// Logf receives per-call log lines; nil uses log.Printf.
	Logf func(string, ...any)
}

// Server hosts the sheet gRPC API and storage lifecycle.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *sheetsqlite.Store
}

// New creates a configured sheet server listening on the provided port.
func New(port int, dbPath string, tagList []string) (*Server, error) {
	return NewWithConfig(Config{Addr: fmt.Sprintf(":%d", port), DBPath: dbPath, Tags: tagList})
}

// NewWithConfig creates a configured sheet server from cfg.
func NewWithConfig(cfg Config) (*Server, error) {
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	store, err := openSheetStore(cfg)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			sheetservice.LoggingInterceptor(cfg.Logf),
			sheetservice.LocaleInterceptor(),
		),
	)
	sheet := character.NewService(store, character.WithTagList(cfg.Tags))
	healthServer := health.NewServer()
	sheetservice.RegisterSheetServer(grpcServer, sheetservice.NewService(sheet))
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(sheetservice.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a sheet server until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := NewWithConfig(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("sheet server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		return serveResult(<-serveErr)
	case err := <-serveErr:
		return serveResult(err)
	}
}

func serveResult(err error) error {
	if err == nil || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return fmt.Errorf("serve gRPC: %w", err)
}

// Close releases server resources. It is safe to call more than once.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close sheet store: %v", err)
		}
		s.store = nil
	}
}

func openSheetStore(cfg Config) (*sheetsqlite.Store, error) {
	if url := strings.TrimSpace(cfg.DatabaseURL); url != "" {
		store, err := sheetpostgres.Open(context.Background(), url)
		if err != nil {
			return nil, fmt.Errorf("open sheet postgres store: %w", err)
		}
		return store, nil
	}

	path := strings.TrimSpace(cfg.DBPath)
	if path == "" {
		path = filepath.Join("data", "sheet.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sheetsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet sqlite store: %w", err)
	}
	return store, nil
}
