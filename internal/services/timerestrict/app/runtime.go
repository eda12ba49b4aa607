package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/timerestrict/internal/platform/logging"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/observability"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/storage"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/storage/file"
	auditsqlite "github.com/louisbranch/timerestrict/internal/services/timerestrict/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServiceName is the gRPC health service reported by Run.
const HealthServiceName = "timerestrict.runtime"

const metricsShutdownTimeout = 5 * time.Second

// ServiceConfig locates persisted state and wires optional collaborators.
type ServiceConfig struct {
	ConfigDir          string
	AuditDBPath        string
	Location           *time.Location
	SweepIntervalTicks int
	Clock              Clock
	Logger             *zap.Logger
	Metrics            *observability.Metrics
}

// Service bundles the loaded state and the enforcer built over it.
type Service struct {
	Schedule *ScheduleState
	Bypass   *BypassList
	Enforcer *Enforcer
	// Audit is nil when no audit database is configured.
	Audit   storage.AuditStore
	Clock   Clock
	Metrics *observability.Metrics
	Logger  *zap.Logger

	closeAudit func() error
}

// Open loads the settings and bypass files from cfg.ConfigDir, opens the
// audit store when configured and builds the enforcer.
func Open(ctx context.Context, cfg ServiceConfig) (*Service, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.OrNop(cfg.Logger)
	if strings.TrimSpace(cfg.ConfigDir) == "" {
		return nil, fmt.Errorf("config dir is required")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = RealClock{Location: cfg.Location}
	}

	svc := &Service{
		Schedule: LoadScheduleState(file.NewSettingsFile(cfg.ConfigDir, logger), logger),
		Bypass:   LoadBypassList(file.NewBypassFile(cfg.ConfigDir), logger),
		Clock:    clock,
		Metrics:  cfg.Metrics,
		Logger:   logger,
	}

	if path := strings.TrimSpace(cfg.AuditDBPath); path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create audit storage dir: %w", err)
			}
		}
		store, err := auditsqlite.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open audit sqlite store: %w", err)
		}
		svc.Audit = store
		svc.closeAudit = store.Close
	}

	svc.Enforcer = NewEnforcer(svc.Schedule, svc.Bypass, EnforcerConfig{
		Clock:              clock,
		SweepIntervalTicks: cfg.SweepIntervalTicks,
		Logger:             logger,
		Metrics:            cfg.Metrics,
		Audit:              svc.Audit,
	})
	return svc, nil
}

// Close releases the audit store.
func (s *Service) Close() error {
	if s == nil || s.closeAudit == nil {
		return nil
	}
	return s.closeAudit()
}

// RuntimeConfig controls the standalone tick driver.
type RuntimeConfig struct {
	// TickRate is ticks per second; zero means DefaultTickRate.
	TickRate int
	// HealthPort serves gRPC health when positive.
	HealthPort int
	// MetricsAddr serves /metrics when set.
	MetricsAddr string
}

// Run drives svc.Enforcer.Tick at the configured rate for hosts without a
// game loop of their own, serving health and metrics alongside. It returns
// when ctx is cancelled.
func Run(ctx context.Context, svc *Service, sessions SessionLister, cfg RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if svc == nil || svc.Enforcer == nil {
		return fmt.Errorf("service is required")
	}
	if sessions == nil {
		return fmt.Errorf("session lister is required")
	}
	logger := logging.OrNop(svc.Logger)

	if cfg.HealthPort > 0 {
		stop, err := serveHealth(cfg.HealthPort, logger)
		if err != nil {
			return err
		}
		defer stop()
	}
	if strings.TrimSpace(cfg.MetricsAddr) != "" {
		stop, err := serveMetrics(cfg.MetricsAddr, svc.Metrics, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	ticker := time.NewTicker(tickPeriod(cfg.TickRate))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			svc.Enforcer.Tick(ctx, sessions)
		}
	}
}

func serveHealth(port int, logger *zap.Logger) (func(), error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen on health port %d: %w", port, err)
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(HealthServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- grpcServer.Serve(listener)
	}()
	logger.Info("health server listening", zap.String("addr", listener.Addr().String()))
	return func() {
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		<-serveErr
	}, nil
}

func serveMetrics(addr string, metrics *observability.Metrics, logger *zap.Logger) (func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on metrics addr %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()
	logger.Info("metrics server listening", zap.String("addr", listener.Addr().String()))
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown metrics server", zap.Error(err))
		}
		if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", zap.Error(err))
		}
	}, nil
}

func tickPeriod(rate int) time.Duration {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}
