// Package timerestrict parses timerestrict command configuration and runs
// admin commands or the MCP server against a configuration directory.
package timerestrict

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	entrypoint "github.com/louisbranch/timerestrict/internal/platform/cmd"
	"github.com/louisbranch/timerestrict/internal/platform/i18n/catalog"
	"github.com/louisbranch/timerestrict/internal/platform/logging"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/admin"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/app"
	trmcp "github.com/louisbranch/timerestrict/internal/services/timerestrict/mcp"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/observability"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrCommandFailed is returned when an admin command reports failure. The
// command's message has already been written to the output.
var ErrCommandFailed = errors.New("command failed")

// Config holds timerestrict command configuration. Environment variables
// carry the TIMERESTRICT_ prefix.
type Config struct {
	ConfigDir          string `env:"CONFIG_DIR" envDefault:"config"`
	TimeZone           string `env:"TIMEZONE" envDefault:"Local"`
	TickRate           int    `env:"TICK_RATE" envDefault:"20"`
	SweepIntervalTicks int    `env:"SWEEP_INTERVAL_TICKS" envDefault:"600"`
	AuditDBPath        string `env:"AUDIT_DB_PATH"`
	Locale             string `env:"LOCALE" envDefault:"en-US"`
	HealthPort         int    `env:"HEALTH_PORT"`
	MetricsAddr        string `env:"METRICS_ADDR"`
	LogDevelopment     bool   `env:"LOG_DEVELOPMENT"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`

	// MCP serves the admin tools on stdio instead of running one command.
	MCP bool

	// Version is reported to MCP clients and tracing.
	Version string

	// Args are the admin command words, e.g. ["set", "monday", "2300-0700"].
	Args []string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.ConfigDir, "config-dir", cfg.ConfigDir, "Directory holding the settings and bypass files")
	fs.StringVar(&cfg.TimeZone, "timezone", cfg.TimeZone, "IANA time zone used to evaluate the schedule")
	fs.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "Ticks per second driven by the MCP runtime")
	fs.IntVar(&cfg.SweepIntervalTicks, "sweep-interval", cfg.SweepIntervalTicks, "Ticks between enforcement sweeps")
	fs.StringVar(&cfg.AuditDBPath, "audit-db", cfg.AuditDBPath, "SQLite enforcement audit database (empty disables history)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for operator feedback")
	fs.IntVar(&cfg.HealthPort, "health-port", cfg.HealthPort, "gRPC health port served with -mcp (0 disables)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Prometheus listen address served with -mcp (empty disables)")
	fs.BoolVar(&cfg.LogDevelopment, "log-dev", cfg.LogDevelopment, "Use the development logger")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level")
	fs.BoolVar(&cfg.MCP, "mcp", false, "Serve admin tools over MCP on stdio")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()
	if !cfg.MCP && len(cfg.Args) == 0 {
		cfg.Args = []string{"status"}
	}
	return cfg, nil
}

// Run executes the configured admin command, writing feedback to out, or
// serves MCP until ctx ends.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	logger, err := logging.New(cfg.LogDevelopment, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	service := entrypoint.Service{Name: entrypoint.ServiceTimeRestrict, Version: cfg.Version}
	if cfg.MCP {
		service.Name = entrypoint.ServiceMCP
	}
	return entrypoint.RunWithTelemetry(ctx, service, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return run(ctx, cfg, out, logger)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer, logger *zap.Logger) error {
	location, err := app.LoadLocation(cfg.TimeZone)
	if err != nil {
		return err
	}
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load message catalog: %w", err)
	}
	metrics := observability.NewMetrics()

	svc, err := app.Open(ctx, app.ServiceConfig{
		ConfigDir:          cfg.ConfigDir,
		AuditDBPath:        cfg.AuditDBPath,
		Location:           location,
		SweepIntervalTicks: cfg.SweepIntervalTicks,
		Logger:             logger,
		Metrics:            metrics,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := svc.Close(); closeErr != nil {
			logger.Warn("close audit store", zap.Error(closeErr))
		}
	}()

	console := admin.NewConsole(admin.Deps{
		Schedule: svc.Schedule,
		Bypass:   svc.Bypass,
		Checker:  svc.Enforcer,
		Audit:    svc.Audit,
		Printer:  bundle.Printer(cfg.Locale),
		Metrics:  metrics,
		Logger:   logger,
	})

	if cfg.MCP {
		return serveMCP(ctx, cfg, svc, console, logger)
	}

	// The operator running the binary already has file access to the
	// configuration, so the command runs privileged.
	fb := console.Execute(ctx, true, cfg.Args)
	if _, err := fmt.Fprintln(out, fb.Message); err != nil {
		return fmt.Errorf("write feedback: %w", err)
	}
	if !fb.OK {
		return fmt.Errorf("%w: %s", ErrCommandFailed, strings.Join(cfg.Args, " "))
	}
	return nil
}

// serveMCP runs the MCP tools and, alongside them, the tick runtime that
// keeps the restriction gauge and health endpoint current. A standalone
// process hosts no player sessions, so sweeps only evaluate the schedule.
func serveMCP(ctx context.Context, cfg Config, svc *app.Service, console *admin.Console, logger *zap.Logger) error {
	server, err := trmcp.NewServer(trmcp.Deps{
		Console:  console,
		Schedule: svc.Schedule,
		Bypass:   svc.Bypass,
		Checker:  svc.Enforcer,
	}, cfg.Version)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		// The client closing stdio ends the session; stop the runtime too.
		defer cancel()
		return server.Serve(groupCtx)
	})
	group.Go(func() error {
		return app.Run(groupCtx, svc, noSessions, app.RuntimeConfig{
			TickRate:    cfg.TickRate,
			HealthPort:  cfg.HealthPort,
			MetricsAddr: cfg.MetricsAddr,
		})
	})
	logger.Info("serving MCP on stdio", zap.String("config_dir", cfg.ConfigDir))
	return group.Wait()
}

var noSessions = app.SessionListerFunc(func() []app.Session { return nil })
