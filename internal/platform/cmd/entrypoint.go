// Package cmd holds the startup plumbing shared by timerestrict commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"strings"
	"time"

	"github.com/louisbranch/timerestrict/internal/platform/config"
	"github.com/louisbranch/timerestrict/internal/platform/otel"
	"go.uber.org/zap"
)

const defaultShutdownTimeout = 5 * time.Second

// Service identifiers used for telemetry resources and log naming.
const (
	ServiceTimeRestrict = "timerestrict"
	ServiceMCP          = "timerestrict-mcp"
)

// Service names the running binary for telemetry.
type Service struct {
	Name    string
	Version string
}

// RunOptions controls shared entrypoint behavior for commands.
type RunOptions struct {
	// ShutdownTimeout bounds the telemetry flush after run returns.
	ShutdownTimeout time.Duration
	// Logger receives telemetry shutdown failures. Nil discards them.
	Logger *zap.Logger
}

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags. A nil args slice parses as empty.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry installs tracing for svc, executes run, then flushes
// pending spans.
func RunWithTelemetry(ctx context.Context, svc Service, options RunOptions, run func(context.Context) error) error {
	svc.Name = strings.TrimSpace(svc.Name)
	switch {
	case svc.Name == "":
		return errors.New("service name is required")
	case run == nil:
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := otel.Setup(ctx, svc.Name, svc.Version)
	if err != nil {
		return err
	}
	defer flush(shutdown, svc, options)
	return run(ctx)
}

func flush(shutdown func(context.Context) error, svc Service, options RunOptions) {
	timeout := options.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := shutdown(ctx); err != nil && options.Logger != nil {
		options.Logger.Warn("flush telemetry",
			zap.String("service", svc.Name),
			zap.String("version", svc.Version),
			zap.Error(err),
		)
	}
}
