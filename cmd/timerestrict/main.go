// Package main runs timerestrict admin commands and the MCP admin server.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	timerestrictcmd "github.com/louisbranch/timerestrict/internal/cmd/timerestrict"
	"github.com/louisbranch/timerestrict/internal/platform/config"
)

var version = "dev"

func main() {
	cfg, err := timerestrictcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	cfg.Version = version
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := timerestrictcmd.Run(ctx, cfg, os.Stdout); err != nil {
		stop()
		if errors.Is(err, timerestrictcmd.ErrCommandFailed) {
			os.Exit(1)
		}
		config.Exitf("timerestrict: %v", err)
	}
}
