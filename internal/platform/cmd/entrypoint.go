// Package cmd holds the startup plumbing shared by every command.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/taskmate/taskmate-web/internal/platform/config"
	"github.com/taskmate/taskmate-web/internal/platform/otel"
	"github.com/taskmate/taskmate-web/internal/platform/timeouts"
)

// Service names, also used as the telemetry service suffix.
const (
	ServiceWeb         = "web"
	ServiceMCP         = "mcp"
	ServiceFakeBackend = "fakebackend"
)

// ParseConfig loads .env and then environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags over env-derived defaults.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry installs tracing for service, runs fn and flushes spans
// once fn returns.
func RunWithTelemetry(ctx context.Context, service string, fn func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return errors.New("service name is required")
	}
	if fn == nil {
		return errors.New("run function is required")
	}
	shutdown, err := otel.Setup(ctx, "taskmate-"+service)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.TelemetryShutdown)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("%s telemetry shutdown: %v", service, err)
		}
	}()
	return fn(ctx)
}

// Main parses configuration for a command and runs it until SIGINT or
// SIGTERM. Failures exit the process with status 1.
func Main[C any](service string, parse func(*flag.FlagSet, []string) (C, error), run func(context.Context, C) error) {
	log.SetPrefix("[" + strings.ToUpper(service) + "] ")
	cfg, err := parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		log.Fatalf("%s: %v", service, err)
	}
}
