// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"os"

	entrypoint "github.com/taskmate/taskmate-web/internal/platform/cmd"
	"github.com/taskmate/taskmate-web/internal/platform/logging"
	mcpservice "github.com/taskmate/taskmate-web/internal/services/mcp/service"
	"github.com/taskmate/taskmate-web/internal/taskmate"
	"go.uber.org/zap"
)

// Config holds MCP command configuration.
type Config struct {
	APIBaseURL string `env:"TASKMATE_WEB_API_URL"       envDefault:"http://localhost:3001"`
	HTTPAddr   string `env:"TASKMATE_MCP_HTTP_ADDR"     envDefault:"localhost:8081"`
	Transport  string `env:"TASKMATE_MCP_TRANSPORT"     envDefault:"stdio"`
	Email      string `env:"TASKMATE_MCP_EMAIL"`
	Password   string `env:"TASKMATE_MCP_PASSWORD"`
	Log        logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "TaskMate REST backend base URL")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.Email, "email", cfg.Email, "Backend account email the tools act as")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		// stdout carries the stdio protocol, so logs always go to stderr.
		logger := logging.NewWithWriter(cfg.Log, os.Stderr)
		defer func() { _ = logger.Sync() }()

		client, err := taskmate.New(cfg.APIBaseURL, taskmate.WithLogger(logger.Named("taskmate")))
		if err != nil {
			return err
		}
		serviceCfg := mcpservice.Config{
			Transport: mcpservice.TransportKind(cfg.Transport),
			HTTPAddr:  cfg.HTTPAddr,
			Email:     cfg.Email,
			Password:  cfg.Password,
			Logger:    logger,
		}
		logger.Info("mcp starting", zap.String("transport", cfg.Transport), zap.String("api_url", client.BaseURL()))
		return mcpservice.New(client, serviceCfg).Run(ctx, serviceCfg)
	})
}
