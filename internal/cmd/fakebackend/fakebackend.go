// Package fakebackend parses flags for the in-memory TaskMate REST backend
// used in local development.
package fakebackend

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	entrypoint "github.com/taskmate/taskmate-web/internal/platform/cmd"
	"github.com/taskmate/taskmate-web/internal/platform/logging"
	"github.com/taskmate/taskmate-web/internal/platform/timeouts"
	"github.com/taskmate/taskmate-web/internal/testkit/fakebackend"
	"go.uber.org/zap"
)

// Config holds the fake backend command configuration.
type Config struct {
	Addr           string        `env:"TASKMATE_FAKE_BACKEND_ADDR"            envDefault:"localhost:3001"`
	Secret         string        `env:"TASKMATE_FAKE_BACKEND_SECRET"`
	TokenTTL       time.Duration `env:"TASKMATE_FAKE_BACKEND_TOKEN_TTL"       envDefault:"24h"`
	AllowedOrigins []string      `env:"TASKMATE_FAKE_BACKEND_ALLOWED_ORIGINS" envSeparator:","`
	SeedName       string        `env:"TASKMATE_FAKE_BACKEND_SEED_NAME"       envDefault:"Demo User"`
	SeedEmail      string        `env:"TASKMATE_FAKE_BACKEND_SEED_EMAIL"`
	SeedPassword   string        `env:"TASKMATE_FAKE_BACKEND_SEED_PASSWORD"`
	Log            logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.SeedEmail, "seed-email", cfg.SeedEmail, "Email of an account created at startup")
	fs.StringVar(&cfg.SeedPassword, "seed-password", cfg.SeedPassword, "Password of the startup account")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if (cfg.SeedEmail == "") != (cfg.SeedPassword == "") {
		return Config{}, fmt.Errorf("seed email and seed password must be set together")
	}
	return cfg, nil
}

// Run serves the fake backend until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceFakeBackend, func(ctx context.Context) error {
		logger, err := logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		backend, err := newBackend(cfg, logger)
		if err != nil {
			return err
		}
		httpServer := &http.Server{
			Addr:              cfg.Addr,
			Handler:           backend.Handler(),
			ReadHeaderTimeout: timeouts.ReadHeader,
		}

		serveErr := make(chan error, 1)
		go func() {
			logger.Info("fake backend listening", zap.String("addr", cfg.Addr))
			serveErr <- httpServer.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown fake backend: %w", err)
			}
			return nil
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("serve fake backend: %w", err)
		}
	})
}

func newBackend(cfg Config, logger *zap.Logger) (*fakebackend.Server, error) {
	backendCfg := fakebackend.Config{
		TokenTTL:       cfg.TokenTTL,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	}
	if secret := strings.TrimSpace(cfg.Secret); secret != "" {
		backendCfg.Secret = []byte(secret)
	}
	backend := fakebackend.New(backendCfg)
	if cfg.SeedEmail != "" {
		user, err := backend.SeedUser(cfg.SeedName, cfg.SeedEmail, cfg.SeedPassword, "")
		if err != nil {
			return nil, fmt.Errorf("seed account: %w", err)
		}
		logger.Info("seeded account", zap.String("email", user.Email), zap.String("user_id", user.ID))
	}
	return backend, nil
}
