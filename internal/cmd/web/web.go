// Package web parses web service flags and launches the TaskMate browser
// surface.
package web

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	entrypoint "github.com/taskmate/taskmate-web/internal/platform/cmd"
	"github.com/taskmate/taskmate-web/internal/platform/logging"
	"github.com/taskmate/taskmate-web/internal/services/web"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/ratelimit"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/services/web/storage/s3avatars"
	"github.com/taskmate/taskmate-web/internal/services/web/storage/sqlite"
	"github.com/taskmate/taskmate-web/internal/taskmate"
	"go.uber.org/zap"
)

const (
	avatarBackendSQLite = "sqlite"
	avatarBackendS3     = "s3"
)

// S3Config selects the bucket used when avatars are stored in S3.
type S3Config struct {
	Endpoint     string `env:"ENDPOINT"`
	Region       string `env:"REGION" envDefault:"us-east-1"`
	Bucket       string `env:"BUCKET" envDefault:"taskmate-avatars"`
	AccessKey    string `env:"ACCESS_KEY"`
	SecretKey    string `env:"SECRET_KEY"`
	UsePathStyle bool   `env:"USE_PATH_STYLE" envDefault:"true"`
	Prefix       string `env:"PREFIX" envDefault:"avatars/"`
}

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"TASKMATE_WEB_HTTP_ADDR"             envDefault:"localhost:8080"`
	APIBaseURL          string        `env:"TASKMATE_WEB_API_URL"               envDefault:"http://localhost:3001"`
	DBPath              string        `env:"TASKMATE_WEB_DB_PATH"               envDefault:"data/taskmate-web.db"`
	SessionTTL          time.Duration `env:"TASKMATE_WEB_SESSION_TTL"           envDefault:"24h"`
	TeamCacheTTL        time.Duration `env:"TASKMATE_WEB_TEAM_CACHE_TTL"        envDefault:"30s"`
	SweepSchedule       string        `env:"TASKMATE_WEB_SESSION_SWEEP"         envDefault:"@every 15m"`
	TrustForwardedProto bool          `env:"TASKMATE_WEB_TRUST_FORWARDED_PROTO"`
	TrustForwardedFor   bool          `env:"TASKMATE_WEB_TRUST_FORWARDED_FOR"`
	RateLimitRPS        float64       `env:"TASKMATE_WEB_RATE_LIMIT_RPS"        envDefault:"0.5"`
	RateLimitBurst      int           `env:"TASKMATE_WEB_RATE_LIMIT_BURST"      envDefault:"5"`
	AvatarBackend       string        `env:"TASKMATE_WEB_AVATAR_BACKEND"        envDefault:"sqlite"`
	S3                  S3Config      `envPrefix:"TASKMATE_WEB_S3_"`
	Log                 logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "TaskMate REST backend base URL")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path for sessions and caches")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Maximum browser session lifetime")
	fs.DurationVar(&cfg.TeamCacheTTL, "team-cache-ttl", cfg.TeamCacheTTL, "Administered-teams cache lifetime (0 disables)")
	fs.BoolVar(&cfg.TrustForwardedFor, "trust-forwarded-for", cfg.TrustForwardedFor, "Key rate limits on the proxy-appended X-Forwarded-For hop")
	fs.StringVar(&cfg.AvatarBackend, "avatar-backend", cfg.AvatarBackend, "Avatar storage: sqlite or s3")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug, info, warn or error")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("http address is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	if c.TeamCacheTTL < 0 {
		return fmt.Errorf("team cache ttl must not be negative, got %s", c.TeamCacheTTL)
	}
	switch strings.ToLower(strings.TrimSpace(c.AvatarBackend)) {
	case avatarBackendSQLite, avatarBackendS3:
	default:
		return fmt.Errorf("avatar backend must be %q or %q, got %q", avatarBackendSQLite, avatarBackendS3, c.AvatarBackend)
	}
	return nil
}

// Run starts the web server and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		logger, err := logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		client, err := taskmate.New(cfg.APIBaseURL, taskmate.WithLogger(logger.Named("taskmate")))
		if err != nil {
			return err
		}
		store, err := openStore(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		avatars, err := openAvatars(ctx, cfg, store, logger)
		if err != nil {
			return err
		}

		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			Backend:             client,
			Store:               store,
			Avatars:             avatars,
			SessionTTL:          cfg.SessionTTL,
			TeamCacheTTL:        cfg.TeamCacheTTL,
			SweepSchedule:       cfg.SweepSchedule,
			TrustForwardedProto: cfg.TrustForwardedProto,
			RateLimit: ratelimit.Config{
				RPS:            cfg.RateLimitRPS,
				Burst:          cfg.RateLimitBurst,
				TrustForwarded: cfg.TrustForwardedFor,
			},
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		logger.Info("web starting",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("api_url", client.BaseURL()),
			zap.String("avatar_backend", cfg.AvatarBackend),
		)
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func openStore(ctx context.Context, path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open web store: %w", err)
	}
	return store, nil
}

func openAvatars(ctx context.Context, cfg Config, store webstorage.AvatarStore, logger *zap.Logger) (webstorage.AvatarStore, error) {
	if !strings.EqualFold(strings.TrimSpace(cfg.AvatarBackend), avatarBackendS3) {
		return store, nil
	}
	bucket, err := s3avatars.New(ctx, s3avatars.Config{
		Endpoint:     cfg.S3.Endpoint,
		Region:       cfg.S3.Region,
		Bucket:       cfg.S3.Bucket,
		AccessKey:    cfg.S3.AccessKey,
		SecretKey:    cfg.S3.SecretKey,
		UsePathStyle: cfg.S3.UsePathStyle,
		Prefix:       cfg.S3.Prefix,
	}, s3avatars.WithLogger(logger.Named("s3avatars")))
	if err != nil {
		return nil, fmt.Errorf("init s3 avatar store: %w", err)
	}
	if err := bucket.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure avatar bucket: %w", err)
	}
	return bucket, nil
}
