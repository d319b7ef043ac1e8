package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/taskmate/taskmate-web/internal/platform/timeouts"
	webapp "github.com/taskmate/taskmate-web/internal/services/web/app"
	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	"github.com/taskmate/taskmate-web/internal/services/web/modules"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/cookies"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/httpx"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/observability"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/ratelimit"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/requestmeta"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	"github.com/taskmate/taskmate-web/internal/services/web/session"
	webstatic "github.com/taskmate/taskmate-web/internal/services/web/static"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/services/web/teamcache"
	"go.uber.org/zap"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	// Backend is the TaskMate REST client. Nil serves every backend-driven
	// page in its unavailable state.
	Backend modules.Backend
	// Store persists sessions, cached team lists and, unless Avatars is set,
	// uploaded avatars.
	Store   webstorage.Store
	Avatars webstorage.AvatarStore

	SessionTTL   time.Duration
	TeamCacheTTL time.Duration
	// SweepSchedule is the cron spec for deleting expired sessions. Empty
	// uses session.DefaultSweepSchedule.
	SweepSchedule       string
	TrustForwardedProto bool
	RateLimit           ratelimit.Config
	Logger              *zap.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	sweeper    *session.Sweeper
	logger     *zap.Logger
}

// NewHandler builds the root handler from the default module registry groups.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}

	var sessionStore webstorage.SessionStore
	var cacheStore webstorage.CacheStore
	avatars := cfg.Avatars
	if cfg.Store != nil {
		sessionStore, cacheStore = cfg.Store, cfg.Store
		if avatars == nil {
			avatars = cfg.Store
		}
	}
	sessions := session.NewManager(sessionStore, cfg.SessionTTL)
	principal := newPrincipalResolver(sessions)

	var teamSource teamcache.Source
	if cfg.Backend != nil {
		teamSource = cfg.Backend
	}

	jar := cookies.Jar{Policy: policy}
	shared := module.Dependencies{
		ResolveViewer:  principal.resolveViewer,
		ResolveSession: principal.resolveSession,
		EndSession:     principal.endSession(jar),
		Cookies:        jar,
	}
	deps := modules.Dependencies{
		Backend:  cfg.Backend,
		Sessions: sessions,
		Teams:    teamcache.New(teamSource, cacheStore, cfg.TeamCacheTTL),
		Avatars:  avatars,
		Limiter:  ratelimit.New(cfg.RateLimit),
	}
	h, err := webapp.BuildRootHandler(webapp.Config{
		PublicModules:    modules.DefaultPublicModules(deps, shared),
		ProtectedModules: modules.DefaultProtectedModules(deps, shared),
		SchemePolicy:     policy,
	}, principal.authRequired())
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, webstatic.Handler(routepath.StaticPrefix))
	rootMux.Handle("/", h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(logger),
		withRequestPrincipalState(),
		observability.RequestLogger(logger),
	), nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	var sweeper *session.Sweeper
	if cfg.Store != nil {
		sweeper, err = session.NewSweeper(cfg.Store, cfg.SweepSchedule, cfg.Logger)
		if err != nil {
			return nil, err
		}
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		sweeper: sweeper,
		logger:  cfg.Logger,
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	if s.sweeper != nil {
		s.sweeper.Start()
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("web listening", zap.String("addr", s.httpAddr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close stops the session sweeper and closes the listener.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.sweeper != nil {
		s.sweeper.Stop()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
}
