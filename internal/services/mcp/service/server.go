package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taskmate/taskmate-web/internal/platform/timeouts"
	"github.com/taskmate/taskmate-web/internal/services/mcp/domain"
	"go.uber.org/zap"
)

const (
	serverName    = "TaskMate MCP"
	serverVersion = "0.1.0"

	defaultHTTPAddr = "localhost:8081"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string
	// Email and Password identify the backend account tools act as.
	Email    string
	Password string
	Logger   *zap.Logger
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	logger    *zap.Logger
}

// New creates an MCP server whose tools call backend as the configured
// account.
func New(backend domain.Backend, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{})
	registerTools(mcpServer, backend, domain.NewSession(backend, cfg.Email, cfg.Password))
	return &Server{mcpServer: mcpServer, logger: logger}
}

func registerTools(server *mcp.Server, backend domain.Backend, session *domain.Session) {
	mcp.AddTool(server, domain.TeamListTool(), domain.TeamListHandler(backend, session))
	mcp.AddTool(server, domain.TeamSearchTool(), domain.TeamSearchHandler(backend, session))
	mcp.AddTool(server, domain.TeamCreateTool(), domain.TeamCreateHandler(backend, session))
	mcp.AddTool(server, domain.TeamUpdateTool(), domain.TeamUpdateHandler(backend, session))
	mcp.AddTool(server, domain.TeamDeleteTool(), domain.TeamDeleteHandler(backend, session))
	mcp.AddTool(server, domain.ProfileGetTool(), domain.ProfileGetHandler(backend, session))
}

// Run serves on the configured transport and blocks until ctx ends.
func (s *Server) Run(ctx context.Context, cfg Config) error {
	switch cfg.Transport {
	case "", TransportStdio:
		return s.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return s.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serveWithTransport runs the server on transport until it stops or ctx ends.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	if strings.TrimSpace(addr) == "" {
		addr = defaultHTTPAddr
	}
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.mcpServer }, nil)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("mcp http listening", zap.String("addr", addr))
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown MCP http: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP http: %w", err)
	}
}
