package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/qszone/naviguard/internal/infrastructure/config"
	"github.com/qszone/naviguard/internal/infrastructure/logging"
	"github.com/qszone/naviguard/internal/session"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// fixtures are the built-in accounts the development server authenticates.
// An unrecognisable credential resolves to the guest principal, which
// carries no roles and therefore no route entitlements.
var fixtures = map[string]session.Principal{
	"admin": {
		ID:     1,
		Name:   "admin",
		Avatar: "https://assets.qszone.com/images/avatar.jpg",
		Email:  "Ronnie@123.com",
		Role:   []string{"admin"},
	},
	"editor": {
		ID:     2,
		Name:   "editor",
		Avatar: "https://assets.qszone.com/images/avatar.jpg",
		Email:  "Ronnie@123.com",
		Role:   []string{"editor"},
	},
}

var guest = session.Principal{
	ID:     3,
	Name:   "guest",
	Avatar: "https://assets.qszone.com/images/avatar.jpg",
	Role:   []string{},
}

// Deps holds the dependencies required by the development server.
type Deps struct {
	Config config.ServerConfig
	Logger *logging.Logger
}

// Server is the embedded development API server. It implements the backend
// contract the client runtime is written against: JSON envelopes with a
// business code, JWT bearer credentials, and fixture accounts.
//
// The server is created with New() and started with Start().
type Server struct {
	cfg    config.ServerConfig
	logger *logging.Logger
	server *http.Server
	addr   string
}

// New creates a development server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Config.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}

	return &Server{
		cfg:    deps.Config,
		logger: deps.Logger.With("component", "devserver"),
	}, nil
}

// Start begins listening for HTTP connections in a background goroutine.
// The bound address is available from Addr() once Start returns.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listening on %s:%d: %w", s.cfg.Host, s.cfg.Port, err)
	}
	s.addr = ln.Addr().String()

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		s.logger.Info("development API server started", "address", s.addr)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("development API server error", "error", err)
		}
	}()

	return nil
}

// Addr returns the address the server is listening on. Valid after Start.
func (s *Server) Addr() string {
	return s.addr
}

// BaseURL returns the API base URL clients should target. Valid after Start.
func (s *Server) BaseURL() string {
	return "http://" + s.addr + "/api"
}

// Close gracefully shuts down the server, waiting for in-flight requests.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("development API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down development API server: %w", err)
	}
	return nil
}
