package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
)

// Server owns one http.Server and the socket it listens on.
type Server struct {
	name       string
	config     Config
	logger     *slog.Logger
	server     *http.Server
	listener   net.Listener
	onServeErr func()
}

// NewServer creates a Server after applying defaults to cfg and validating
// it. onServeErr, if non-nil, is called when serving stops with an error.
func NewServer(name string, handler http.Handler, cfg Config, logger *slog.Logger, onServeErr func()) (*Server, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if handler == nil {
		return nil, ErrNilHandler
	}

	if logger == nil {
		logger = slog.Default()
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	server := &http.Server{ //nolint:exhaustruct // timeouts beyond headers are per route
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	return &Server{
		name:       name,
		config:     cfg,
		logger:     logger.With(slog.String("listener", name)),
		server:     server,
		onServeErr: onServeErr,
	}, nil
}

// Start binds the socket and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		s.logger.Error("cannot bind", slog.String("address", s.server.Addr), slog.Any("error", err))

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.listener = ln
	s.logger.Info("serving", slog.String("address", ln.Addr().String()))

	go s.serve(ln)

	return nil
}

func (s *Server) serve(ln net.Listener) {
	err := s.server.Serve(ln)
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}

	s.logger.Error("listener stopped unexpectedly", slog.Any("error", err))

	if s.onServeErr != nil {
		s.onServeErr()
	}
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.config.Address
}

// Stop drains in-flight requests for at most the shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping")

	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("requests still running at deadline", slog.Any("error", err))

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	s.logger.Info("stopped")

	return nil
}
