// Package httpapi exposes the account flows over HTTP/JSON. It is a thin
// boundary: it decodes requests, calls the service layer, and maps sentinel
// errors onto status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/easylend/userservice/internal/logging"
	"github.com/easylend/userservice/internal/server/services"
)

// UserFlows is the service surface the handlers need.
type UserFlows interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.RegisterResult, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Activate(ctx context.Context, confirmationToken string) error
}

type Server struct {
	address string
	logger  logging.Logger
	users   UserFlows
	baseURL string
}

// NewServer constructs the HTTP server for the given bind address. baseURL
// is the externally reachable origin used for confirmation links.
func NewServer(address string, l logging.Logger, users UserFlows, baseURL string) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   users,
		baseURL: baseURL,
	}
}

// Handler assembles the route table with logging and recovery middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/v1/auth/confirm", s.handleConfirm)
	mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	return s.withRecovery(s.withLogging(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
