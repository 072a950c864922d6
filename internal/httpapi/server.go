package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jxsim-x/skillstack-learning-tracker/internal/bootstrap"
)

// Server is the local HTTP API.
type Server struct {
	core *bootstrap.Core
	ln   net.Listener
	srv  *http.Server
}

// Options configure the server.
type Options struct {
	ListenAddr string // e.g. "127.0.0.1:8000"
}

// Start binds the listener and serves in the background until ctx ends.
func Start(ctx context.Context, core *bootstrap.Core, opts Options) (*Server, error) {
	if opts.ListenAddr == "" {
		opts.ListenAddr = "127.0.0.1:8000"
	}

	ln, err := net.Listen("tcp", opts.ListenAddr)
	if err != nil {
		return nil, err
	}

	api := NewAPI(core)
	srv := &http.Server{
		Handler:           withCORS(api.Routes()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s := &Server{core: core, ln: ln, srv: srv}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server exited", "error", err)
		}
	}()

	slog.Info("http api listening", "addr", ln.Addr().String())
	return s, nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	if s == nil || s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil || s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
