package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/ekisa-team/ttsrelay/internal/service"
)

const readHeaderTimeout = 10 * time.Second

// Options configures the HTTP server.
type Options struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string

	// FrontendDir is the static bundle directory. Empty disables static serving.
	FrontendDir string

	// Version is reported in the OpenAPI document.
	Version string
}

// Server exposes the relay API and the static frontend.
type Server struct {
	api     huma.API
	handler http.Handler
	srv     *http.Server
}

// NewServer wires the routes for svc.
func NewServer(svc *service.TTS, opts Options) *Server {
	mux := http.NewServeMux()

	version := opts.Version
	if version == "" {
		version = "dev"
	}
	api := humago.New(mux, huma.DefaultConfig("ttsrelay", version))

	NewTTSHandler(api, svc)
	NewHealthHandler(api, svc)

	if opts.FrontendDir != "" {
		mux.Handle("GET /", NewStaticHandler(opts.FrontendDir))
	}

	handler := RequestID(AccessLog(mux))

	return &Server{
		api:     api,
		handler: handler,
		srv: &http.Server{
			Addr:              opts.Addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// API returns the huma API, e.g. to inspect the OpenAPI document.
func (s *Server) API() huma.API {
	return s.api
}

// Handler returns the root handler including middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe blocks until the server stops. A graceful shutdown returns nil.
func (s *Server) ListenAndServe() error {
	slog.Info("HTTP server starting", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight streams until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("HTTP server shutting down")
	return s.srv.Shutdown(ctx)
}
