package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"strconv"
	"time"

	"mvpauth/internal/platform/config"
	"mvpauth/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server timeouts
const (
	ReadHeaderTimeout = 10 * time.Second
	ShutdownGrace     = 10 * time.Second
)

// Server is a chi mux behind a net/http server
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer listens on <cfg>API_PORT, :4000 when unset
// opts see the bare mux before any module mounts
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	return NewServerOn(cfg, ":4000", opts...)
}

// NewServerOn is NewServer with another fallback address
func NewServerOn(cfg config.Conf, fallback string, opts ...func(*chi.Mux)) *Server {
	mux := chi.NewRouter()
	for _, o := range opts {
		o(mux)
	}
	return &Server{
		mux: mux,
		srv: &stdhttp.Server{
			Addr:              listenAddr(cfg.MayString("API_PORT", fallback)),
			Handler:           mux,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// listenAddr accepts a bare port as well as host:port
func listenAddr(s string) string {
	if _, err := strconv.Atoi(s); err == nil {
		return ":" + s
	}
	return s
}

// Router is the mux as modules see it
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is cancelled, then gives in flight requests ShutdownGrace to finish
// a clean shutdown returns nil
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	stop := context.AfterFunc(ctx, func() {
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			log.Warn().Err(err).Msg("shutdown did not drain")
		}
	})
	defer stop()

	log.Info().Str("addr", s.srv.Addr).Msg("serving")
	if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}
