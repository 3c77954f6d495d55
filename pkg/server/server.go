// Package server exposes the page over HTTP for -serve mode. The bubbletea
// program stays the only writer of the document; it publishes immutable
// snapshots here and the handlers read the latest one.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"gitlab.com/tinyland/lab/browserhome/pkg/app"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors"
)

const shutdownTimeout = 5 * time.Second

// StatusSource reports collector health. *collectors.Registry implements it.
type StatusSource interface {
	AllStatus() []collectors.CollectorStatus
}

// Options configures a Server.
type Options struct {
	Addr string
	// RateLimit requests per RateWindow are allowed per client IP. Zero
	// disables limiting.
	RateLimit  int
	RateWindow time.Duration
	Version    string
	Logger     *slog.Logger
	// Refresh, if set, asks the page to reload one widget. It must not
	// block.
	Refresh func(widget string)
}

// Server serves the most recent page snapshot.
type Server struct {
	opts     Options
	logger   *slog.Logger
	statuses StatusSource
	snap     atomic.Pointer[app.Snapshot]
	server   *http.Server
}

// New creates a server reading collector health from statuses, which may
// be nil.
func New(opts Options, statuses StatusSource) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		opts:     opts,
		logger:   logger.With("component", "server"),
		statuses: statuses,
	}
	s.server = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Publish stores snap as the page to serve. It is safe to call from the
// bubbletea update loop.
func (s *Server) Publish(snap app.Snapshot) {
	s.snap.Store(&snap)
	recordSnapshot(snap)
}

// Snapshot returns the latest published page, or nil before the first.
func (s *Server) Snapshot() *app.Snapshot {
	return s.snap.Load()
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr)
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}
