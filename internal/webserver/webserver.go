// Package webserver serves the viewer, its websocket sessions, the laid out graph and
// the health and metrics endpoints.
package webserver

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/psidex/knowmap/internal/knowmap"
	"github.com/psidex/knowmap/internal/lib"
	"github.com/psidex/knowmap/internal/render/graphology"
	"github.com/psidex/knowmap/internal/selection"
	"github.com/psidex/knowmap/internal/session"
)

//go:embed static
var staticFiles embed.FS

type Server struct {
	k         *knowmap.Knowmap
	logger    *slog.Logger
	staticDir string
	upgrader  websocket.Upgrader

	// Sessions run under ctx so shutdown can end them.
	ctx    context.Context
	cancel context.CancelFunc
	wg     *sync.WaitGroup

	mu     sync.Mutex // guards closed and wg.Add
	closed bool
}

// New serves k. An empty staticDir serves the embedded viewer.
func New(k *knowmap.Knowmap, staticDir string, logger *slog.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		k:         k,
		logger:    lib.OrDiscard(logger),
		staticDir: staticDir,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		ctx:    ctx,
		cancel: cancel,
		wg:     &sync.WaitGroup{},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", s.static())
	mux.HandleFunc("/graph.json", s.graphJson)
	mux.HandleFunc("/healthz", s.healthz)
	mux.HandleFunc("/ws", s.session)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) static() http.Handler {
	if s.staticDir != "" {
		return http.FileServer(http.Dir(s.staticDir))
	}
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The embedded directory is part of the binary.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// ListenAndServe blocks until ctx is cancelled or the listener fails. Open sessions
// are told to go away before it returns.
func (s *Server) ListenAndServe(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("webserver listening", "address", address)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		s.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	// Shutdown does not track hijacked websocket conns.
	s.Close()
	if err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close ends all sessions and waits for them.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
}

// track registers a session with Close. It fails once Close has been called.
func (s *Server) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

func writeJson(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	status, err := s.k.Status()
	resp := HealthResponse{Status: status.String(), Version: lib.Version}

	code := http.StatusServiceUnavailable
	switch status {
	case knowmap.StatusReady:
		code = http.StatusOK
		g := s.k.Graph()
		resp.Nodes = len(g.Nodes)
		resp.Edges = len(g.Edges)
	case knowmap.StatusFailed:
		resp.Error = err.Error()
	}
	writeJson(w, code, resp)
}

func (s *Server) graphJson(w http.ResponseWriter, r *http.Request) {
	g := s.k.Graph()
	if g == nil {
		status, _ := s.k.Status()
		writeJson(w, http.StatusServiceUnavailable, HealthResponse{Status: status.String(), Version: lib.Version})
		return
	}
	frame := selection.NewController(nil, g).Frame()
	writeJson(w, http.StatusOK, graphology.NewGraphology(g, frame).Serialize())
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	g, idx := s.k.Graph(), s.k.Index()
	if g == nil {
		http.Error(w, "graph is not ready", http.StatusServiceUnavailable)
		return
	}
	if !s.track() {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.wg.Done()

	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", "err", err)
		return
	}
	defer c.Close()

	sess := session.New(lib.NewThreadSafeWebSocket(c), g, idx, s.logger)
	if err := sess.Run(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("session ended with error", "session", sess.ID(), "err", err)
	}
}
