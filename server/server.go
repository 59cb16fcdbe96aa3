// Package server implements the local dashboard HTTP server: static file
// serving for the dashboard assets plus the test-results JSON routes.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const (
	summaryRoute = "/test-results/summary.json"
	historyRoute = "/test-results/history.json"
)

// Config holds the server parameters. All fields have usable defaults at
// the CLI layer; the server itself treats them as resolved values.
type Config struct {
	// Port to listen on
	Port int
	// Dir is the serving root for the static dashboard files
	Dir string
	// ResultsFile is the real summary JSON; the mock payload is served
	// when it does not exist
	ResultsFile string
}

type Server struct {
	logger zerolog.Logger
	cfg    Config
}

func New(logger zerolog.Logger, cfg Config) *Server {
	return &Server{
		logger: logger,
		cfg:    cfg,
	}
}

// Handler builds the route table: the two JSON routes, the root rewrite to
// index.html, and static file serving for everything else. Only GET (and
// HEAD, for the static routes) is accepted; the router answers 405 for
// anything else.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(summaryRoute, s.handleSummary).Methods(http.MethodGet)
	r.HandleFunc(historyRoute, s.handleHistory).Methods(http.MethodGet)
	// Both routes serve the same bytes; http.FileServer would instead
	// redirect explicit /index.html requests.
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/index.html", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	r.PathPrefix("/").
		Handler(http.FileServer(http.Dir(s.cfg.Dir))).
		Methods(http.MethodGet, http.MethodHead)
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, req *http.Request) {
	f, err := os.Open(filepath.Join(s.cfg.Dir, "index.html"))
	if err != nil {
		http.NotFound(w, req)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.NotFound(w, req)
		return
	}

	http.ServeContent(w, req, "index.html", info.ModTime(), f)
}

// Run serves until ctx is cancelled, then drains in-flight requests with a
// bounded shutdown. The startup URL and the shutdown notice are written to
// stdout for the developer running the server in a terminal.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 3 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()

	fmt.Printf("Dashboard server running at http://localhost:%d\n", s.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	s.logger.Debug().
		Str("dir", s.cfg.Dir).
		Str("results", s.cfg.ResultsFile).
		Msg("Serving dashboard")

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	fmt.Println("\nShutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	return nil
}
