package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
)

// Options configure a Server.
type Options struct {
	Addr   string  // TCP listen address, e.g. ":8080"
	Root   string  // directory asset paths resolve against
	MaxRPS float64 // max requests per second; 0 disables throttling
	Burst  int     // throttle burst size
}

// Server serves the TweetStream single-page app's static assets over HTTP.
type Server struct {
	root   string
	logger *slog.Logger
	router *chi.Mux
	server *http.Server
}

// New creates a server rooted at opts.Root. Only GET routes are
// registered; requests with any other method get chi's default
// 405 Method Not Allowed.
func New(opts Options) *Server {
	s := &Server{
		root:   opts.Root,
		logger: slog.With("component", "server"),
	}

	r := chi.NewRouter()
	r.Use(s.accessLogger)
	if opts.MaxRPS > 0 {
		r.Use(throttle(opts.MaxRPS, opts.Burst))
	}

	r.Get("/health", s.health)
	r.Get("/", s.index)
	r.Get("/index.html", s.index)
	r.Get("/*", s.dispatch)

	s.router = r
	s.server = &http.Server{Addr: opts.Addr, Handler: r}
	return s
}

// Router returns the underlying router, useful for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe binds the configured address and serves until Shutdown.
// A bind failure is returned immediately; after a clean shutdown the
// error is http.ErrServerClosed.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("binding %s: %w", s.server.Addr, err)
	}
	s.logger.Info("listening", "addr", ln.Addr().String())
	return s.server.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("healthy"))
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, "index.html", "text/html")
}

// dispatch maps asset requests by extension. Anything that is not a
// stylesheet or script falls back to index.html so client-side routes
// resolve; that includes paths with unrecognized asset extensions.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case strings.HasSuffix(path, ".css"):
		s.serveFile(w, strings.TrimPrefix(path, "/"), "text/css")
	case strings.HasSuffix(path, ".js"):
		s.serveFile(w, strings.TrimPrefix(path, "/"), "application/javascript")
	default:
		s.serveFile(w, "index.html", "text/html")
	}
}

// serveFile reads name relative to the asset root and writes it with the
// given content type. Assets are UTF-8 text; a file that fails validation
// is a server error, not a client one.
func (s *Server) serveFile(w http.ResponseWriter, name, contentType string) {
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.plainText(w, http.StatusNotFound, "File not found")
			return
		}
		s.logger.Error("reading asset", "file", name, "error", err)
		s.plainText(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}

	if !utf8.Valid(data) {
		s.logger.Error("asset is not valid UTF-8", "file", name)
		s.plainText(w, http.StatusInternalServerError, fmt.Sprintf("Server error: %s is not valid UTF-8 text", name))
		return
	}

	w.Header().Set("Content-Type", contentType+"; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) plainText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
