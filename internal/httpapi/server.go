// v1
// internal/httpapi/server.go

// Package httpapi is the small admin surface each node exposes: liveness,
// loop counters, and the current display frame.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// Server serves /health, /status and /display for one node.
type Server struct {
	lg   *slog.Logger
	http *http.Server
}

// New builds the admin server. stats and frame are snapshot closures into
// the running loop; the server never touches loop state directly.
func New(bind string, lg *slog.Logger, stats func() map[string]uint64, frame func() []string) *Server {
	r := mux.NewRouter()
	s := &Server{lg: lg, http: &http.Server{Addr: bind, Handler: r}}
	r.HandleFunc("/health", s.getHealth).Methods(http.MethodGet)
	r.HandleFunc("/status", s.getStatus(stats)).Methods(http.MethodGet)
	r.HandleFunc("/display", s.getDisplay(frame)).Methods(http.MethodGet)
	return s
}

func (s *Server) Start() error {
	s.lg.Info("admin http start", "bind", s.http.Addr)
	return s.http.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.lg.Info("admin http stop")
	return s.http.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) getStatus(stats func() map[string]uint64) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats()); err != nil {
			s.lg.Error("status encode failed", "error", err)
		}
	}
}

func (s *Server) getDisplay(frame func() []string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string][]string{"lines": frame()}); err != nil {
			s.lg.Error("display encode failed", "error", err)
		}
	}
}
