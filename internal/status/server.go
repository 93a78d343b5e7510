// Package status exposes a small HTTP surface for liveness checks and
// processing counters.
package status

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// StatsProvider reports pipeline counters
type StatsProvider interface {
	Stats() (processed, extractionFailures uint64)
}

// BasicAuth holds basic authentication credentials
type BasicAuth struct {
	Username string
	Password string
}

// Server handles HTTP requests for bot status
type Server struct {
	stats     StatsProvider
	basicAuth BasicAuth
	mux       *http.ServeMux
	version   string
	started   time.Time
}

type statsResponse struct {
	Status             string `json:"status"`
	Version            string `json:"version"`
	UptimeSeconds      int64  `json:"uptime_seconds"`
	Processed          uint64 `json:"processed"`
	ExtractionFailures uint64 `json:"extraction_failures"`
}

// NewServer creates a new Server with default mux
func NewServer(stats StatsProvider, basicAuth BasicAuth, version string) *Server {
	return NewServerWithMux(stats, basicAuth, version, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(stats StatsProvider, basicAuth BasicAuth, version string, mux *http.ServeMux) *Server {
	s := &Server{
		stats:     stats,
		basicAuth: basicAuth,
		mux:       mux,
		version:   version,
		started:   time.Now(),
	}
	s.registerRoutes()
	return s
}

// authenticate checks basic auth credentials
func (s *Server) authenticate(r *http.Request) bool {
	if s.basicAuth.Username == "" && s.basicAuth.Password == "" {
		return true // No auth required if not configured
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Basic ") {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
	if err != nil {
		return false
	}

	credentials := strings.SplitN(string(decoded), ":", 2)
	if len(credentials) != 2 {
		return false
	}

	return credentials[0] == s.basicAuth.Username && credentials[1] == s.basicAuth.Password
}

// requireAuth middleware
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticate(r) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Expense Bot"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// registerRoutes registers all routes on the server's mux.
// The health check stays open so orchestrators can probe it without credentials.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /api/stats", s.requireAuth(s.handleStats))
}

// handleHealthz reports liveness
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleStats returns processing counters
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	processed, failures := s.stats.Stats()

	resp := statsResponse{
		Status:             "ok",
		Version:            s.version,
		UptimeSeconds:      int64(time.Since(s.started).Seconds()),
		Processed:          processed,
		ExtractionFailures: failures,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	slog.Info("Starting status server", "address", addr)
	return http.ListenAndServe(addr, s.mux)
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
