package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StreamStatus is the manager-side view the server reports. The stream
// manager satisfies it.
type StreamStatus interface {
	Connected() bool
	Attempts() uint32
	Endpoint() string
}

// Server exposes /health and /metrics over HTTP.
type Server struct {
	status StreamStatus
	server *http.Server
}

// NewServer builds the HTTP server on the given port.
func NewServer(status StreamStatus, port int) *Server {
	mux := http.NewServeMux()
	s := &Server{
		status: status,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	connected := s.status.Connected()

	response := map[string]any{
		"status":             "healthy",
		"connected":          connected,
		"endpoint":           s.status.Endpoint(),
		"reconnect_attempts": s.status.Attempts(),
	}

	w.Header().Set("Content-Type", "application/json")
	if !connected {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}
