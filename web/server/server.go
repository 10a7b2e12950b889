package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// consoleBufferSize bounds how many log lines are kept for /api/console
const consoleBufferSize = 256

// Server handles web requests for the path tracer
type Server struct {
	port      int
	scenesDir string // Directory scanned for JSON scene files
	console   chan ConsoleMessage
	mux       *http.ServeMux
}

// NewServer creates a new web server serving built-in scenes and the
// JSON scene files in scenesDir
func NewServer(port int, scenesDir string) *Server {
	s := &Server{
		port:      port,
		scenesDir: scenesDir,
		console:   make(chan ConsoleMessage, consoleBufferSize),
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/console", s.handleConsole)

	return s
}

// Handler returns the routed handler, for use with http.Server or httptest
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files, grouped
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleConsole drains the buffered render log lines
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	messages := []ConsoleMessage{}
	for {
		select {
		case msg := <-s.console:
			messages = append(messages, msg)
		default:
			writeJSON(w, http.StatusOK, messages)
			return
		}
	}
}

// writeJSON encodes body as the JSON response
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError sends {"error": message}
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
