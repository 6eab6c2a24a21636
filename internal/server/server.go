/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"

	charmlog "charm.land/log/v2"

	"github.com/gts-labs/gtscat/gts"
)

var logger = charmlog.New(os.Stderr)

// Server represents the GTS HTTP server.
//
// store is swapped wholesale on /reload, so every handler reads it through
// storeRef() under a read lock rather than touching the field directly.
type Server struct {
	mu      sync.RWMutex
	store   *gts.Store
	host    string
	port    int
	verbose int
	mux     *http.ServeMux
	// Reload rebuilds the store from whatever backs it (a file tree, a
	// remote feed, ...). Nil means /reload is unsupported.
	Reload func() (*gts.Store, error)
}

// NewServer creates a new GTS HTTP server
func NewServer(store *gts.Store, host string, port int, verbose int) *Server {
	s := &Server{
		store:   store,
		host:    host,
		port:    port,
		verbose: verbose,
		mux:     http.NewServeMux(),
	}
	if verbose >= 2 {
		logger.SetLevel(charmlog.DebugLevel)
	}
	s.registerRoutes()
	return s
}

// storeRef returns the current store under a read lock.
func (s *Server) storeRef() *gts.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// SetStore atomically swaps the active store, used by /reload and by a
// filesystem watcher driving hot reloads.
func (s *Server) SetStore(store *gts.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store
}

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes() {
	// Entity management
	s.mux.HandleFunc("GET /entities", s.handleGetEntities)
	s.mux.HandleFunc("GET /entities/{id}", s.handleGetEntity)
	s.mux.HandleFunc("POST /entities", s.handleAddEntity)
	s.mux.HandleFunc("POST /entities/bulk", s.handleAddEntities)
	s.mux.HandleFunc("POST /schemas", s.handleAddSchema)

	// OP#1 - Validate ID
	s.mux.HandleFunc("GET /validate-id", s.handleValidateID)

	// OP#2 - Extract ID
	s.mux.HandleFunc("POST /extract-id", s.handleExtractID)

	// OP#3 - Parse ID
	s.mux.HandleFunc("GET /parse-id", s.handleParseID)

	// OP#4 - Match ID Pattern
	s.mux.HandleFunc("GET /match-id-pattern", s.handleMatchIDPattern)

	// OP#5 - UUID
	s.mux.HandleFunc("GET /uuid", s.handleUUID)

	// OP#6 - Validate Instance
	s.mux.HandleFunc("POST /validate-instance", s.handleValidateInstance)

	// OP#7 - Resolve Relationships
	s.mux.HandleFunc("GET /resolve-relationships", s.handleResolveRelationships)

	// OP#8 - Compatibility
	s.mux.HandleFunc("GET /compatibility", s.handleCompatibility)

	// OP#9 - Cast
	s.mux.HandleFunc("POST /cast", s.handleCast)

	// OP#10 - Query
	s.mux.HandleFunc("GET /query", s.handleQuery)

	// OP#11 - Attribute Access
	s.mux.HandleFunc("GET /attr", s.handleAttribute)

	// Operational endpoints
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("POST /reload", s.handleReload)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	logger.Info("starting gts server", "addr", addr)

	handler := s.withLogging(s.mux)
	return http.ListenAndServe(addr, handler)
}

// handleHealthz reports liveness; it never touches the store lock beyond a
// quick Count(), so it stays cheap even while a reload is in flight.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"entities": s.storeRef().Count(),
	})
}

// handleReload rebuilds the store via s.Reload and swaps it in atomically.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.Reload == nil {
		s.writeError(w, http.StatusNotImplemented, "reload is not configured for this server")
		return
	}

	store, err := s.Reload()
	if err != nil {
		logger.Error("reload failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("reload failed: %v", err))
		return
	}

	s.SetStore(store)
	logger.Info("store reloaded", "entities", store.Count())
	s.writeJSON(w, http.StatusOK, map[string]any{"ok": true, "entities": store.Count()})
}

// Helper methods

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("encode json response failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) getQueryParam(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}

func (s *Server) getQueryParamInt(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return intVal
}
