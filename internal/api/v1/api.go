// Package v1 implements the native REST API over the local host.
package v1

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vmunix/mediaimport/internal/events"
	"github.com/vmunix/mediaimport/internal/host"
	"github.com/vmunix/mediaimport/internal/host/local"
	"github.com/vmunix/mediaimport/internal/importer"
)

// Deps are the components the API reads and drives.
type Deps struct {
	Host       *local.Host
	Dispatcher *importer.Dispatcher
	EventLog   *events.EventLog
}

// Server is the v1 API server.
type Server struct {
	deps    Deps
	version string
	logger  *slog.Logger
}

// New creates a new v1 API server.
func New(deps Deps, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{deps: deps, version: version, logger: logger}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
	mux.HandleFunc("GET /api/v1/events", s.requireEventLog(s.listEvents))

	// Providers
	mux.HandleFunc("GET /api/v1/providers", s.listProviders)
	mux.HandleFunc("GET /api/v1/providers/{id}", s.getProvider)
	mux.HandleFunc("DELETE /api/v1/providers/{id}", s.deleteProvider)
	mux.HandleFunc("GET /api/v1/providers/{id}/events", s.requireEventLog(s.listProviderEvents))

	// Imports
	mux.HandleFunc("POST /api/v1/providers/{id}/imports", s.addImport)
	mux.HandleFunc("DELETE /api/v1/imports/{key}", s.deleteImport)
	mux.HandleFunc("GET /api/v1/imports/{key}/items", s.listItems)
	mux.HandleFunc("POST /api/v1/imports/{key}/sync", s.syncImport)

	// Importer actions
	mux.HandleFunc("POST /api/v1/invoke", s.requireDispatcher(s.invoke))
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeHostError maps host errors onto status codes.
func writeHostError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, host.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, local.ErrConstraint):
		writeError(w, http.StatusConflict, "CONSTRAINT", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "HOST_ERROR", err.Error())
	}
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	providers, err := s.deps.Host.Providers()
	if err != nil {
		writeHostError(w, err)
		return
	}

	resp := statusResponse{Status: "ok", Version: s.version, Providers: len(providers)}
	for _, p := range providers {
		if p.Active {
			resp.ActiveProviders++
		}
		imports, err := s.deps.Host.Imports(p.ID)
		if err != nil {
			writeHostError(w, err)
			return
		}
		resp.Imports += len(imports)
	}
	writeJSON(w, http.StatusOK, resp)
}
