package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vmunix/mediaimport/internal/host"
	"github.com/vmunix/mediaimport/internal/host/local"
	"github.com/vmunix/mediaimport/internal/importer"
)

func (s *Server) listProviders(w http.ResponseWriter, _ *http.Request) {
	providers, err := s.deps.Host.Providers()
	if err != nil {
		writeHostError(w, err)
		return
	}

	resp := listProvidersResponse{Items: make([]ProviderResponse, 0, len(providers)), Total: len(providers)}
	for _, p := range providers {
		imports, err := s.deps.Host.Imports(p.ID)
		if err != nil {
			writeHostError(w, err)
			return
		}
		resp.Items = append(resp.Items, toProviderResponse(p, imports))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getProvider(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Host.Store().GetProvider(r.PathValue("id"))
	if err != nil {
		writeHostError(w, err)
		return
	}
	imports, err := s.deps.Host.Imports(p.ID)
	if err != nil {
		writeHostError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProviderResponse(*p, imports))
}

func (s *Server) deleteProvider(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Host.RemoveProvider(r.Context(), r.PathValue("id")); err != nil {
		writeHostError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addImport(w http.ResponseWriter, r *http.Request) {
	var req addImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if len(req.MediaTypes) == 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "media_types is required")
		return
	}

	imp, err := s.deps.Host.AddImport(r.Context(), r.PathValue("id"), req.MediaTypes)
	if err != nil {
		writeHostError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ImportResponse{Key: imp.Key(), MediaTypes: imp.MediaTypes})
}

func (s *Server) lookupImport(w http.ResponseWriter, r *http.Request) (*host.Import, bool) {
	imp, err := s.deps.Host.Store().GetImport(r.PathValue("key"))
	if err != nil {
		writeHostError(w, err)
		return nil, false
	}
	return imp, true
}

func (s *Server) deleteImport(w http.ResponseWriter, r *http.Request) {
	imp, ok := s.lookupImport(w, r)
	if !ok {
		return
	}
	if err := s.deps.Host.RemoveImport(r.Context(), *imp); err != nil {
		writeHostError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	imp, ok := s.lookupImport(w, r)
	if !ok {
		return
	}
	items, err := s.deps.Host.Store().ListItems(imp.Key())
	if err != nil {
		writeHostError(w, err)
		return
	}
	if items == nil {
		items = []host.Item{}
	}
	writeJSON(w, http.StatusOK, listItemsResponse{Items: items, Total: len(items)})
}

func (s *Server) syncImport(w http.ResponseWriter, r *http.Request) {
	imp, ok := s.lookupImport(w, r)
	if !ok {
		return
	}
	if err := s.deps.Host.Synchronise(r.Context(), *imp); err != nil {
		s.logger.Warn("synchronisation failed", "import", imp.String(), "error", err)
		writeError(w, http.StatusBadGateway, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{Key: imp.Key(), MediaTypes: imp.MediaTypes})
}

func (s *Server) invoke(w http.ResponseWriter, r *http.Request) {
	var req invokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "path is required")
		return
	}

	h := s.deps.Host.Begin(local.Invocation{ProviderID: req.ProviderID, ImportKey: req.ImportKey})
	defer s.deps.Host.End(h)

	if err := s.deps.Dispatcher.Dispatch(r.Context(), h, req.Path, req.Query); err != nil {
		switch {
		case errors.Is(err, importer.ErrUnknownAction), errors.Is(err, importer.ErrNotImplemented):
			writeError(w, http.StatusBadRequest, "UNKNOWN_ACTION", err.Error())
		case errors.Is(err, host.ErrNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		default:
			writeError(w, http.StatusBadGateway, "ACTION_FAILED", err.Error())
		}
		return
	}

	res, _ := s.deps.Host.Result(h)
	writeJSON(w, http.StatusOK, toInvokeResponse(res))
}
