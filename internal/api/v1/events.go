package v1

import (
	"net/http"
	"time"

	"github.com/vmunix/mediaimport/internal/events"
)

func toEventResponses(records []events.Record) []EventResponse {
	out := make([]EventResponse, len(records))
	for i, rec := range records {
		out[i] = EventResponse{
			ID:         rec.ID,
			EventType:  rec.Type,
			EntityType: rec.EntityType,
			EntityID:   rec.EntityID,
			OccurredAt: rec.OccurredAt.Format(time.RFC3339),
		}
	}
	return out
}

// listEvents serves the recent event history, newest first. Repeated
// ?type= parameters narrow it to those event types.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit must be non-negative")
		return
	}
	const maxLimit = 1000
	if limit == 0 || limit > maxLimit {
		limit = maxLimit
	}

	types := r.URL.Query()["type"]
	for _, t := range types {
		if !events.Known(t) {
			writeError(w, http.StatusBadRequest, "INVALID_EVENT_TYPE", "unknown event type: "+t)
			return
		}
	}

	records, err := s.deps.EventLog.Find(events.Filter{
		Types:       types,
		EntityType:  r.URL.Query().Get("entity_type"),
		Limit:       limit,
		NewestFirst: true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, listEventsResponse{Items: toEventResponses(records), Total: len(records)})
}

func (s *Server) listProviderEvents(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Host.Store().GetProvider(r.PathValue("id"))
	if err != nil {
		writeHostError(w, err)
		return
	}

	records, err := s.deps.EventLog.ForEntity(events.EntityProvider, p.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, listEventsResponse{Items: toEventResponses(records), Total: len(records)})
}
