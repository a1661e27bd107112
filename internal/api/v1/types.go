package v1

import (
	"github.com/vmunix/mediaimport/internal/host"
	"github.com/vmunix/mediaimport/internal/host/local"
)

type statusResponse struct {
	Status          string `json:"status"`
	Version         string `json:"version"`
	Providers       int    `json:"providers"`
	ActiveProviders int    `json:"active_providers"`
	Imports         int    `json:"imports"`
}

// ImportResponse is one media import of a provider.
type ImportResponse struct {
	Key        string   `json:"key"`
	MediaTypes []string `json:"media_types"`
}

// ProviderResponse is a provider with its imports.
type ProviderResponse struct {
	host.Provider
	Imports []ImportResponse `json:"imports"`
}

type listProvidersResponse struct {
	Items []ProviderResponse `json:"items"`
	Total int                `json:"total"`
}

type addImportRequest struct {
	MediaTypes []string `json:"media_types"`
}

type listItemsResponse struct {
	Items []host.Item `json:"items"`
	Total int         `json:"total"`
}

// EventResponse is one entry of the event log.
type EventResponse struct {
	ID         int64  `json:"id"`
	EventType  string `json:"event_type"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	OccurredAt string `json:"occurred_at"`
}

type listEventsResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
}

type invokeRequest struct {
	Path       string `json:"path"`
	Query      string `json:"query"`
	ProviderID string `json:"provider_id"`
	ImportKey  string `json:"import_key"`
}

type invokeResponse struct {
	Acks       map[string]bool        `json:"acks"`
	Status     string                 `json:"status,omitempty"`
	Imported   map[string][]host.Item `json:"imported,omitempty"`
	Finished   bool                   `json:"finished"`
	Partial    bool                   `json:"partial"`
	Updated    bool                   `json:"updated"`
	Discovered *host.Provider         `json:"discovered,omitempty"`
}

func toProviderResponse(p host.Provider, imports []host.Import) ProviderResponse {
	resp := ProviderResponse{Provider: p, Imports: make([]ImportResponse, len(imports))}
	for i, imp := range imports {
		resp.Imports[i] = ImportResponse{Key: imp.Key(), MediaTypes: imp.MediaTypes}
	}
	return resp
}

func toInvokeResponse(res local.Result) invokeResponse {
	return invokeResponse{
		Acks:       res.Acks,
		Status:     res.Status,
		Imported:   res.Imported,
		Finished:   res.Finished,
		Partial:    res.Partial,
		Updated:    res.Updated,
		Discovered: res.Discovered,
	}
}
