package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/mediaimport/internal/host"
)

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ping", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"id":"s1","name":"Den","version":"1.2"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", 0, nil)
	assert.Equal(t, server.URL, client.BaseURL())

	id, err := client.Ping(context.Background())
	require.NoError(t, err, "Ping")
	assert.Equal(t, "s1", id.ID)
	assert.Equal(t, "Den", id.Name)
}

func TestClient_Ping_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, 0, nil).Ping(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_Ping_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, 0, nil).Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_Items(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "movie", r.URL.Query().Get("mediatype"))
		_, _ = w.Write([]byte(`{"items":[{"id":"1","label":"Heat"},{"id":"2","label":"Ronin","media_type":"movie"}]}`))
	}))
	defer server.Close()

	items, err := NewClient(server.URL, 0, nil).Items(context.Background(), host.MediaTypeMovie)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Heat", items[0].Label)
	assert.Equal(t, host.MediaTypeMovie, items[0].MediaType, "missing media type defaults to the requested one")
}

func TestClient_Changes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/changes", r.URL.Path)
		assert.Equal(t, "c1", r.URL.Query().Get("since"))
		_, _ = w.Write([]byte(`{"cursor":"c2","changes":[{"type":"removed","item":{"id":"9","media_type":"episode"}}]}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, 0, nil).Changes(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c2", resp.Cursor)
	require.Len(t, resp.Changes, 1)
	assert.Equal(t, "removed", resp.Changes[0].Type)
	assert.Equal(t, "9", resp.Changes[0].Item.ID)
}

func TestClient_UpdatePlayState(t *testing.T) {
	var got PlayState
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/items/a b/playstate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := NewClient(server.URL, 0, nil).UpdatePlayState(context.Background(), "a b", PlayState{Playcount: 3, ResumePosition: 42})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Playcount)
	assert.InDelta(t, 42.0, got.ResumePosition, 0.001)
}

func TestClient_UpdatePlayState_NoID(t *testing.T) {
	err := NewClient("http://unused", 0, nil).UpdatePlayState(context.Background(), "", PlayState{})
	require.ErrorIs(t, err, ErrNoItemID)
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewClient(server.URL, 0, nil).Items(context.Background(), host.MediaTypeMovie)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Views(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/views", r.URL.Path)
		_, _ = w.Write([]byte(`{"views":[{"id":"v1","name":"Movies"},{"id":"v2","name":"Kids"}]}`))
	}))
	defer server.Close()

	views, err := NewClient(server.URL, 0, nil).Views(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []View{{ID: "v1", Name: "Movies"}, {ID: "v2", Name: "Kids"}}, views)
}
