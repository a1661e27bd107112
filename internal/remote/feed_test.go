package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/mediaimport/internal/host"
)

func TestFeed_FollowsCursor(t *testing.T) {
	var sinces []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ping":
			_, _ = w.Write([]byte(`{"id":"s1"}`))
		case "/changes":
			since := r.URL.Query().Get("since")
			sinces = append(sinces, since)
			switch since {
			case "":
				_, _ = w.Write([]byte(`{"cursor":"c1"}`))
			case "c1":
				_, _ = w.Write([]byte(`{"cursor":"c2","changes":[{"type":"added","item":{"id":"1","media_type":"movie"}},{"type":"changed","item":{"id":"2","media_type":"episode"}}]}`))
			default:
				_, _ = w.Write([]byte(`{"cursor":"c2","changes":[]}`))
			}
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	feed, err := OpenFeed(ctx, server.URL, 0, nil)
	require.NoError(t, err)
	defer feed.Close()

	changes, err := feed.Changes(ctx)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, host.ChangesetAdded, changes[0].Type)
	assert.Equal(t, host.ChangesetChanged, changes[1].Type)
	assert.Equal(t, "2", changes[1].Item.ID)

	changes, err = feed.Changes(ctx)
	require.NoError(t, err)
	assert.Empty(t, changes)

	assert.Equal(t, []string{"", "c1", "c2"}, sinces)
}

func TestOpenFeed_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := OpenFeed(context.Background(), server.URL, 0, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
}
