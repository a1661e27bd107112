// Package remote talks to a media server exposing the generic JSON library
// feed the add-on imports from.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vmunix/mediaimport/internal/host"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 10 * time.Second

// Client interacts with one remote media server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a new client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log.With("component", "remote"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the server URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Identity holds the server's self-description.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Ping checks that the server is reachable and accepts us.
func (c *Client) Ping(ctx context.Context) (*Identity, error) {
	var id Identity
	if err := c.do(ctx, http.MethodGet, "/ping", nil, nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

type itemsResponse struct {
	Items []host.Item `json:"items"`
}

// Items returns every item of the given media type.
func (c *Client) Items(ctx context.Context, mediaType string) ([]host.Item, error) {
	var resp itemsResponse
	q := url.Values{"mediatype": {mediaType}}
	if err := c.do(ctx, http.MethodGet, "/items", q, nil, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Items {
		if resp.Items[i].MediaType == "" {
			resp.Items[i].MediaType = mediaType
		}
	}
	return resp.Items, nil
}

// View is a library section the server can restrict imports to.
type View struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type viewsResponse struct {
	Views []View `json:"views"`
}

// Views returns the server's library sections.
func (c *Client) Views(ctx context.Context) ([]View, error) {
	var resp viewsResponse
	if err := c.do(ctx, http.MethodGet, "/views", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Views, nil
}

// Change is one entry of the server's change feed.
type Change struct {
	Type string     `json:"type"` // "added", "changed", "removed"
	Item *host.Item `json:"item"`
}

// ChangesResponse is one page of the change feed.
type ChangesResponse struct {
	Cursor  string   `json:"cursor"`
	Changes []Change `json:"changes"`
}

// Changes returns the changes recorded after cursor. An empty cursor asks
// the server for its current position without any changes.
func (c *Client) Changes(ctx context.Context, cursor string) (*ChangesResponse, error) {
	var resp ChangesResponse
	q := url.Values{}
	if cursor != "" {
		q.Set("since", cursor)
	}
	if err := c.do(ctx, http.MethodGet, "/changes", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlayState is the playback metadata pushed back to the server.
type PlayState struct {
	Playcount      int        `json:"playcount"`
	LastPlayed     *time.Time `json:"last_played,omitempty"`
	ResumePosition float64    `json:"resume_position"`
	TotalTime      float64    `json:"total_time"`
}

// UpdatePlayState pushes the item's playback state to the server.
func (c *Client) UpdatePlayState(ctx context.Context, itemID string, state PlayState) error {
	if itemID == "" {
		return fmt.Errorf("update play state: %w", ErrNoItemID)
	}
	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode play state: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/items/"+url.PathEscape(itemID)+"/playstate", nil, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body []byte, result any) error {
	start := time.Now()
	reqURL := c.baseURL + path
	if len(q) > 0 {
		reqURL += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.log.Debug("unexpected status", "path", path, "status", resp.StatusCode)
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	c.log.Debug("request complete", "method", method, "path", path, "duration_ms", time.Since(start).Milliseconds())
	return nil
}
