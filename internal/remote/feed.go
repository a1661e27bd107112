package remote

import (
	"context"
	"log/slog"
	"time"

	"github.com/vmunix/mediaimport/internal/host"
)

// Feed follows a server's change feed from the position it had when the
// feed was opened.
type Feed struct {
	client *Client
	cursor string
}

// OpenFeed connects to the server at baseURL and positions a feed at the
// server's current cursor, so only changes made from now on are reported.
func OpenFeed(ctx context.Context, baseURL string, timeout time.Duration, log *slog.Logger) (*Feed, error) {
	client := NewClient(baseURL, timeout, log)
	if _, err := client.Ping(ctx); err != nil {
		return nil, err
	}
	resp, err := client.Changes(ctx, "")
	if err != nil {
		return nil, err
	}
	return &Feed{client: client, cursor: resp.Cursor}, nil
}

// Changes returns everything that changed since the previous call.
func (f *Feed) Changes(ctx context.Context) ([]host.ChangedItem, error) {
	resp, err := f.client.Changes(ctx, f.cursor)
	if err != nil {
		return nil, err
	}
	if resp.Cursor != "" {
		f.cursor = resp.Cursor
	}

	changes := make([]host.ChangedItem, 0, len(resp.Changes))
	for _, c := range resp.Changes {
		changes = append(changes, host.ChangedItem{Type: host.ParseChangesetType(c.Type), Item: c.Item})
	}
	return changes, nil
}

// Close releases the feed.
func (f *Feed) Close() error {
	f.client.httpClient.CloseIdleConnections()
	return nil
}
