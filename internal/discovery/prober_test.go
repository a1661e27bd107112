package discovery

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProber_ReportsReachableServers(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	closed, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	deadAddr := closed.Addr().String()
	require.NoError(t, closed.Close())

	prober := NewStaticProber([]Sighting{
		{ID: "up", Name: "Up", Address: "http://" + ln.Addr().String()},
		{ID: "down", Name: "Down", Address: deadAddr},
		{ID: "raw", Name: "Raw", Address: ln.Addr().String()},
		{ID: "bad", Name: "Bad", Address: "no-port"},
	}, 200*time.Millisecond)

	seen, err := prober.Probe(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(seen))
	for _, s := range seen {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"up", "raw"}, ids)
}

func TestDialAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"http://10.0.0.5:8096", "10.0.0.5:8096", false},
		{"http://media.local", "media.local:80", false},
		{"https://media.local/base", "media.local:443", false},
		{"10.0.0.5:32400", "10.0.0.5:32400", false},
		{"media.local", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := dialAddress(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
