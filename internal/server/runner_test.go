package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/mediaimport/internal/discovery"
	"github.com/vmunix/mediaimport/internal/host"
	"github.com/vmunix/mediaimport/internal/host/local"
	"github.com/vmunix/mediaimport/internal/observer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestRunner(t *testing.T, cfg Config) *Runner {
	t.Helper()
	db, err := local.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRunner(db, cfg, testLogger())
}

type idleSession struct {
	closed atomic.Int32
}

func (s *idleSession) Changes(context.Context) ([]host.ChangedItem, error) { return nil, nil }

func (s *idleSession) Close() error {
	s.closed.Add(1)
	return nil
}

func fastConfig() Config {
	return Config{
		Discovery: discovery.Config{
			Interval: 10 * time.Millisecond,
			Expiry:   time.Minute,
		},
		ObserverInterval: 10 * time.Millisecond,
	}
}

func TestRunner_RegistersAndObservesDiscoveredServer(t *testing.T) {
	r := setupTestRunner(t, fastConfig())
	r.SetProber(discovery.ProberFunc(func(context.Context) ([]discovery.Sighting, error) {
		return []discovery.Sighting{{ID: "srv-1", Name: "Den", Address: "http://den.local:8096"}}, nil
	}))

	session := &idleSession{}
	var connects atomic.Int32
	r.SetConnector(observer.ConnectorFunc(func(_ context.Context, p host.Provider, settings host.Settings) (observer.Session, error) {
		connects.Add(1)
		u, err := host.URL(settings)
		if err != nil {
			return nil, err
		}
		assert.Equal(t, "http://den.local:8096", u)
		assert.Equal(t, discovery.ProviderID("srv-1"), p.ID)
		return session, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return connects.Load() > 0 }, 2*time.Second, 5*time.Millisecond)

	providers, err := r.Host().Providers()
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "Den", providers[0].FriendlyName)
	assert.True(t, providers[0].Active)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
	assert.Equal(t, int32(1), session.closed.Load())
	assert.Equal(t, int32(1), connects.Load())
}

func TestRunner_ReplaysStoredProviders(t *testing.T) {
	cfg := fastConfig()
	cfg.DisableDiscovery = true
	r := setupTestRunner(t, cfg)

	p := host.Provider{ID: "p1", FriendlyName: "Attic", MediaTypes: []string{host.MediaTypeMovie}}
	require.NoError(t, r.Host().AddAndActivateProvider(context.Background(), p))

	connected := make(chan string, 1)
	r.SetConnector(observer.ConnectorFunc(func(_ context.Context, p host.Provider, _ host.Settings) (observer.Session, error) {
		select {
		case connected <- p.ID:
		default:
		}
		return &idleSession{}, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case id := <-connected:
		assert.Equal(t, "p1", id)
	case <-time.After(2 * time.Second):
		t.Fatal("stored provider was not observed")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestRunner_DispatcherUsesReplacedProber(t *testing.T) {
	cfg := fastConfig()
	cfg.DisableDiscovery = true
	cfg.DisableObserver = true
	r := setupTestRunner(t, cfg)

	r.SetProber(discovery.ProberFunc(func(context.Context) ([]discovery.Sighting, error) {
		return []discovery.Sighting{{ID: "srv-2", Name: "Loft", Address: "http://loft.local"}}, nil
	}))

	ctx := context.Background()
	h := r.Host().Begin(local.Invocation{})
	defer r.Host().End(h)
	require.NoError(t, r.Dispatcher().Dispatch(ctx, h, "plugin://mediaimport/discoverprovider", ""))

	res, ok := r.Host().Result(h)
	require.True(t, ok)
	require.NotNil(t, res.Discovered)
	assert.Equal(t, discovery.ProviderID("srv-2"), res.Discovered.ID)
	assert.Equal(t, "Loft", res.Discovered.FriendlyName)
}

func TestRunner_ServesMetrics(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cfg := fastConfig()
	cfg.DisableDiscovery = true
	cfg.DisableObserver = true
	cfg.MetricsListen = addr
	r := setupTestRunner(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		b, err := io.ReadAll(resp.Body)
		if err != nil || resp.StatusCode != http.StatusOK {
			return false
		}
		body = string(b)
		return true
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, strings.Contains(body, "mediaimport_"))

	cancel()
	require.NoError(t, <-done)
}
