package observer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/mediaimport/internal/host"
	"github.com/vmunix/mediaimport/internal/host/mocks"
	"go.uber.org/mock/gomock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// logBuffer collects text log output so tests can count notices.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// count returns how many records carry msg.
func (b *logBuffer) count(msg string) int {
	return strings.Count(b.String(), "msg=\""+msg+"\"")
}

func capturingLogger() (*slog.Logger, *logBuffer) {
	b := &logBuffer{}
	return slog.New(slog.NewTextHandler(b, &slog.HandlerOptions{Level: slog.LevelDebug})), b
}

const (
	connectedNotice = "successfully connected to provider to observe media imports"
	stoppedNotice   = "stopped observing media imports"
	unmatchedNotice = "failed to determine media import for changed item"
)

// fakeSession returns the queued change batches one per call.
type fakeSession struct {
	mu      sync.Mutex
	batches [][]host.ChangedItem
	err     error
	closed  int
}

func (s *fakeSession) Changes(context.Context) ([]host.ChangedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if len(s.batches) == 0 {
		return nil, nil
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch, nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

// countingConnector hands out the same session and counts connects.
type countingConnector struct {
	session  *fakeSession
	err      error
	connects int
}

func (c *countingConnector) Connect(context.Context, host.Provider, host.Settings) (Session, error) {
	c.connects++
	if c.err != nil {
		return nil, c.err
	}
	return c.session, nil
}

var testProvider = host.Provider{ID: "p1", FriendlyName: "Den", Active: true}

func change(kind host.ChangesetType, id, mediaType string) host.ChangedItem {
	return host.ChangedItem{Type: kind, Item: &host.Item{ID: id, Label: id, MediaType: mediaType}}
}

func connectedObserver(t *testing.T, ctrl *gomock.Controller) (*ProviderObserver, *mocks.MockCatalog, *fakeSession) {
	t.Helper()
	return connectedObserverLogging(t, ctrl, testLogger())
}

func connectedObserverLogging(t *testing.T, ctrl *gomock.Controller, logger *slog.Logger) (*ProviderObserver, *mocks.MockCatalog, *fakeSession) {
	t.Helper()
	catalog := mocks.NewMockCatalog(ctrl)
	settings := mocks.NewMockSettings(ctrl)
	session := &fakeSession{}

	catalog.EXPECT().PrepareProviderSettings(gomock.Any(), gomock.Any()).Return(settings, nil)

	o := NewProviderObserver(testProvider.ID, catalog, &countingConnector{session: session}, logger)
	require.NoError(t, o.Start(testProvider))
	require.NoError(t, o.Process(context.Background()))
	require.Equal(t, Connected, o.State())
	return o, catalog, session
}

func TestProviderObserver_StartIsQueued(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)

	o := NewProviderObserver("p1", catalog, nil, testLogger())
	require.NoError(t, o.Start(testProvider))

	assert.Equal(t, Disconnected, o.State())
	assert.Equal(t, 1, o.Pending())
}

func TestProviderObserver_StartRejectsInvalidProvider(t *testing.T) {
	o := NewProviderObserver("p1", nil, nil, testLogger())
	assert.ErrorIs(t, o.Start(host.Provider{}), ErrInvalidProvider)
	assert.Equal(t, 0, o.Pending())
}

func TestProviderObserver_StartConnects(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, _, _ := connectedObserver(t, ctrl)
	assert.Equal(t, 0, o.Pending())
}

func TestProviderObserver_StartTwiceConnectsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	settings := mocks.NewMockSettings(ctrl)
	connector := &countingConnector{session: &fakeSession{}}

	catalog.EXPECT().PrepareProviderSettings(gomock.Any(), testProvider).Return(settings, nil).Times(1)

	logger, logs := capturingLogger()
	o := NewProviderObserver("p1", catalog, connector, logger)
	require.NoError(t, o.Start(testProvider))
	require.NoError(t, o.Start(testProvider))
	require.NoError(t, o.Process(context.Background()))

	assert.Equal(t, Connected, o.State())
	assert.Equal(t, 1, connector.connects)
	assert.Equal(t, 1, logs.count(connectedNotice))
}

func TestProviderObserver_StartWhenConnectedIsSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger, logs := capturingLogger()
	o, _, session := connectedObserverLogging(t, ctrl, logger)
	require.Equal(t, 1, logs.count(connectedNotice))

	require.NoError(t, o.Start(testProvider))
	require.NoError(t, o.Process(context.Background()))

	assert.Equal(t, Connected, o.State())
	assert.Equal(t, 1, logs.count(connectedNotice))
	assert.Zero(t, logs.count(stoppedNotice))
	assert.Zero(t, session.closed)
}

func TestProviderObserver_SettingsFailureStaysDisconnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().PrepareProviderSettings(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

	o := NewProviderObserver("p1", catalog, nil, testLogger())
	require.NoError(t, o.Start(testProvider))

	err := o.Process(context.Background())
	require.ErrorIs(t, err, ErrSettingsUnavailable)
	assert.Equal(t, Disconnected, o.State())
}

func TestProviderObserver_NilSettingsStaysDisconnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().PrepareProviderSettings(gomock.Any(), gomock.Any()).Return(nil, nil)

	o := NewProviderObserver("p1", catalog, nil, testLogger())
	require.NoError(t, o.Start(testProvider))

	require.ErrorIs(t, o.Process(context.Background()), ErrSettingsUnavailable)
	assert.Equal(t, Disconnected, o.State())
}

func TestProviderObserver_ConnectFailureStaysDisconnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	settings := mocks.NewMockSettings(ctrl)
	catalog.EXPECT().PrepareProviderSettings(gomock.Any(), gomock.Any()).Return(settings, nil)

	connectErr := errors.New("refused")
	o := NewProviderObserver("p1", catalog, &countingConnector{err: connectErr}, testLogger())
	require.NoError(t, o.Start(testProvider))

	require.ErrorIs(t, o.Process(context.Background()), connectErr)
	assert.Equal(t, Disconnected, o.State())
}

func TestProviderObserver_StopWhenDisconnectedIsNoop(t *testing.T) {
	logger, logs := capturingLogger()
	o := NewProviderObserver("p1", nil, nil, logger)
	o.Stop()
	o.Stop()
	require.NoError(t, o.Process(context.Background()))
	assert.Equal(t, Disconnected, o.State())
	assert.Zero(t, logs.count(stoppedNotice))
}

func TestProviderObserver_StopNoticeOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger, logs := capturingLogger()
	o, _, _ := connectedObserverLogging(t, ctrl, logger)

	o.Stop()
	o.Stop()
	require.NoError(t, o.Process(context.Background()))

	assert.Equal(t, Disconnected, o.State())
	assert.Equal(t, 1, logs.count(stoppedNotice))
}

func TestProviderObserver_StopClosesSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, _, session := connectedObserver(t, ctrl)

	o.Stop()
	require.NoError(t, o.Process(context.Background()))

	assert.Equal(t, Disconnected, o.State())
	assert.Equal(t, 1, session.closed)
}

func TestProviderObserver_StartThenStopInOneTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	settings := mocks.NewMockSettings(ctrl)
	session := &fakeSession{batches: [][]host.ChangedItem{{change(host.ChangesetAdded, "m1", host.MediaTypeMovie)}}}

	catalog.EXPECT().PrepareProviderSettings(gomock.Any(), gomock.Any()).Return(settings, nil)
	// no ChangeImportedItems: the observer is disconnected when the sync step runs

	o := NewProviderObserver("p1", catalog, &countingConnector{session: session}, testLogger())
	require.NoError(t, o.AddImport(host.Import{Provider: testProvider, MediaTypes: []string{host.MediaTypeMovie}}))
	require.NoError(t, o.Start(testProvider))
	o.Stop()
	require.NoError(t, o.Process(context.Background()))

	assert.Equal(t, Disconnected, o.State())
	assert.Equal(t, 1, session.closed)
}

func TestProviderObserver_CloseDiscardsQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, _, session := connectedObserver(t, ctrl)

	require.NoError(t, o.Start(testProvider))
	o.Close()

	assert.Equal(t, Disconnected, o.State())
	assert.Equal(t, 0, o.Pending())
	assert.Equal(t, 1, session.closed)
}

func TestProviderObserver_AddImportReplacesByIdentity(t *testing.T) {
	o := NewProviderObserver("p1", nil, nil, testLogger())

	require.NoError(t, o.AddImport(host.Import{Provider: testProvider, MediaTypes: []string{"movie", "set"}}))
	renamed := testProvider
	renamed.FriendlyName = "Living room"
	require.NoError(t, o.AddImport(host.Import{Provider: renamed, MediaTypes: []string{"set", "movie"}}))
	require.NoError(t, o.AddImport(host.Import{Provider: testProvider, MediaTypes: []string{"episode"}}))

	imports := o.Imports()
	require.Len(t, imports, 2)
	assert.Equal(t, "Living room", imports[0].Provider.FriendlyName)
	assert.Equal(t, []string{"episode"}, imports[1].MediaTypes)
}

func TestProviderObserver_RemoveImport(t *testing.T) {
	o := NewProviderObserver("p1", nil, nil, testLogger())
	movies := host.Import{Provider: testProvider, MediaTypes: []string{"movie"}}

	require.NoError(t, o.AddImport(movies))
	require.NoError(t, o.RemoveImport(host.Import{Provider: testProvider, MediaTypes: []string{"episode"}}))
	assert.Len(t, o.Imports(), 1)

	require.NoError(t, o.RemoveImport(movies))
	assert.Empty(t, o.Imports())

	assert.ErrorIs(t, o.AddImport(host.Import{}), ErrInvalidImport)
	assert.ErrorIs(t, o.RemoveImport(host.Import{}), ErrInvalidImport)
}

func TestProviderObserver_GroupsChangesByImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, catalog, session := connectedObserver(t, ctrl)

	shows := host.Import{Provider: testProvider, MediaTypes: []string{"tvshow", "season", "episode"}}
	movies := host.Import{Provider: testProvider, MediaTypes: []string{"movie"}}
	require.NoError(t, o.AddImport(shows))
	require.NoError(t, o.AddImport(movies))

	e1 := change(host.ChangesetChanged, "e1", "episode")
	m1 := change(host.ChangesetAdded, "m1", "movie")
	e2 := change(host.ChangesetRemoved, "e2", "episode")
	session.batches = [][]host.ChangedItem{{e1, m1, {Type: host.ChangesetAdded}, e2}}

	gomock.InOrder(
		catalog.EXPECT().ChangeImportedItems(gomock.Any(), shows, []host.ChangedItem{e1, e2}).Return(nil),
		catalog.EXPECT().ChangeImportedItems(gomock.Any(), movies, []host.ChangedItem{m1}).Return(nil),
	)

	require.NoError(t, o.Process(context.Background()))
}

func TestProviderObserver_DropsUnmatchedItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger, logs := capturingLogger()
	o, catalog, session := connectedObserverLogging(t, ctrl, logger)

	movies := host.Import{Provider: testProvider, MediaTypes: []string{"movie"}}
	require.NoError(t, o.AddImport(movies))

	m1 := change(host.ChangesetAdded, "m1", "movie")
	session.batches = [][]host.ChangedItem{{
		change(host.ChangesetAdded, "mv1", "musicvideo"),
		m1,
		change(host.ChangesetRemoved, "s1", "song"),
	}}

	catalog.EXPECT().ChangeImportedItems(gomock.Any(), movies, []host.ChangedItem{m1}).Return(nil)

	require.NoError(t, o.Process(context.Background()))
	assert.Equal(t, 2, logs.count(unmatchedNotice))
	assert.Equal(t, 1, strings.Count(logs.String(), "item_id=mv1"))
	assert.Equal(t, 1, strings.Count(logs.String(), "item_id=s1"))
	assert.Zero(t, strings.Count(logs.String(), "item_id=m1 "))
}

func TestProviderObserver_ChangeFailureIsAbsorbed(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, catalog, session := connectedObserver(t, ctrl)

	movies := host.Import{Provider: testProvider, MediaTypes: []string{"movie"}}
	require.NoError(t, o.AddImport(movies))
	session.batches = [][]host.ChangedItem{{change(host.ChangesetAdded, "m1", "movie")}}

	catalog.EXPECT().ChangeImportedItems(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db locked"))

	require.NoError(t, o.Process(context.Background()))
	assert.Equal(t, Connected, o.State())
}

func TestProviderObserver_SessionErrorKeepsConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, _, session := connectedObserver(t, ctrl)
	session.err = errors.New("timeout")

	require.NoError(t, o.Process(context.Background()))
	assert.Equal(t, Connected, o.State())
}
