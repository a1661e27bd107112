package events

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/mediaimport/internal/host"
	"github.com/vmunix/mediaimport/internal/migrations"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Apply(db))
	return db
}

// seed appends one provider event per id, all of type eventType.
func seed(t *testing.T, log *EventLog, eventType string, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := log.Append(NewProviderEvent(eventType, host.Provider{ID: id}))
		require.NoError(t, err)
	}
}

func entityIDs(records []Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.EntityID
	}
	return ids
}

func TestEventLog_AppendStoresPayload(t *testing.T) {
	log := NewEventLog(setupTestDB(t))

	imp := host.Import{Provider: host.Provider{ID: "p1"}, MediaTypes: []string{host.MediaTypeMovie}}
	id, err := log.Append(NewImportEvent(EventImportAdded, imp))
	require.NoError(t, err)
	assert.Positive(t, id)

	records, err := log.ForEntity(EntityImport, imp.Key())
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, EventImportAdded, rec.Type)
	assert.Equal(t, EntityImport, rec.EntityType)
	assert.Contains(t, rec.Payload, `"media_types"`)
	assert.False(t, rec.OccurredAt.IsZero())
}

func TestEventLog_Find(t *testing.T) {
	log := NewEventLog(setupTestDB(t))
	seed(t, log, EventProviderAdded, "p1", "p2")
	seed(t, log, EventProviderRemoved, "p1")
	_, err := log.Append(NewImportEvent(EventImportAdded, host.Import{Provider: host.Provider{ID: "p3"}}))
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"everything oldest first", Filter{}, []string{"p1", "p2", "p1", "p3|"}},
		{"newest first with limit", Filter{NewestFirst: true, Limit: 2}, []string{"p3|", "p1"}},
		{"single type", Filter{Types: []string{EventProviderRemoved}}, []string{"p1"}},
		{"several types", Filter{Types: []string{EventProviderRemoved, EventImportAdded}}, []string{"p1", "p3|"}},
		{"entity type", Filter{EntityType: EntityProvider}, []string{"p1", "p2", "p1"}},
		{"entity", Filter{EntityType: EntityProvider, EntityID: "p2"}, []string{"p2"}},
		{"since the future", Filter{Since: time.Now().Add(time.Hour)}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := log.Find(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, entityIDs(records))
		})
	}
}

func TestEventLog_Recent(t *testing.T) {
	log := NewEventLog(setupTestDB(t))
	for i := 1; i <= 5; i++ {
		seed(t, log, EventProviderUpdated, fmt.Sprintf("p%d", i))
	}

	records, err := log.Recent(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"p5", "p4", "p3"}, entityIDs(records))
}

func TestEventLog_Prune(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)

	_, err := db.Exec(`
		INSERT INTO events (event_type, entity_type, entity_id, payload, occurred_at)
		VALUES (?, ?, ?, ?, ?)`,
		EventProviderAdded, EntityProvider, "stale", `{}`, time.Now().Add(-40*24*time.Hour),
	)
	require.NoError(t, err)
	seed(t, log, EventProviderAdded, "fresh")

	n, err := log.Prune(30 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	records, err := log.Find(Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, entityIDs(records))
}
