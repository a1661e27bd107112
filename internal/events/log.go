package events

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EventLog persists lifecycle events to SQLite.
type EventLog struct {
	db *sql.DB
}

// NewEventLog creates an event log on a migrated database.
func NewEventLog(db *sql.DB) *EventLog {
	return &EventLog{db: db}
}

// Record is one persisted event with its JSON payload.
type Record struct {
	ID         int64
	Type       string
	EntityType string
	EntityID   string
	Payload    string
	OccurredAt time.Time
	CreatedAt  time.Time
}

// Filter selects log records. Zero fields match everything.
type Filter struct {
	Types      []string
	EntityType string
	EntityID   string
	Since      time.Time
	// Limit caps the result; zero means no cap.
	Limit       int
	NewestFirst bool
}

func (f Filter) query() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if len(f.Types) > 0 {
		conds = append(conds, "event_type IN (?"+strings.Repeat(", ?", len(f.Types)-1)+")")
		for _, t := range f.Types {
			args = append(args, t)
		}
	}
	if f.EntityType != "" {
		conds = append(conds, "entity_type = ?")
		args = append(args, f.EntityType)
	}
	if f.EntityID != "" {
		conds = append(conds, "entity_id = ?")
		args = append(args, f.EntityID)
	}
	if !f.Since.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, f.Since)
	}

	var b strings.Builder
	b.WriteString(`SELECT id, event_type, entity_type, entity_id, payload, occurred_at, created_at FROM events`)
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	if f.NewestFirst {
		b.WriteString(" ORDER BY id DESC")
	} else {
		b.WriteString(" ORDER BY id ASC")
	}
	if f.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, f.Limit)
	}
	return b.String(), args
}

// Append persists an event and returns its record id.
func (l *EventLog) Append(e Event) (int64, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("marshal %s event: %w", e.EventType(), err)
	}

	res, err := l.db.Exec(`
		INSERT INTO events (event_type, entity_type, entity_id, payload, occurred_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.EventType(), e.EntityType(), e.EntityID(), string(payload), e.OccurredAt(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert %s event: %w", e.EventType(), err)
	}
	return res.LastInsertId()
}

// Find returns the records matching f.
func (l *EventLog) Find(f Filter) ([]Record, error) {
	q, args := f.query()
	rows, err := l.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Type, &r.EntityType, &r.EntityID, &r.Payload, &r.OccurredAt, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Recent returns the last n records, newest first.
func (l *EventLog) Recent(n int) ([]Record, error) {
	return l.Find(Filter{Limit: n, NewestFirst: true})
}

// ForEntity returns the history of one provider or import, oldest first.
func (l *EventLog) ForEntity(entityType, entityID string) ([]Record, error) {
	return l.Find(Filter{EntityType: entityType, EntityID: entityID})
}

// Prune removes records that occurred more than olderThan ago.
func (l *EventLog) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res, err := l.db.Exec(`DELETE FROM events WHERE occurred_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	return res.RowsAffected()
}
