package local

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vmunix/mediaimport/internal/host"
	"github.com/vmunix/mediaimport/internal/migrations"
	_ "modernc.org/sqlite"
)

// Settings scopes.
const (
	scopeProvider = "provider"
	scopeImport   = "import"
)

// querier abstracts *sql.DB and *sql.Tx for shared query logic.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// Open opens the sqlite database at path and applies migrations.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite serialises writers; one connection also keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := migrations.Apply(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Store persists the host's providers, imports, settings and items.
type Store struct {
	db *sql.DB
}

// NewStore creates a store on an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Begin starts a transaction.
func (s *Store) Begin() (*Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx wraps a database transaction with the item methods of Store.
type Tx struct {
	tx *sql.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// mapSQLiteError converts SQLite errors to package errors.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return host.ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return ErrConstraint
	}
	return err
}

func joinTypes(types []string) string { return strings.Join(types, ",") }

func splitTypes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// SaveProvider inserts p or updates the stored provider with the same id.
// It reports whether the provider was new.
func (s *Store) SaveProvider(p host.Provider) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM providers WHERE id = ?)`, p.ID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check provider %s: %w", p.ID, err)
	}

	now := time.Now()
	_, err := s.db.Exec(`
		INSERT INTO providers (id, friendly_name, icon_url, media_types, active, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			friendly_name = excluded.friendly_name,
			icon_url = excluded.icon_url,
			media_types = excluded.media_types,
			active = excluded.active,
			updated_at = excluded.updated_at`,
		p.ID, p.FriendlyName, p.IconURL, joinTypes(p.MediaTypes), p.Active, now, now,
	)
	if err != nil {
		return false, fmt.Errorf("save provider %s: %w", p.ID, mapSQLiteError(err))
	}
	return !exists, nil
}

// SetProviderActive flips the provider's activation.
func (s *Store) SetProviderActive(id string, active bool) error {
	res, err := s.db.Exec(`UPDATE providers SET active = ?, updated_at = ? WHERE id = ?`, active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update provider %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("provider %s: %w", id, host.ErrNotFound)
	}
	return nil
}

// GetProvider returns the provider with the given id.
func (s *Store) GetProvider(id string) (*host.Provider, error) {
	var p host.Provider
	var types string
	err := s.db.QueryRow(`
		SELECT id, friendly_name, icon_url, media_types, active
		FROM providers WHERE id = ?`, id,
	).Scan(&p.ID, &p.FriendlyName, &p.IconURL, &types, &p.Active)
	if err != nil {
		return nil, fmt.Errorf("get provider %s: %w", id, mapSQLiteError(err))
	}
	p.MediaTypes = splitTypes(types)
	return &p, nil
}

// ListProviders returns every provider ordered by name.
func (s *Store) ListProviders() ([]host.Provider, error) {
	rows, err := s.db.Query(`
		SELECT id, friendly_name, icon_url, media_types, active
		FROM providers ORDER BY friendly_name, id`)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var providers []host.Provider
	for rows.Next() {
		var p host.Provider
		var types string
		if err := rows.Scan(&p.ID, &p.FriendlyName, &p.IconURL, &types, &p.Active); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		p.MediaTypes = splitTypes(types)
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// DeleteProvider removes a provider with its imports, items and settings.
func (s *Store) DeleteProvider(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmts := []struct {
		query string
		args  []any
	}{
		{`DELETE FROM items WHERE import_key IN (SELECT key FROM imports WHERE provider_id = ?)`, []any{id}},
		{`DELETE FROM settings WHERE scope = ? AND owner IN (SELECT key FROM imports WHERE provider_id = ?)`, []any{scopeImport, id}},
		{`DELETE FROM imports WHERE provider_id = ?`, []any{id}},
		{`DELETE FROM settings WHERE scope = ? AND owner = ?`, []any{scopeProvider, id}},
		{`DELETE FROM providers WHERE id = ?`, []any{id}},
	}
	for _, st := range stmts {
		if _, err := tx.Exec(st.query, st.args...); err != nil {
			return fmt.Errorf("delete provider %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// SaveImport stores imp. It reports whether the import was new.
func (s *Store) SaveImport(imp host.Import) (bool, error) {
	res, err := s.db.Exec(`
		INSERT INTO imports (key, provider_id, media_types, added_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO NOTHING`,
		imp.Key(), imp.Provider.ID, joinTypes(imp.MediaTypes), time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("save import %s: %w", imp.Key(), mapSQLiteError(err))
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// GetImport returns the import with the given key, provider included.
func (s *Store) GetImport(key string) (*host.Import, error) {
	var providerID, types string
	err := s.db.QueryRow(`SELECT provider_id, media_types FROM imports WHERE key = ?`, key).Scan(&providerID, &types)
	if err != nil {
		return nil, fmt.Errorf("get import %s: %w", key, mapSQLiteError(err))
	}
	p, err := s.GetProvider(providerID)
	if err != nil {
		return nil, err
	}
	return &host.Import{Provider: *p, MediaTypes: splitTypes(types)}, nil
}

// ListImports returns the imports of a provider, oldest first.
func (s *Store) ListImports(providerID string) ([]host.Import, error) {
	p, err := s.GetProvider(providerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT media_types FROM imports WHERE provider_id = ? ORDER BY added_at, key`, providerID)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var imports []host.Import
	for rows.Next() {
		var types string
		if err := rows.Scan(&types); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		imports = append(imports, host.Import{Provider: *p, MediaTypes: splitTypes(types)})
	}
	return imports, rows.Err()
}

// DeleteImport removes an import with its items and settings.
func (s *Store) DeleteImport(key string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM items WHERE import_key = ?`, key); err != nil {
		return fmt.Errorf("delete items of %s: %w", key, err)
	}
	if _, err := tx.Exec(`DELETE FROM settings WHERE scope = ? AND owner = ?`, scopeImport, key); err != nil {
		return fmt.Errorf("delete settings of %s: %w", key, err)
	}
	res, err := tx.Exec(`DELETE FROM imports WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete import %s: %w", key, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("import %s: %w", key, host.ErrNotFound)
	}
	return tx.Commit()
}

// MarkSynced records the time of an import's last change.
func (s *Store) MarkSynced(key string, at time.Time) error {
	if _, err := s.db.Exec(`UPDATE imports SET last_sync = ? WHERE key = ?`, at, key); err != nil {
		return fmt.Errorf("mark %s synced: %w", key, err)
	}
	return nil
}

// GetSetting returns a stored setting value, "" if unset.
func (s *Store) GetSetting(scope, owner, key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE scope = ? AND owner = ? AND key = ?`, scope, owner, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores a setting value.
func (s *Store) SetSetting(scope, owner, key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (scope, owner, key, value) VALUES (?, ?, ?, ?)
		ON CONFLICT(scope, owner, key) DO UPDATE SET value = excluded.value`,
		scope, owner, key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func saveItem(q querier, importKey string, it host.Item) error {
	var lastPlayed any
	if !it.LastPlayed.IsZero() {
		lastPlayed = it.LastPlayed
	}
	_, err := q.Exec(`
		INSERT INTO items (import_key, id, label, path, media_type, playcount, last_played, resume_position, total_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(import_key, id) DO UPDATE SET
			label = excluded.label,
			path = excluded.path,
			media_type = excluded.media_type,
			playcount = excluded.playcount,
			last_played = excluded.last_played,
			resume_position = excluded.resume_position,
			total_time = excluded.total_time`,
		importKey, it.ID, it.Label, it.Path, it.MediaType, it.Playcount, lastPlayed, it.ResumePosition, it.TotalTime,
	)
	if err != nil {
		return fmt.Errorf("save item %s: %w", it.ID, mapSQLiteError(err))
	}
	return nil
}

// SaveItem inserts or replaces an imported item.
func (s *Store) SaveItem(importKey string, it host.Item) error { return saveItem(s.db, importKey, it) }

// SaveItem inserts or replaces an imported item within a transaction.
func (t *Tx) SaveItem(importKey string, it host.Item) error { return saveItem(t.tx, importKey, it) }

func deleteItem(q querier, importKey, id string) error {
	if _, err := q.Exec(`DELETE FROM items WHERE import_key = ? AND id = ?`, importKey, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// DeleteItem removes an imported item. Removing an unknown item is a no-op.
func (s *Store) DeleteItem(importKey, id string) error { return deleteItem(s.db, importKey, id) }

// DeleteItem removes an imported item within a transaction.
func (t *Tx) DeleteItem(importKey, id string) error { return deleteItem(t.tx, importKey, id) }

func pruneItems(q querier, importKey, mediaType string, keep []string) (int64, error) {
	query := `DELETE FROM items WHERE import_key = ? AND media_type = ?`
	args := []any{importKey, mediaType}
	if len(keep) > 0 {
		query += ` AND id NOT IN (?` + strings.Repeat(", ?", len(keep)-1) + `)`
		for _, id := range keep {
			args = append(args, id)
		}
	}
	res, err := q.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune %s items: %w", mediaType, err)
	}
	return res.RowsAffected()
}

// PruneItems removes the items of one media type whose ids are not in keep.
func (s *Store) PruneItems(importKey, mediaType string, keep []string) (int64, error) {
	return pruneItems(s.db, importKey, mediaType, keep)
}

// PruneItems removes the items of one media type whose ids are not in keep,
// within a transaction.
func (t *Tx) PruneItems(importKey, mediaType string, keep []string) (int64, error) {
	return pruneItems(t.tx, importKey, mediaType, keep)
}

// ListItems returns the items imported through an import, ordered by id.
func (s *Store) ListItems(importKey string) ([]host.Item, error) {
	rows, err := s.db.Query(`
		SELECT id, label, path, media_type, playcount, last_played, resume_position, total_time
		FROM items WHERE import_key = ? ORDER BY id`, importKey)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []host.Item
	for rows.Next() {
		var it host.Item
		var lastPlayed sql.NullTime
		if err := rows.Scan(&it.ID, &it.Label, &it.Path, &it.MediaType, &it.Playcount, &lastPlayed, &it.ResumePosition, &it.TotalTime); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if lastPlayed.Valid {
			it.LastPlayed = lastPlayed.Time
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
