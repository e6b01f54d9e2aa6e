// Package db stores the documentation index: one row per module namespace
// and one row per rendered item, with content hashes pointing into the CAS.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn *sql.DB
}

func New(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dsn := "file:" + dbPath + "?_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	d := &DB{conn: conn}
	if err := d.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return d, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS modules (
			id INTEGER PRIMARY KEY,
			namespace TEXT NOT NULL,
			name TEXT NOT NULL,
			doc TEXT NOT NULL DEFAULT '',
			indexed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(namespace)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_modules_name ON modules (name)`,

		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY,
			module_id INTEGER NOT NULL REFERENCES modules(id),
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			heading_id TEXT NOT NULL,
			signature TEXT NOT NULL,
			doc TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL,
			UNIQUE(module_id, heading_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_module ON items (module_id)`,
		`CREATE INDEX IF NOT EXISTS idx_items_name ON items (name)`,
		`CREATE INDEX IF NOT EXISTS idx_items_hash ON items (content_hash)`,
	}

	for _, q := range queries {
		if _, err := db.conn.Exec(q); err != nil {
			return fmt.Errorf("executing %q: %w", q, err)
		}
	}
	return nil
}

// --- Module operations ---

type Module struct {
	ID        int
	Namespace string
	Name      string
	Doc       string
	IndexedAt time.Time
}

// UpsertModule inserts the module row for a namespace, or refreshes its
// name, doc and indexing timestamp when the namespace is already known.
func (db *DB) UpsertModule(namespace, name, doc string) (*Module, error) {
	var m Module
	err := db.conn.QueryRow(
		`SELECT id, namespace, name, doc, indexed_at FROM modules WHERE namespace = ?`,
		namespace,
	).Scan(&m.ID, &m.Namespace, &m.Name, &m.Doc, &m.IndexedAt)

	if err == nil {
		_, err = db.conn.Exec(
			`UPDATE modules SET name = ?, doc = ?, indexed_at = CURRENT_TIMESTAMP WHERE id = ?`,
			name, doc, m.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("refreshing module: %w", err)
		}
		m.Name = name
		m.Doc = doc
		m.IndexedAt = time.Now()
		return &m, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("checking module: %w", err)
	}

	result, err := db.conn.Exec(
		`INSERT INTO modules (namespace, name, doc) VALUES (?, ?, ?)`,
		namespace, name, doc,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting module: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting module id: %w", err)
	}

	return &Module{ID: int(id), Namespace: namespace, Name: name, Doc: doc, IndexedAt: time.Now()}, nil
}

func (db *DB) GetModule(namespace string) (*Module, error) {
	var m Module
	err := db.conn.QueryRow(
		`SELECT id, namespace, name, doc, indexed_at FROM modules WHERE namespace = ?`,
		namespace,
	).Scan(&m.ID, &m.Namespace, &m.Name, &m.Doc, &m.IndexedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ModuleStat is one row of the index overview: a module and its item count.
type ModuleStat struct {
	Namespace string
	Name      string
	Doc       string
	IndexedAt time.Time
	Items     int
}

func (db *DB) ListModuleStats() ([]ModuleStat, error) {
	rows, err := db.conn.Query(`
		SELECT m.namespace, m.name, m.doc, m.indexed_at, COUNT(i.id)
		FROM modules m LEFT JOIN items i ON i.module_id = m.id
		GROUP BY m.id ORDER BY m.namespace`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ModuleStat
	for rows.Next() {
		var s ModuleStat
		if err := rows.Scan(&s.Namespace, &s.Name, &s.Doc, &s.IndexedAt, &s.Items); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, nil
}

// --- Item operations ---

type Item struct {
	ID          int
	ModuleID    int
	Name        string
	Kind        string
	HeadingID   string
	Signature   string
	Doc         string
	ContentHash string
}

func (db *DB) InsertItem(item *Item) error {
	result, err := db.conn.Exec(
		`INSERT INTO items (module_id, name, kind, heading_id, signature, doc, content_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ModuleID, item.Name, item.Kind, item.HeadingID, item.Signature, item.Doc, item.ContentHash,
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting item id: %w", err)
	}
	item.ID = int(id)
	return nil
}

// GetItem looks an item up by module namespace and display name.
func (db *DB) GetItem(namespace, name string) (*Item, error) {
	var it Item
	err := db.conn.QueryRow(
		`SELECT i.id, i.module_id, i.name, i.kind, i.heading_id, i.signature, i.doc, i.content_hash
		 FROM items i JOIN modules m ON m.id = i.module_id
		 WHERE m.namespace = ? AND i.name = ? LIMIT 1`,
		namespace, name,
	).Scan(&it.ID, &it.ModuleID, &it.Name, &it.Kind, &it.HeadingID, &it.Signature, &it.Doc, &it.ContentHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetItemByHeading looks an item up by module namespace and heading anchor.
func (db *DB) GetItemByHeading(namespace, headingID string) (*Item, error) {
	var it Item
	err := db.conn.QueryRow(
		`SELECT i.id, i.module_id, i.name, i.kind, i.heading_id, i.signature, i.doc, i.content_hash
		 FROM items i JOIN modules m ON m.id = i.module_id
		 WHERE m.namespace = ? AND i.heading_id = ?`,
		namespace, headingID,
	).Scan(&it.ID, &it.ModuleID, &it.Name, &it.Kind, &it.HeadingID, &it.Signature, &it.Doc, &it.ContentHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListItemsByModule returns a module's items ordered by heading anchor.
func (db *DB) ListItemsByModule(moduleID int) ([]Item, error) {
	rows, err := db.conn.Query(
		`SELECT id, module_id, name, kind, heading_id, signature, doc, content_hash
		 FROM items WHERE module_id = ? ORDER BY heading_id`, moduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ModuleID, &it.Name, &it.Kind, &it.HeadingID, &it.Signature, &it.Doc, &it.ContentHash); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (db *DB) DeleteItemsByModule(moduleID int) error {
	_, err := db.conn.Exec(`DELETE FROM items WHERE module_id = ?`, moduleID)
	return err
}

// SearchItems fetches candidate items whose name, signature or doc text
// contains any of the given terms. Ranking happens in the search layer,
// this only gathers candidates.
func (db *DB) SearchItems(terms []string, limit int) ([]Item, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	conditions := make([]string, len(terms))
	var params []interface{}
	for i, term := range terms {
		conditions[i] = `(i.name LIKE ? OR i.signature LIKE ? OR i.doc LIKE ?)`
		pattern := "%" + term + "%"
		params = append(params, pattern, pattern, pattern)
	}
	params = append(params, limit)

	query := fmt.Sprintf(`
		SELECT i.id, i.module_id, i.name, i.kind, i.heading_id, i.signature, i.doc, i.content_hash
		FROM items i WHERE %s LIMIT ?`, strings.Join(conditions, " OR "))

	rows, err := db.conn.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ModuleID, &it.Name, &it.Kind, &it.HeadingID, &it.Signature, &it.Doc, &it.ContentHash); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// GetModulesForItems returns a map from item ID to Module for the given item IDs in a single query.
func (db *DB) GetModulesForItems(itemIDs []int) (map[int]*Module, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(itemIDs))
	params := make([]interface{}, len(itemIDs))
	for i, id := range itemIDs {
		placeholders[i] = "?"
		params[i] = id
	}
	query := fmt.Sprintf(`
		SELECT i.id, m.id, m.namespace, m.name, m.doc, m.indexed_at
		FROM items i JOIN modules m ON m.id = i.module_id
		WHERE i.id IN (%s)`, strings.Join(placeholders, ","))
	rows, err := db.conn.Query(query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int]*Module, len(itemIDs))
	for rows.Next() {
		var itemID int
		var m Module
		if err := rows.Scan(&itemID, &m.ID, &m.Namespace, &m.Name, &m.Doc, &m.IndexedAt); err != nil {
			return nil, err
		}
		result[itemID] = &m
	}
	return result, nil
}

// Clear drops every indexed module and item.
func (db *DB) Clear() error {
	for _, q := range []string{`DELETE FROM items`, `DELETE FROM modules`} {
		if _, err := db.conn.Exec(q); err != nil {
			return fmt.Errorf("executing %q: %w", q, err)
		}
	}
	return nil
}
