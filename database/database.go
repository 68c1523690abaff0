package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Storage keys. Every domain store owns exactly one key; no two stores share one.
const (
	KeySettings        = "dashpad_settings"
	KeyQuickLinks      = "dashpad_quick_links"
	KeyBookmarks       = "dashpad_bookmarks"
	KeyBookmarkFolders = "dashpad_bookmark_folders"
	KeyReadingList     = "dashpad_reading_list"
	KeyNewsSources     = "dashpad_news_sources"
	KeyWeatherCache    = "dashpad_weather_cache"
)

// Keys lists every key this application owns. Clear removes only these.
var Keys = []string{
	KeySettings,
	KeyQuickLinks,
	KeyBookmarks,
	KeyBookmarkFolders,
	KeyReadingList,
	KeyNewsSources,
	KeyWeatherCache,
}

// Store is the persistence boundary: a key -> JSON value store. All failures
// degrade to defaults on read and no-ops on write; nothing here ever
// propagates an error into domain logic.
type Store interface {
	// Load unmarshals the value stored under key into dest and reports
	// whether a usable value was found. Corrupt or missing values return
	// false, leaving dest for the caller's default.
	Load(key string, dest interface{}) bool
	Save(key string, value interface{})
	Remove(key string)
	// Clear removes only this application's known keys.
	Clear()
	// Available reports whether a writable medium is present.
	Available() bool
}

type DB struct {
	db *sql.DB
}

// NewDatabase opens (or creates) the sqlite-backed key/value store under dataDir.
func NewDatabase(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "dashpad.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	database := &DB{db: db}
	if err := database.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %v", err)
	}

	log.Println("Database initialized successfully")
	return database, nil
}

// Open is the forgiving variant of NewDatabase: when the medium cannot be
// opened it logs and returns a disabled store, so callers run without
// persistence instead of failing.
func Open(dataDir string) Store {
	db, err := NewDatabase(dataDir)
	if err != nil {
		log.Printf("Persistence unavailable, running without it: %v", err)
		return Disabled()
	}
	return db
}

func (d *DB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := d.db.Exec(schema)
	return err
}

func (d *DB) Load(key string, dest interface{}) bool {
	var raw string
	err := d.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("Failed to load %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("Discarding corrupt value for %s: %v", key, err)
		return false
	}
	return true
}

func (d *DB) Save(key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to serialize %s: %v", key, err)
		return
	}

	_, err = d.db.Exec(`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, key, string(raw))
	if err != nil {
		log.Printf("Failed to save %s: %v", key, err)
	}
}

func (d *DB) Remove(key string) {
	if _, err := d.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		log.Printf("Failed to remove %s: %v", key, err)
	}
}

func (d *DB) Clear() {
	for _, key := range Keys {
		d.Remove(key)
	}
}

func (d *DB) Available() bool {
	return true
}

func (d *DB) Close() error {
	return d.db.Close()
}
