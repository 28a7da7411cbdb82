package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"zwallpaper/internal/domain"
	"zwallpaper/internal/ports"
)

const schemaVersion = "1"

// Index implements ports.CacheIndex using SQLite
type Index struct {
	db     *sql.DB
	dbPath string
}

// Ensure Index implements CacheIndex
var _ ports.CacheIndex = (*Index)(nil)

// NewIndex creates a new SQLite index
func NewIndex() *Index {
	return &Index{}
}

// Open creates or opens the ledger database at dbPath
func (idx *Index) Open(dbPath string) error {
	// Expand ~ in path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	idx.dbPath = dbPath

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// WAL lets the TUI read stats while a fetch records an entry
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS entries (
			tier TEXT NOT NULL,
			file_name TEXT NOT NULL,
			path TEXT NOT NULL,
			size INTEGER NOT NULL,
			stored_at INTEGER NOT NULL,
			PRIMARY KEY (tier, file_name)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_stored_at ON entries(stored_at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Path returns the database file location
func (idx *Index) Path() string {
	return idx.dbPath
}

// Record inserts or replaces a cache entry
func (idx *Index) Record(entry domain.CacheEntry) error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO entries (tier, file_name, path, size, stored_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.Tier.String(), entry.FileName, entry.Path, entry.Size, entry.StoredAt.Unix())
	return err
}

// Remove deletes a single entry
func (idx *Index) Remove(tier domain.Tier, fileName string) error {
	_, err := idx.db.Exec(`DELETE FROM entries WHERE tier = ? AND file_name = ?`, tier.String(), fileName)
	return err
}

// List returns the entries of a tier, newest first
func (idx *Index) List(tier domain.Tier) ([]domain.CacheEntry, error) {
	rows, err := idx.db.Query(`
		SELECT file_name, path, size, stored_at
		FROM entries WHERE tier = ?
		ORDER BY stored_at DESC, file_name
	`, tier.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.CacheEntry
	for rows.Next() {
		e := domain.CacheEntry{Tier: tier}
		var storedAt int64
		if err := rows.Scan(&e.FileName, &e.Path, &e.Size, &storedAt); err != nil {
			return nil, err
		}
		e.StoredAt = time.Unix(storedAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats returns entry counts and byte totals per tier
func (idx *Index) Stats() (domain.CacheStats, error) {
	stats := domain.CacheStats{
		Entries: make(map[domain.Tier]int),
		Bytes:   make(map[domain.Tier]int64),
	}

	rows, err := idx.db.Query(`SELECT tier, COUNT(*), COALESCE(SUM(size), 0) FROM entries GROUP BY tier`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int
		var bytes int64
		if err := rows.Scan(&name, &count, &bytes); err != nil {
			return stats, err
		}
		tier, err := domain.ParseTier(name)
		if err != nil {
			continue // Unknown rows from a future schema
		}
		stats.Entries[tier] = count
		stats.Bytes[tier] = bytes
	}
	return stats, rows.Err()
}

// Clear drops the entries of the given tiers (all tiers when none given)
func (idx *Index) Clear(tiers ...domain.Tier) error {
	tx, err := idx.beginTx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if len(tiers) == 0 {
		if err := tx.deleteAll(); err != nil {
			return err
		}
	}
	for _, tier := range tiers {
		if err := tx.deleteTier(tier); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LastSync returns when Sync last completed, zero if never
func (idx *Index) LastSync() time.Time {
	var unix int64
	if err := idx.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_sync_time'`).Scan(&unix); err != nil {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}
