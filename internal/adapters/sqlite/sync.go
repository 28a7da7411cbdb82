package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"zwallpaper/internal/domain"
)

// Sync reconciles the ledger with the files actually present on disk.
// Files added outside the cache are recorded, rows for deleted files are dropped.
// Hidden files (in-flight temp writes) are ignored.
func (idx *Index) Sync(dirs map[domain.Tier]string) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	tx, err := idx.beginTx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for tier, dir := range dirs {
		known, err := tx.knownFiles(tier)
		if err != nil {
			return nil, err
		}

		entries, err := os.ReadDir(dir)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}

		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			stats.FilesScanned++

			if known[e.Name()] {
				delete(known, e.Name())
				continue
			}

			info, err := e.Info()
			if err != nil {
				continue // Removed while scanning
			}
			entry := domain.CacheEntry{
				Tier:     tier,
				FileName: e.Name(),
				Path:     filepath.Join(dir, e.Name()),
				Size:     info.Size(),
				StoredAt: info.ModTime(),
			}
			if err := tx.upsert(entry); err != nil {
				return nil, err
			}
			stats.EntriesAdded++
		}

		// Whatever is left in known has no file behind it
		for name := range known {
			if err := tx.delete(tier, name); err != nil {
				return nil, err
			}
			stats.EntriesDeleted++
		}
	}

	if err := tx.setMeta("last_sync_time", time.Now().Unix()); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// knownFiles returns the file names the ledger holds for a tier
func (t *indexTx) knownFiles(tier domain.Tier) (map[string]bool, error) {
	rows, err := t.tx.Query(`SELECT file_name FROM entries WHERE tier = ?`, tier.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	known := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		known[name] = true
	}
	return known, rows.Err()
}
