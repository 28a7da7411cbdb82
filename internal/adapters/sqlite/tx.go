package sqlite

import (
	"database/sql"
	"fmt"

	"zwallpaper/internal/domain"
)

// indexTx groups ledger writes that must land together
type indexTx struct {
	tx *sql.Tx
}

func (idx *Index) beginTx() (*indexTx, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &indexTx{tx: tx}, nil
}

// upsert inserts or replaces an entry
func (t *indexTx) upsert(entry domain.CacheEntry) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO entries (tier, file_name, path, size, stored_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.Tier.String(), entry.FileName, entry.Path, entry.Size, entry.StoredAt.Unix())
	return err
}

// delete removes one entry
func (t *indexTx) delete(tier domain.Tier, fileName string) error {
	_, err := t.tx.Exec(`DELETE FROM entries WHERE tier = ? AND file_name = ?`, tier.String(), fileName)
	return err
}

// deleteTier removes every entry of a tier
func (t *indexTx) deleteTier(tier domain.Tier) error {
	_, err := t.tx.Exec(`DELETE FROM entries WHERE tier = ?`, tier.String())
	return err
}

// deleteAll empties the ledger
func (t *indexTx) deleteAll() error {
	_, err := t.tx.Exec(`DELETE FROM entries`)
	return err
}

// setMeta writes a meta key
func (t *indexTx) setMeta(key string, value any) error {
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction. Safe after Commit.
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}
