package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/watchmon/pkg/domain"
)

// LedgerRepository records which messages were already evaluated per watched item.
// Rows only grow; they are removed solely with their watched item.
type LedgerRepository struct {
	db    *sqlx.DB
	retry retryPolicy
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *sqlx.DB, retry retryPolicy) *LedgerRepository {
	return &LedgerRepository{db: db, retry: retry}
}

// AnalyzedIDs returns the set of message ids already analyzed for the item
func (r *LedgerRepository) AnalyzedIDs(ctx context.Context, itemID int64) (map[string]struct{}, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids,
		"SELECT message_id FROM analyzed_messages WHERE watched_item_id = ?", itemID); err != nil {
		return nil, fmt.Errorf("get analyzed ids: %w", err)
	}

	res := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		res[id] = struct{}{}
	}
	return res, nil
}

// MarkAnalyzed records message ids as analyzed in one transaction.
// Existing pairs are left untouched; the number of newly inserted rows is returned.
func (r *LedgerRepository) MarkAnalyzed(ctx context.Context, itemID int64, ids []string, platform domain.Platform) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var inserted int64
	err := r.retry.do(ctx, func() error {
		inserted = 0
		n, err := r.insertBatch(ctx, itemID, ids, platform)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("mark analyzed: %w", err)}
		}
		inserted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *LedgerRepository) insertBatch(ctx context.Context, itemID int64, ids []string, platform domain.Platform) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO analyzed_messages (watched_item_id, message_id, platform, analyzed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(watched_item_id, message_id) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	var total int64
	for _, id := range ids {
		result, err := stmt.ExecContext(ctx, itemID, id, string(platform), now)
		if err != nil {
			return 0, fmt.Errorf("insert %s: %w", id, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("get rows affected: %w", err)
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return total, nil
}

// CountAnalyzed returns the number of ledger rows for the item
func (r *LedgerRepository) CountAnalyzed(ctx context.Context, itemID int64) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM analyzed_messages WHERE watched_item_id = ?", itemID); err != nil {
		return 0, fmt.Errorf("count analyzed: %w", err)
	}
	return n, nil
}
