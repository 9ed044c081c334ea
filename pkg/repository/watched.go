package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/watchmon/pkg/domain"
)

// WatchedRepository handles watched item database operations
type WatchedRepository struct {
	db *sqlx.DB
}

// watchedSQL represents a watched item for SQL operations
type watchedSQL struct {
	ID        int64     `db:"id"`
	Platform  string    `db:"platform"`
	ItemType  string    `db:"item_type"`
	SourceID  string    `db:"source_id"`
	Name      string    `db:"name"`
	Metadata  string    `db:"metadata"`
	Goal      string    `db:"goal"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewWatchedRepository creates a new watched item repository
func NewWatchedRepository(db *sqlx.DB) *WatchedRepository {
	return &WatchedRepository{db: db}
}

// CreateWatchedItem inserts a new watched item and sets its ID.
// A second item with the same platform, type and source id returns domain.ErrDuplicate.
func (r *WatchedRepository) CreateWatchedItem(ctx context.Context, item *domain.WatchedItem) error {
	meta, err := json.Marshal(item.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if item.Metadata == nil {
		meta = []byte("{}")
	}
	if item.Status == "" {
		item.Status = domain.WatchActive
	}

	now := time.Now().UTC()
	rec := &watchedSQL{
		Platform:  string(item.Platform),
		ItemType:  string(item.Type),
		SourceID:  item.SourceID,
		Name:      item.Name,
		Metadata:  string(meta),
		Goal:      item.Goal,
		Status:    string(item.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO watched_items (platform, item_type, source_id, name, metadata, goal, status, created_at, updated_at)
		VALUES (:platform, :item_type, :source_id, :name, :metadata, :goal, :status, :created_at, :updated_at)
	`
	result, err := r.db.NamedExecContext(ctx, query, rec)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("create watched item %s/%s/%s: %w", item.Platform, item.Type, item.SourceID, domain.ErrDuplicate)
		}
		return fmt.Errorf("create watched item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}

	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

// GetWatchedItem retrieves a watched item by ID
func (r *WatchedRepository) GetWatchedItem(ctx context.Context, id int64) (*domain.WatchedItem, error) {
	var rec watchedSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM watched_items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get watched item %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get watched item: %w", err)
	}
	return rec.toDomain(), nil
}

// GetWatchedItems returns watched items in creation order, optionally active only
func (r *WatchedRepository) GetWatchedItems(ctx context.Context, activeOnly bool) ([]domain.WatchedItem, error) {
	query := "SELECT * FROM watched_items"
	var args []any
	if activeOnly {
		query += " WHERE status = ?"
		args = append(args, string(domain.WatchActive))
	}
	query += " ORDER BY id"

	var recs []watchedSQL
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("get watched items: %w", err)
	}

	items := make([]domain.WatchedItem, 0, len(recs))
	for i := range recs {
		items = append(items, *recs[i].toDomain())
	}
	return items, nil
}

// UpdateWatchedStatus switches an item between active and paused
func (r *WatchedRepository) UpdateWatchedStatus(ctx context.Context, id int64, status domain.WatchStatus) error {
	return r.update(ctx, id, "status", string(status))
}

// UpdateWatchedGoal replaces the goal of a watched item
func (r *WatchedRepository) UpdateWatchedGoal(ctx context.Context, id int64, goal string) error {
	return r.update(ctx, id, "goal", goal)
}

func (r *WatchedRepository) update(ctx context.Context, id int64, column, value string) error {
	query := fmt.Sprintf("UPDATE watched_items SET %s = ?, updated_at = ? WHERE id = ?", column) //nolint:gosec // column is a constant
	result, err := r.db.ExecContext(ctx, query, value, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update watched item %s: %w", column, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update watched item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteWatchedItem removes a watched item with its ledger rows and actions.
// Children are removed explicitly as well since foreign_keys is a per-connection pragma.
func (r *WatchedRepository) DeleteWatchedItem(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM analyzed_messages WHERE watched_item_id = ?", id); err != nil {
		return fmt.Errorf("delete analyzed messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM actions WHERE watched_item_id = ?", id); err != nil {
		return fmt.Errorf("delete actions: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM watched_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete watched item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete watched item %d: %w", id, domain.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (w *watchedSQL) toDomain() *domain.WatchedItem {
	item := &domain.WatchedItem{
		ID:        w.ID,
		Platform:  domain.Platform(w.Platform),
		Type:      domain.ItemType(w.ItemType),
		SourceID:  w.SourceID,
		Name:      w.Name,
		Goal:      w.Goal,
		Status:    domain.WatchStatus(w.Status),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	if w.Metadata != "" && w.Metadata != "{}" {
		meta := map[string]string{}
		if err := json.Unmarshal([]byte(w.Metadata), &meta); err == nil {
			item.Metadata = meta
		}
	}
	return item
}
