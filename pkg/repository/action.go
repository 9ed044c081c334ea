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

// ActionRepository handles generated action persistence
type ActionRepository struct {
	db    *sqlx.DB
	retry retryPolicy
}

// actionSQL represents an action for SQL operations
type actionSQL struct {
	ID               int64      `db:"id"`
	WatchedItemID    int64      `db:"watched_item_id"`
	Title            string     `db:"title"`
	Description      string     `db:"description"`
	Priority         string     `db:"priority"`
	Status           string     `db:"status"`
	SourceContent    string     `db:"source_content"`
	SourceMessageIDs string     `db:"source_message_ids"`
	CreatedAt        time.Time  `db:"created_at"`
	CompletedAt      *time.Time `db:"completed_at"`
}

// priorityRankSQL orders priorities low < medium < high < critical in queries
const priorityRankSQL = `CASE priority WHEN 'critical' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END`

// NewActionRepository creates a new action repository
func NewActionRepository(db *sqlx.DB, retry retryPolicy) *ActionRepository {
	return &ActionRepository{db: db, retry: retry}
}

// CreateAction inserts a new action and sets its ID and creation time
func (r *ActionRepository) CreateAction(ctx context.Context, action *domain.Action) error {
	ids := action.SourceMessageIDs
	if ids == nil {
		ids = []string{}
	}
	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal source message ids: %w", err)
	}
	if action.Status == "" {
		action.Status = domain.ActionPending
	}
	if !action.Priority.Valid() {
		action.Priority = domain.PriorityMedium
	}

	rec := &actionSQL{
		WatchedItemID:    action.WatchedItemID,
		Title:            action.Title,
		Description:      action.Description,
		Priority:         string(action.Priority),
		Status:           string(action.Status),
		SourceContent:    action.SourceContent,
		SourceMessageIDs: string(idsJSON),
		CreatedAt:        time.Now().UTC(),
	}

	query := `
		INSERT INTO actions (watched_item_id, title, description, priority, status, source_content, source_message_ids, created_at)
		VALUES (:watched_item_id, :title, :description, :priority, :status, :source_content, :source_message_ids, :created_at)
	`
	return r.retry.do(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, rec)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("create action: %w", err)}
		}
		id, err := result.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		action.ID = id
		action.CreatedAt = rec.CreatedAt
		return nil
	})
}

// GetAction retrieves an action by ID
func (r *ActionRepository) GetAction(ctx context.Context, id int64) (*domain.Action, error) {
	var rec actionSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM actions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get action %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get action: %w", err)
	}
	return rec.toDomain(), nil
}

// UpdateActionStatus changes action status. Completing stamps completed_at,
// any other status clears it.
func (r *ActionRepository) UpdateActionStatus(ctx context.Context, id int64, status domain.ActionStatus) error {
	var completedAt *time.Time
	if status == domain.ActionCompleted {
		now := time.Now().UTC()
		completedAt = &now
	}

	var affected int64
	err := r.retry.do(ctx, func() error {
		result, err := r.db.ExecContext(ctx, "UPDATE actions SET status = ?, completed_at = ? WHERE id = ?",
			string(status), completedAt, id)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("update action status: %w", err)}
		}
		if affected, err = result.RowsAffected(); err != nil {
			return &criticalError{err: fmt.Errorf("get rows affected: %w", err)}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("update action %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListActions returns actions matching the filter, most urgent first, newest first within a priority
func (r *ActionRepository) ListActions(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error) {
	var conds []string
	var args []any
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.WatchedItemID > 0 {
		conds = append(conds, "watched_item_id = ?")
		args = append(args, filter.WatchedItemID)
	}
	if filter.MinPriority.Valid() {
		conds = append(conds, priorityRankSQL+" >= ?")
		args = append(args, filter.MinPriority.Rank())
	}

	query := "SELECT * FROM actions"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + priorityRankSQL + " DESC, created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	var recs []actionSQL
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}

	res := make([]domain.Action, 0, len(recs))
	for i := range recs {
		res = append(res, *recs[i].toDomain())
	}
	return res, nil
}

// ClearActionsByStatus deletes all actions with the given status and returns how many were removed
func (r *ActionRepository) ClearActionsByStatus(ctx context.Context, status domain.ActionStatus) (int64, error) {
	var deleted int64
	err := r.retry.do(ctx, func() error {
		result, err := r.db.ExecContext(ctx, "DELETE FROM actions WHERE status = ?", string(status))
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("clear actions: %w", err)}
		}
		if deleted, err = result.RowsAffected(); err != nil {
			return &criticalError{err: fmt.Errorf("get rows affected: %w", err)}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (a *actionSQL) toDomain() *domain.Action {
	action := &domain.Action{
		ID:            a.ID,
		WatchedItemID: a.WatchedItemID,
		Title:         a.Title,
		Description:   a.Description,
		Priority:      domain.Priority(a.Priority),
		Status:        domain.ActionStatus(a.Status),
		SourceContent: a.SourceContent,
		CreatedAt:     a.CreatedAt,
		CompletedAt:   a.CompletedAt,
	}
	if err := json.Unmarshal([]byte(a.SourceMessageIDs), &action.SourceMessageIDs); err != nil {
		action.SourceMessageIDs = nil
	}
	return action
}
