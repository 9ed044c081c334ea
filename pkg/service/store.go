package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/umputun/watchmon/pkg/domain"
	"github.com/umputun/watchmon/pkg/repository"
)

// Store provides unified access to repositories for the sweeper and the API
type Store struct {
	watchedRepo *repository.WatchedRepository
	ledgerRepo  *repository.LedgerRepository
	actionRepo  *repository.ActionRepository
}

// NewStore creates a new store over the shared repositories
func NewStore(repos *repository.Repositories) *Store {
	return &Store{
		watchedRepo: repos.Watched,
		ledgerRepo:  repos.Ledger,
		actionRepo:  repos.Action,
	}
}

// Watched item methods

// CreateWatchedItem validates and stores a new watched item
func (s *Store) CreateWatchedItem(ctx context.Context, item *domain.WatchedItem) error {
	item.SourceID = strings.TrimSpace(item.SourceID)
	item.Goal = strings.TrimSpace(item.Goal)
	switch {
	case !item.Platform.Valid():
		return fmt.Errorf("platform %q: %w", item.Platform, domain.ErrInvalid)
	case !item.Type.Valid():
		return fmt.Errorf("item type %q: %w", item.Type, domain.ErrInvalid)
	case item.SourceID == "":
		return fmt.Errorf("source id is empty: %w", domain.ErrInvalid)
	case item.Goal == "":
		return fmt.Errorf("goal is empty: %w", domain.ErrInvalid)
	}
	if item.Status == "" {
		item.Status = domain.WatchActive
	}
	return s.watchedRepo.CreateWatchedItem(ctx, item)
}

func (s *Store) GetWatchedItem(ctx context.Context, id int64) (*domain.WatchedItem, error) {
	return s.watchedRepo.GetWatchedItem(ctx, id)
}

func (s *Store) ListWatchedItems(ctx context.Context, activeOnly bool) ([]domain.WatchedItem, error) {
	return s.watchedRepo.GetWatchedItems(ctx, activeOnly)
}

// GetActiveWatchedItems returns items the sweeper should visit
func (s *Store) GetActiveWatchedItems(ctx context.Context) ([]domain.WatchedItem, error) {
	return s.watchedRepo.GetWatchedItems(ctx, true)
}

// SetWatchedItemStatus pauses or resumes a watched item
func (s *Store) SetWatchedItemStatus(ctx context.Context, id int64, status domain.WatchStatus) error {
	if status != domain.WatchActive && status != domain.WatchPaused {
		return fmt.Errorf("watch status %q: %w", status, domain.ErrInvalid)
	}
	return s.watchedRepo.UpdateWatchedStatus(ctx, id, status)
}

// UpdateWatchedItemGoal replaces the goal, later sweeps judge new messages against it
func (s *Store) UpdateWatchedItemGoal(ctx context.Context, id int64, goal string) error {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return fmt.Errorf("goal is empty: %w", domain.ErrInvalid)
	}
	return s.watchedRepo.UpdateWatchedGoal(ctx, id, goal)
}

// DeleteWatchedItem removes the item with its ledger rows and actions
func (s *Store) DeleteWatchedItem(ctx context.Context, id int64) error {
	return s.watchedRepo.DeleteWatchedItem(ctx, id)
}

// Ledger methods

func (s *Store) GetAnalyzedMessageIDs(ctx context.Context, itemID int64) (map[string]struct{}, error) {
	return s.ledgerRepo.AnalyzedIDs(ctx, itemID)
}

func (s *Store) MarkAnalyzed(ctx context.Context, itemID int64, ids []string, platform domain.Platform) (int64, error) {
	return s.ledgerRepo.MarkAnalyzed(ctx, itemID, ids, platform)
}

func (s *Store) CountAnalyzed(ctx context.Context, itemID int64) (int64, error) {
	return s.ledgerRepo.CountAnalyzed(ctx, itemID)
}

// Action methods

func (s *Store) CreateAction(ctx context.Context, action *domain.Action) error {
	return s.actionRepo.CreateAction(ctx, action)
}

func (s *Store) GetAction(ctx context.Context, id int64) (*domain.Action, error) {
	return s.actionRepo.GetAction(ctx, id)
}

// UpdateActionStatus moves an action to another lifecycle state
func (s *Store) UpdateActionStatus(ctx context.Context, id int64, status domain.ActionStatus) error {
	if !status.Valid() {
		return fmt.Errorf("action status %q: %w", status, domain.ErrInvalid)
	}
	return s.actionRepo.UpdateActionStatus(ctx, id, status)
}

// ListActions returns actions by descending priority, newest first within a priority
func (s *Store) ListActions(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("action status %q: %w", filter.Status, domain.ErrInvalid)
	}
	if filter.MinPriority != "" && !filter.MinPriority.Valid() {
		return nil, fmt.Errorf("priority %q: %w", filter.MinPriority, domain.ErrInvalid)
	}
	return s.actionRepo.ListActions(ctx, filter)
}

// ClearActionsByStatus deletes all actions in the given status
func (s *Store) ClearActionsByStatus(ctx context.Context, status domain.ActionStatus) (int64, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("clear status %q: %w", status, domain.ErrInvalid)
	}
	return s.actionRepo.ClearActionsByStatus(ctx, status)
}
