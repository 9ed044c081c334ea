package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/watchmon/pkg/domain"
	"github.com/umputun/watchmon/pkg/repository"
	"github.com/umputun/watchmon/pkg/scheduler"
)

var (
	_ scheduler.WatchedManager = (*Store)(nil)
	_ scheduler.LedgerManager  = (*Store)(nil)
	_ scheduler.ActionManager  = (*Store)(nil)
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1,
		RetryAttempts: 2, RetryInitialDelay: time.Millisecond, RetryMaxDelay: 5 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return NewStore(repos)
}

func TestStore_CreateWatchedItemValidation(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		item domain.WatchedItem
	}{
		{"bad platform", domain.WatchedItem{Platform: "myspace", Type: domain.ItemChat, SourceID: "1", Goal: "g"}},
		{"bad type", domain.WatchedItem{Platform: domain.PlatformSlack, Type: "forum", SourceID: "1", Goal: "g"}},
		{"blank source", domain.WatchedItem{Platform: domain.PlatformSlack, Type: domain.ItemChannel, SourceID: "  ", Goal: "g"}},
		{"blank goal", domain.WatchedItem{Platform: domain.PlatformSlack, Type: domain.ItemChannel, SourceID: "C1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := tt.item
			require.ErrorIs(t, s.CreateWatchedItem(ctx, &item), domain.ErrInvalid)
		})
	}

	item := &domain.WatchedItem{Platform: domain.PlatformSlack, Type: domain.ItemChannel, SourceID: " C1 ", Goal: " outages "}
	require.NoError(t, s.CreateWatchedItem(ctx, item))
	assert.Equal(t, "C1", item.SourceID)
	assert.Equal(t, "outages", item.Goal)
	assert.Equal(t, domain.WatchActive, item.Status)

	dup := &domain.WatchedItem{Platform: domain.PlatformSlack, Type: domain.ItemChannel, SourceID: "C1", Goal: "other"}
	require.ErrorIs(t, s.CreateWatchedItem(ctx, dup), domain.ErrDuplicate)
}

func TestStore_WatchedLifecycle(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	a := &domain.WatchedItem{Platform: domain.PlatformGitHub, Type: domain.ItemRepo, SourceID: "umputun/remark42", Goal: "security reports"}
	b := &domain.WatchedItem{Platform: domain.PlatformRSS, Type: domain.ItemFeed, SourceID: "https://example.com/feed", Goal: "releases"}
	require.NoError(t, s.CreateWatchedItem(ctx, a))
	require.NoError(t, s.CreateWatchedItem(ctx, b))

	require.NoError(t, s.SetWatchedItemStatus(ctx, b.ID, domain.WatchPaused))
	require.ErrorIs(t, s.SetWatchedItemStatus(ctx, b.ID, "sleeping"), domain.ErrInvalid)

	active, err := s.GetActiveWatchedItems(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a.ID, active[0].ID)

	all, err := s.ListWatchedItems(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.UpdateWatchedItemGoal(ctx, a.ID, "CVE mentions"))
	require.ErrorIs(t, s.UpdateWatchedItemGoal(ctx, a.ID, " "), domain.ErrInvalid)
	got, err := s.GetWatchedItem(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "CVE mentions", got.Goal)

	require.NoError(t, s.DeleteWatchedItem(ctx, a.ID))
	_, err = s.GetWatchedItem(ctx, a.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_LedgerAndActions(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	item := &domain.WatchedItem{Platform: domain.PlatformTelegram, Type: domain.ItemChat, SourceID: "-100", Goal: "invoices"}
	require.NoError(t, s.CreateWatchedItem(ctx, item))

	n, err := s.MarkAnalyzed(ctx, item.ID, []string{"-100:1", "-100:2"}, item.Platform)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	n, err = s.MarkAnalyzed(ctx, item.ID, []string{"-100:2", "-100:3"}, item.Platform)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ids, err := s.GetAnalyzedMessageIDs(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
	cnt, err := s.CountAnalyzed(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cnt)

	low := &domain.Action{WatchedItemID: item.ID, Title: "file receipt", Priority: domain.PriorityLow}
	crit := &domain.Action{WatchedItemID: item.ID, Title: "pay overdue invoice", Priority: domain.PriorityCritical,
		SourceMessageIDs: []string{"-100:3"}}
	require.NoError(t, s.CreateAction(ctx, low))
	require.NoError(t, s.CreateAction(ctx, crit))

	list, err := s.ListActions(ctx, domain.ActionFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, crit.ID, list[0].ID)

	_, err = s.ListActions(ctx, domain.ActionFilter{MinPriority: "urgent"})
	require.ErrorIs(t, err, domain.ErrInvalid)
	_, err = s.ListActions(ctx, domain.ActionFilter{Status: "archived"})
	require.ErrorIs(t, err, domain.ErrInvalid)

	require.ErrorIs(t, s.UpdateActionStatus(ctx, low.ID, "archived"), domain.ErrInvalid)
	require.NoError(t, s.UpdateActionStatus(ctx, low.ID, domain.ActionCompleted))
	got, err := s.GetAction(ctx, low.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.CompletedAt)

	_, err = s.ClearActionsByStatus(ctx, "archived")
	require.ErrorIs(t, err, domain.ErrInvalid)
	_, err = s.ClearActionsByStatus(ctx, "")
	require.ErrorIs(t, err, domain.ErrInvalid)
	cleared, err := s.ClearActionsByStatus(ctx, domain.ActionCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	pending, err := s.ListActions(ctx, domain.ActionFilter{Status: domain.ActionPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, []string{"-100:3"}, pending[0].SourceMessageIDs)

	cleared, err = s.ClearActionsByStatus(ctx, domain.ActionPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)
	pending, err = s.ListActions(ctx, domain.ActionFilter{Status: domain.ActionPending})
	require.NoError(t, err)
	assert.Empty(t, pending)
}
