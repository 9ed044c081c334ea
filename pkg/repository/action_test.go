package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/watchmon/pkg/domain"
)

func TestActionRepository_CreateAndGet(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	item := createItem(t, repos, domain.PlatformGitHub, domain.ItemRepo, "acme/app")

	action := &domain.Action{
		WatchedItemID:    item.ID,
		Title:            "Review PR #12",
		Description:      "maintainer asked for review",
		Priority:         domain.PriorityHigh,
		SourceContent:    "[2024-01-01T00:00:00Z] bob: please review",
		SourceMessageIDs: []string{"issue:12", "comment:7"},
	}
	require.NoError(t, repos.Action.CreateAction(ctx, action))
	assert.NotZero(t, action.ID)
	assert.Equal(t, domain.ActionPending, action.Status)

	got, err := repos.Action.GetAction(ctx, action.ID)
	require.NoError(t, err)
	assert.Equal(t, "Review PR #12", got.Title)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.Equal(t, []string{"issue:12", "comment:7"}, got.SourceMessageIDs)
	assert.Nil(t, got.CompletedAt)

	_, err = repos.Action.GetAction(ctx, 777)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActionRepository_UpdateStatus(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	item := createItem(t, repos, domain.PlatformRSS, domain.ItemFeed, "https://example.com/feed")

	action := &domain.Action{WatchedItemID: item.ID, Title: "Read release notes", Priority: domain.PriorityLow}
	require.NoError(t, repos.Action.CreateAction(ctx, action))

	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, repos.Action.UpdateActionStatus(ctx, action.ID, domain.ActionCompleted))
	got, err := repos.Action.GetAction(ctx, action.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.After(before))

	// reopening clears the completion stamp
	require.NoError(t, repos.Action.UpdateActionStatus(ctx, action.ID, domain.ActionPending))
	got, err = repos.Action.GetAction(ctx, action.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionPending, got.Status)
	assert.Nil(t, got.CompletedAt)

	require.NoError(t, repos.Action.UpdateActionStatus(ctx, action.ID, domain.ActionDismissed))
	got, err = repos.Action.GetAction(ctx, action.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionDismissed, got.Status)
	assert.Nil(t, got.CompletedAt)

	require.ErrorIs(t, repos.Action.UpdateActionStatus(ctx, 999, domain.ActionCompleted), domain.ErrNotFound)
}

func TestActionRepository_ListOrderingAndFilters(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	first := createItem(t, repos, domain.PlatformTelegram, domain.ItemChat, "1")
	second := createItem(t, repos, domain.PlatformTelegram, domain.ItemChat, "2")

	create := func(itemID int64, title string, p domain.Priority) *domain.Action {
		a := &domain.Action{WatchedItemID: itemID, Title: title, Priority: p}
		require.NoError(t, repos.Action.CreateAction(ctx, a))
		return a
	}
	create(first.ID, "low-1", domain.PriorityLow)
	create(first.ID, "crit-1", domain.PriorityCritical)
	create(second.ID, "med-1", domain.PriorityMedium)
	create(second.ID, "high-1", domain.PriorityHigh)
	dismissed := create(second.ID, "high-2", domain.PriorityHigh)
	require.NoError(t, repos.Action.UpdateActionStatus(ctx, dismissed.ID, domain.ActionDismissed))

	titles := func(list []domain.Action) []string {
		res := make([]string, 0, len(list))
		for _, a := range list {
			res = append(res, a.Title)
		}
		return res
	}

	all, err := repos.Action.ListActions(ctx, domain.ActionFilter{})
	require.NoError(t, err)
	// same priority: newest first
	assert.Equal(t, []string{"crit-1", "high-2", "high-1", "med-1", "low-1"}, titles(all))
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Priority.Rank(), all[i].Priority.Rank())
	}

	pending, err := repos.Action.ListActions(ctx, domain.ActionFilter{Status: domain.ActionPending})
	require.NoError(t, err)
	assert.Equal(t, []string{"crit-1", "high-1", "med-1", "low-1"}, titles(pending))

	byItem, err := repos.Action.ListActions(ctx, domain.ActionFilter{WatchedItemID: second.ID, Status: domain.ActionPending})
	require.NoError(t, err)
	assert.Equal(t, []string{"high-1", "med-1"}, titles(byItem))

	urgent, err := repos.Action.ListActions(ctx, domain.ActionFilter{MinPriority: domain.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, []string{"crit-1", "high-2", "high-1"}, titles(urgent))

	limited, err := repos.Action.ListActions(ctx, domain.ActionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"crit-1", "high-2"}, titles(limited))

	t.Run("clear by status", func(t *testing.T) {
		n, err := repos.Action.ClearActionsByStatus(ctx, domain.ActionDismissed)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		all, err := repos.Action.ListActions(ctx, domain.ActionFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})
}
