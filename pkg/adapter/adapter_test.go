package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/watchmon/pkg/adapter/mocks"
	"github.com/umputun/watchmon/pkg/domain"
)

func TestRegistry_Fetch(t *testing.T) {
	slack := &mocks.AdapterMock{
		FetchFunc: func(_ context.Context, item domain.WatchedItem) ([]domain.ContentMessage, error) {
			return []domain.ContentMessage{{ID: "m1", Text: "hi from " + item.SourceID}}, nil
		},
	}
	broken := &mocks.AdapterMock{
		FetchFunc: func(context.Context, domain.WatchedItem) ([]domain.ContentMessage, error) {
			return nil, errors.New("connection refused")
		},
	}

	reg := NewRegistry()
	reg.Register(domain.PlatformSlack, domain.ItemChannel, slack)
	reg.Register(domain.PlatformDiscord, domain.ItemServer, broken)

	assert.True(t, reg.Supports(domain.PlatformSlack, domain.ItemChannel))
	assert.False(t, reg.Supports(domain.PlatformSlack, domain.ItemServer))
	assert.Equal(t, []string{"discord/server", "slack/channel"}, reg.Keys())

	t.Run("dispatch by platform and type", func(t *testing.T) {
		msgs, err := reg.Fetch(context.Background(), domain.WatchedItem{Platform: domain.PlatformSlack, Type: domain.ItemChannel, SourceID: "C1"})
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "hi from C1", msgs[0].Text)
		require.Len(t, slack.FetchCalls(), 1)
		assert.Equal(t, "C1", slack.FetchCalls()[0].Item.SourceID)
	})

	t.Run("adapter error is wrapped", func(t *testing.T) {
		_, err := reg.Fetch(context.Background(), domain.WatchedItem{Platform: domain.PlatformDiscord, Type: domain.ItemServer, SourceID: "g1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Contains(t, err.Error(), "discord/server g1")
	})

	t.Run("unregistered pair", func(t *testing.T) {
		_, err := reg.Fetch(context.Background(), domain.WatchedItem{Platform: domain.PlatformWhatsApp, Type: domain.ItemChat})
		require.ErrorIs(t, err, ErrNoAdapter)
	})

	t.Run("register replaces", func(t *testing.T) {
		other := &mocks.AdapterMock{FetchFunc: func(context.Context, domain.WatchedItem) ([]domain.ContentMessage, error) { return nil, nil }}
		reg.Register(domain.PlatformSlack, domain.ItemChannel, other)
		msgs, err := reg.Fetch(context.Background(), domain.WatchedItem{Platform: domain.PlatformSlack, Type: domain.ItemChannel})
		require.NoError(t, err)
		assert.Nil(t, msgs)
		assert.Len(t, other.FetchCalls(), 1)
	})
}
