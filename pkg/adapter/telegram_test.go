package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/watchmon/pkg/adapter/mocks"
	"github.com/umputun/watchmon/pkg/domain"
)

func TestTelegramAdapter_Fetch(t *testing.T) {
	api := &mocks.TelegramAPIMock{
		GetUpdatesFunc: func(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
			all := []tgbotapi.Update{
				{UpdateID: 1, Message: &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: -100}, From: &tgbotapi.User{UserName: "ann"},
					Date: 1704164645, Text: "meeting at 5"}},
				{UpdateID: 2, Message: &tgbotapi.Message{MessageID: 11, Chat: &tgbotapi.Chat{ID: 42}, Date: 1704164645, Text: "other chat"}},
				{UpdateID: 3, ChannelPost: &tgbotapi.Message{MessageID: 12, Chat: &tgbotapi.Chat{ID: -100, Title: "Club"},
					SenderChat: &tgbotapi.Chat{ID: -100, Title: "Club"}, Date: 1704164645, Caption: "photo of the board"}},
				{UpdateID: 4, Message: &tgbotapi.Message{MessageID: 13, Chat: &tgbotapi.Chat{ID: -100}, From: &tgbotapi.User{FirstName: "Bob", LastName: "Li"},
					Date: 1704164645}},
				{UpdateID: 5},
			}
			var res []tgbotapi.Update
			for _, u := range all {
				if u.UpdateID >= config.Offset {
					res = append(res, u)
				}
			}
			return res, nil
		},
	}

	ta := &TelegramAdapter{API: api, Limit: 500}
	msgs, err := ta.Fetch(context.Background(), domain.WatchedItem{Platform: domain.PlatformTelegram, Type: domain.ItemChat, SourceID: "-100"})
	require.NoError(t, err)

	want := []domain.ContentMessage{
		{ID: "-100:10", Text: "meeting at 5", Author: "ann", Timestamp: "2024-01-02T03:04:05Z"},
		{ID: "-100:12", Text: "photo of the board", Author: "Club", Timestamp: "2024-01-02T03:04:05Z"},
	}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Errorf("Fetch() mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, api.GetUpdatesCalls(), 1)
	assert.Equal(t, 100, api.GetUpdatesCalls()[0].Config.Limit)
	assert.Equal(t, 0, api.GetUpdatesCalls()[0].Config.Offset)

	// other chat's messages stay buffered, confirmed updates are not requested again
	msgs, err = ta.Fetch(context.Background(), domain.WatchedItem{Platform: domain.PlatformTelegram, Type: domain.ItemChat, SourceID: "42"})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "42:11", msgs[0].ID)
	require.Len(t, api.GetUpdatesCalls(), 2)
	assert.Equal(t, 6, api.GetUpdatesCalls()[1].Config.Offset)
}

func TestTelegramAdapter_FetchManyPendingUpdates(t *testing.T) {
	var mu sync.Mutex
	lastID := 250
	api := &mocks.TelegramAPIMock{
		GetUpdatesFunc: func(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
			mu.Lock()
			defer mu.Unlock()
			var res []tgbotapi.Update
			for id := max(config.Offset, 1); id <= lastID && len(res) < config.Limit; id++ {
				chat := int64(-100)
				if id%2 == 0 {
					chat = 42
				}
				res = append(res, tgbotapi.Update{UpdateID: id, Message: &tgbotapi.Message{MessageID: id,
					Chat: &tgbotapi.Chat{ID: chat}, Date: 1704164645, Text: fmt.Sprintf("msg %d", id)}})
			}
			return res, nil
		},
	}
	ta := &TelegramAdapter{API: api, Limit: 10}

	ids := func(msgs []domain.ContentMessage) []string {
		res := make([]string, 0, len(msgs))
		for _, m := range msgs {
			res = append(res, m.ID)
		}
		return res
	}

	msgs, err := ta.Fetch(context.Background(), domain.WatchedItem{SourceID: "-100"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-100:231", "-100:233", "-100:235", "-100:237", "-100:239", "-100:241", "-100:243",
		"-100:245", "-100:247", "-100:249"}, ids(msgs))
	calls := api.GetUpdatesCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, []int{0, 101, 201}, []int{calls[0].Config.Offset, calls[1].Config.Offset, calls[2].Config.Offset})

	msgs, err = ta.Fetch(context.Background(), domain.WatchedItem{SourceID: "42"})
	require.NoError(t, err)
	assert.Equal(t, []string{"42:232", "42:234", "42:236", "42:238", "42:240", "42:242", "42:244", "42:246",
		"42:248", "42:250"}, ids(msgs))
	require.Len(t, api.GetUpdatesCalls(), 4)
	assert.Equal(t, 251, api.GetUpdatesCalls()[3].Config.Offset)

	mu.Lock()
	lastID = 251
	mu.Unlock()
	msgs, err = ta.Fetch(context.Background(), domain.WatchedItem{SourceID: "-100"})
	require.NoError(t, err)
	require.Len(t, msgs, 10)
	assert.Equal(t, "-100:233", msgs[0].ID)
	assert.Equal(t, "-100:251", msgs[9].ID)
	assert.Equal(t, "msg 251", msgs[9].Text)
}

func TestTelegramAdapter_Errors(t *testing.T) {
	api := &mocks.TelegramAPIMock{
		GetUpdatesFunc: func(tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
			return nil, errors.New("unauthorized")
		},
	}
	ta := &TelegramAdapter{API: api}

	_, err := ta.Fetch(context.Background(), domain.WatchedItem{SourceID: "not-a-number"})
	require.Error(t, err)
	assert.Empty(t, api.GetUpdatesCalls())

	_, err = ta.Fetch(context.Background(), domain.WatchedItem{SourceID: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")

	empty := &TelegramAdapter{API: &mocks.TelegramAPIMock{
		GetUpdatesFunc: func(tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) { return nil, nil },
	}}
	msgs, err := empty.Fetch(context.Background(), domain.WatchedItem{SourceID: "1"})
	require.NoError(t, err)
	assert.Nil(t, msgs)
}
