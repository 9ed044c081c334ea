package adapter

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/umputun/watchmon/pkg/domain"
)

//go:generate moq -out mocks/telegram.go -pkg mocks -skip-ensure -fmt goimports . TelegramAPI

// TelegramAPI is the subset of the bot api used to poll updates
type TelegramAPI interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

// telegramPageSize is the bot api cap on updates per getUpdates call
const telegramPageSize = 100

// telegramMaxPages bounds the pages drained by one fetch
const telegramMaxPages = 20

// TelegramAdapter reads recent messages of a chat the bot is a member of.
// The item source id is the numeric chat id, message ids are "chatID:messageID".
// Updates are confirmed by advancing the poll offset, messages of every chat
// are kept in per-chat buffers of the newest Limit entries, so fetching one
// chat doesn't lose another chat's messages.
type TelegramAdapter struct {
	API   TelegramAPI
	Limit int

	mu      sync.Mutex
	offset  int
	buffers map[int64][]RawMessage
}

// NewTelegramAdapter makes an adapter backed by a bot token
func NewTelegramAdapter(token string, limit int) (*TelegramAdapter, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot api: %w", err)
	}
	return &TelegramAdapter{API: api, Limit: limit}, nil
}

// Fetch drains pending updates into the chat buffers and returns the item's chat buffer
func (t *TelegramAdapter) Fetch(ctx context.Context, item domain.WatchedItem) ([]domain.ContentMessage, error) {
	chatID, err := strconv.ParseInt(strings.TrimSpace(item.SourceID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat id %q: %w", item.SourceID, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.poll(ctx); err != nil {
		return nil, err
	}

	buf := t.buffers[chatID]
	if len(buf) == 0 {
		return nil, nil
	}
	return Normalize(buf), nil
}

// poll reads update pages starting at the tracked offset until a short page
func (t *TelegramAdapter) poll(ctx context.Context) error {
	for range telegramMaxPages {
		cfg := tgbotapi.NewUpdate(t.offset)
		cfg.Limit = telegramPageSize
		cfg.AllowedUpdates = []string{"message", "channel_post"}

		updates, err := t.getUpdates(ctx, cfg)
		if err != nil {
			return err
		}
		for _, u := range updates {
			if u.UpdateID >= t.offset {
				t.offset = u.UpdateID + 1
			}
			t.keep(u)
		}
		if len(updates) < telegramPageSize {
			return nil
		}
	}
	return nil
}

func (t *TelegramAdapter) getUpdates(ctx context.Context, cfg tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	type result struct {
		updates []tgbotapi.Update
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		updates, err := t.API.GetUpdates(cfg)
		ch <- result{updates: updates, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get telegram updates: %w", ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("get telegram updates: %w", res.err)
		}
		return res.updates, nil
	}
}

// keep appends the update's message to its chat buffer, trimmed to the newest Limit
func (t *TelegramAdapter) keep(u tgbotapi.Update) {
	msg := u.Message
	if msg == nil {
		msg = u.ChannelPost
	}
	if msg == nil || msg.Chat == nil {
		return
	}
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if text == "" {
		return
	}

	limit := t.Limit
	if limit <= 0 {
		limit = telegramPageSize
	}
	if t.buffers == nil {
		t.buffers = make(map[int64][]RawMessage)
	}
	buf := append(t.buffers[msg.Chat.ID], RawMessage{
		ID:        fmt.Sprintf("%d:%d", msg.Chat.ID, msg.MessageID),
		Text:      text,
		Author:    telegramAuthor(msg),
		Timestamp: int64(msg.Date),
	})
	if len(buf) > limit {
		buf = slices.Clone(buf[len(buf)-limit:])
	}
	t.buffers[msg.Chat.ID] = buf
}

func telegramAuthor(msg *tgbotapi.Message) string {
	if msg.From != nil {
		if msg.From.UserName != "" {
			return msg.From.UserName
		}
		return strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
	}
	if msg.SenderChat != nil {
		return msg.SenderChat.Title
	}
	return msg.Chat.Title
}
