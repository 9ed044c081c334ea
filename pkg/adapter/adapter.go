// Package adapter fetches recent messages from content sources and normalizes
// them into domain.ContentMessage. Adapters are dispatched by (platform, item type).
package adapter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/umputun/watchmon/pkg/domain"
)

//go:generate moq -out mocks/adapter.go -pkg mocks -skip-ensure -fmt goimports . Adapter

// ErrNoAdapter is returned when no adapter is registered for a platform and item type
var ErrNoAdapter = errors.New("no adapter registered")

// Adapter fetches recent messages for a watched item.
// A nil slice with nil error means the source has no content right now.
type Adapter interface {
	Fetch(ctx context.Context, item domain.WatchedItem) ([]domain.ContentMessage, error)
}

type key struct {
	platform domain.Platform
	itemType domain.ItemType
}

// Registry dispatches fetches to adapters by platform and item type
type Registry struct {
	mu       sync.RWMutex
	adapters map[key]Adapter
}

// NewRegistry makes an empty registry
func NewRegistry() *Registry {
	return &Registry{adapters: map[key]Adapter{}}
}

// Register binds an adapter to a platform and item type, replacing any previous one
func (r *Registry) Register(platform domain.Platform, itemType domain.ItemType, a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[key{platform: platform, itemType: itemType}] = a
}

// Supports reports whether an adapter is registered for the pair
func (r *Registry) Supports(platform domain.Platform, itemType domain.ItemType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.adapters[key{platform: platform, itemType: itemType}]
	return ok
}

// Keys lists registered pairs as "platform/type", sorted
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]string, 0, len(r.adapters))
	for k := range r.adapters {
		res = append(res, string(k.platform)+"/"+string(k.itemType))
	}
	sort.Strings(res)
	return res
}

// Fetch retrieves messages for the item from its registered adapter
func (r *Registry) Fetch(ctx context.Context, item domain.WatchedItem) ([]domain.ContentMessage, error) {
	r.mu.RLock()
	a, ok := r.adapters[key{platform: item.Platform, itemType: item.Type}]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("fetch %s/%s: %w", item.Platform, item.Type, ErrNoAdapter)
	}

	msgs, err := a.Fetch(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s %s: %w", item.Platform, item.Type, item.SourceID, err)
	}
	return msgs, nil
}
