package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/umputun/watchmon/pkg/domain"
	"github.com/umputun/watchmon/pkg/metrics"
)

//go:generate moq -out mocks/watched_manager.go -pkg mocks -skip-ensure -fmt goimports . WatchedManager
//go:generate moq -out mocks/ledger_manager.go -pkg mocks -skip-ensure -fmt goimports . LedgerManager
//go:generate moq -out mocks/action_manager.go -pkg mocks -skip-ensure -fmt goimports . ActionManager
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator

// WatchedManager lists watched items to sweep
type WatchedManager interface {
	GetActiveWatchedItems(ctx context.Context) ([]domain.WatchedItem, error)
}

// LedgerManager reads and extends the analyzed-message ledger
type LedgerManager interface {
	GetAnalyzedMessageIDs(ctx context.Context, itemID int64) (map[string]struct{}, error)
	MarkAnalyzed(ctx context.Context, itemID int64, ids []string, platform domain.Platform) (int64, error)
}

// ActionManager persists generated actions
type ActionManager interface {
	CreateAction(ctx context.Context, action *domain.Action) error
}

// Fetcher retrieves recent messages for a watched item
type Fetcher interface {
	Fetch(ctx context.Context, item domain.WatchedItem) ([]domain.ContentMessage, error)
}

// Generator turns new messages into an optional action draft
type Generator interface {
	Generate(ctx context.Context, item domain.WatchedItem, msgs []domain.ContentMessage) *domain.ActionDraft
}

// SweepResult aggregates counters of one sweep
type SweepResult struct {
	ID               string        `json:"id"`
	StartedAt        time.Time     `json:"started_at"`
	ItemsProcessed   int           `json:"items_processed"`
	MessagesAnalyzed int64         `json:"messages_analyzed"`
	ActionsGenerated int           `json:"actions_generated"`
	Failures         int           `json:"failures"`
	Duration         time.Duration `json:"duration"`
}

// SweeperParams holds dependencies and settings for a Sweeper
type SweeperParams struct {
	WatchedManager WatchedManager
	LedgerManager  LedgerManager
	ActionManager  ActionManager
	Fetcher        Fetcher
	Generator      Generator

	ItemDelay       time.Duration // minimum gap between classifier calls
	FetchTimeout    time.Duration
	ClassifyTimeout time.Duration
	FetchWorkers    int // concurrent fetches, 1 keeps fetches sequential
}

// Sweeper runs one pass over all active watched items
type Sweeper struct {
	watched   WatchedManager
	ledger    LedgerManager
	actions   ActionManager
	fetcher   Fetcher
	generator Generator
	limiter   *rate.Limiter

	fetchTimeout    time.Duration
	classifyTimeout time.Duration
	fetchWorkers    int
}

// itemResult holds per-item counters folded into SweepResult
type itemResult struct {
	analyzed  int64
	generated int
	failures  int
}

// fetchResult is a prefetched adapter response
type fetchResult struct {
	msgs []domain.ContentMessage
	err  error
}

// NewSweeper makes a sweeper from params
func NewSweeper(params SweeperParams) *Sweeper {
	if params.FetchWorkers <= 0 {
		params.FetchWorkers = 1
	}
	limit := rate.Inf
	if params.ItemDelay > 0 {
		limit = rate.Every(params.ItemDelay)
	}
	return &Sweeper{
		watched:         params.WatchedManager,
		ledger:          params.LedgerManager,
		actions:         params.ActionManager,
		fetcher:         params.Fetcher,
		generator:       params.Generator,
		limiter:         rate.NewLimiter(limit, 1),
		fetchTimeout:    params.FetchTimeout,
		classifyTimeout: params.ClassifyTimeout,
		fetchWorkers:    params.FetchWorkers,
	}
}

// Sweep processes every active watched item once. It never fails as a whole,
// per-item problems are logged and counted in Failures.
func (s *Sweeper) Sweep(ctx context.Context) SweepResult {
	res := SweepResult{ID: uuid.NewString()[:8], StartedAt: time.Now()}
	defer func() {
		res.Duration = time.Since(res.StartedAt)
		metrics.Sweeps.Inc()
		metrics.SweepDuration.Observe(res.Duration.Seconds())
		lgr.Printf("[INFO] sweep %s done in %v: items=%d analyzed=%d actions=%d failures=%d", res.ID,
			res.Duration.Round(time.Millisecond), res.ItemsProcessed, res.MessagesAnalyzed, res.ActionsGenerated, res.Failures)
	}()

	items, err := s.watched.GetActiveWatchedItems(ctx)
	if err != nil {
		lgr.Printf("[WARN] sweep %s can't load watched items: %v", res.ID, err)
		metrics.PersistFailures.Inc()
		res.Failures++
		return res
	}
	lgr.Printf("[DEBUG] sweep %s started for %d items", res.ID, len(items))

	prefetched := s.prefetch(ctx, items)
	for i, item := range items {
		var pre *fetchResult
		if prefetched != nil {
			pre = &prefetched[i]
		}
		ir := s.processItem(ctx, res.ID, item, pre)
		res.ItemsProcessed++
		res.MessagesAnalyzed += ir.analyzed
		res.ActionsGenerated += ir.generated
		res.Failures += ir.failures
		metrics.ItemsProcessed.Inc()
	}
	return res
}

// prefetch fetches all items concurrently when more than one worker is configured.
// Returns nil for sequential mode.
func (s *Sweeper) prefetch(ctx context.Context, items []domain.WatchedItem) []fetchResult {
	if s.fetchWorkers <= 1 || len(items) < 2 {
		return nil
	}

	results := make([]fetchResult, len(items))
	var g errgroup.Group
	g.SetLimit(s.fetchWorkers)
	for i, item := range items {
		g.Go(func() error {
			results[i].msgs, results[i].err = s.fetch(ctx, item)
			return nil
		})
	}
	_ = g.Wait() // per-item errors are kept in results
	return results
}

// fetch calls the adapter with a timeout, converting panics into errors
func (s *Sweeper) fetch(ctx context.Context, item domain.WatchedItem) (msgs []domain.ContentMessage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("adapter panic: %v", r)
		}
	}()
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}
	return s.fetcher.Fetch(ctx, item)
}

// processItem runs fetch, diff, classify and ledger update for one item
func (s *Sweeper) processItem(ctx context.Context, sweepID string, item domain.WatchedItem, pre *fetchResult) (res itemResult) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] sweep %s panic on %s: %v\n%s", sweepID, item.DisplayName(), r, debug.Stack())
			res.failures++
		}
	}()

	var msgs []domain.ContentMessage
	var err error
	if pre != nil {
		msgs, err = pre.msgs, pre.err
	} else {
		msgs, err = s.fetch(ctx, item)
	}
	if err != nil {
		lgr.Printf("[WARN] sweep %s fetch failed for %s (%s/%s): %v", sweepID, item.DisplayName(), item.Platform, item.Type, err)
		metrics.FetchFailures.WithLabelValues(string(item.Platform)).Inc()
		res.failures++
		return res
	}
	if len(msgs) == 0 {
		lgr.Printf("[DEBUG] sweep %s no content for %s", sweepID, item.DisplayName())
		return res
	}

	analyzed, err := s.ledger.GetAnalyzedMessageIDs(ctx, item.ID)
	if err != nil {
		lgr.Printf("[WARN] sweep %s can't read ledger for %s: %v", sweepID, item.DisplayName(), err)
		metrics.PersistFailures.Inc()
		res.failures++
		return res
	}

	fresh := NewMessages(msgs, analyzed)
	if len(fresh) == 0 {
		return res
	}
	lgr.Printf("[DEBUG] sweep %s %d new of %d messages for %s", sweepID, len(fresh), len(msgs), item.DisplayName())

	if draft := s.classify(ctx, sweepID, item, fresh); draft != nil {
		action := &domain.Action{
			WatchedItemID:    item.ID,
			Title:            draft.Title,
			Description:      draft.Description,
			Priority:         draft.Priority,
			Status:           domain.ActionPending,
			SourceContent:    draft.SourceContent,
			SourceMessageIDs: draft.SourceMessageIDs,
		}
		if err := s.actions.CreateAction(ctx, action); err != nil {
			lgr.Printf("[WARN] sweep %s can't save action for %s: %v", sweepID, item.DisplayName(), err)
			metrics.PersistFailures.Inc()
			res.failures++
		} else {
			lgr.Printf("[INFO] new %s action for %s: %s", action.Priority, item.DisplayName(), action.Title)
			metrics.ActionsGenerated.Inc()
			res.generated++
		}
	}

	ids := make([]string, 0, len(fresh))
	for _, m := range fresh {
		ids = append(ids, m.ID)
	}
	n, err := s.ledger.MarkAnalyzed(ctx, item.ID, ids, item.Platform)
	if err != nil {
		lgr.Printf("[WARN] sweep %s can't mark %d messages analyzed for %s: %v", sweepID, len(ids), item.DisplayName(), err)
		metrics.PersistFailures.Inc()
		res.failures++
		return res
	}
	metrics.MessagesAnalyzed.Add(float64(n))
	res.analyzed = n
	return res
}

// classify waits for the pacing limiter and asks the generator for a draft
func (s *Sweeper) classify(ctx context.Context, sweepID string, item domain.WatchedItem, msgs []domain.ContentMessage) *domain.ActionDraft {
	if err := s.limiter.Wait(ctx); err != nil {
		lgr.Printf("[WARN] sweep %s classifier pacing interrupted for %s: %v", sweepID, item.DisplayName(), err)
		return nil
	}
	if s.classifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.classifyTimeout)
		defer cancel()
	}
	return s.generator.Generate(ctx, item, msgs)
}
