package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adhocore/gronx"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/watchmon/pkg/metrics"
)

// ErrSweepInFlight is reported by callers when SyncNow was skipped
var ErrSweepInFlight = errors.New("sweep already in flight")

// SweepRunner performs one sweep
type SweepRunner interface {
	Sweep(ctx context.Context) SweepResult
}

// Scheduler triggers sweeps on an interval or cron schedule and guarantees
// at most one sweep runs at a time. Ticks arriving during a sweep are dropped.
type Scheduler struct {
	runner SweepRunner

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	loopDone chan struct{}

	inFlight atomic.Bool
	skipped  atomic.Int64
	last     atomic.Pointer[SweepResult]
	sweeps   sync.WaitGroup
}

// Status is a snapshot of scheduler state
type Status struct {
	Running   bool         `json:"running"`
	InFlight  bool         `json:"in_flight"`
	Skipped   int64        `json:"skipped"`
	LastSweep *SweepResult `json:"last_sweep,omitempty"`
}

// New makes a stopped scheduler
func New(runner SweepRunner) *Scheduler {
	return &Scheduler{runner: runner}
}

// Start runs a sweep immediately and then every interval. Calling Start on a
// running scheduler does nothing.
func (s *Scheduler) Start(interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if s.start(func(time.Time) time.Duration { return interval }) {
		lgr.Printf("[INFO] scheduler started with interval %v", interval)
	}
}

// StartCron runs a sweep immediately and then on every tick of the cron expression
func (s *Scheduler) StartCron(expr string) error {
	if !gronx.IsValid(expr) {
		return fmt.Errorf("invalid cron expression %q", expr)
	}
	next := func(now time.Time) time.Duration {
		at, err := gronx.NextTickAfter(expr, now, false)
		if err != nil {
			lgr.Printf("[WARN] can't compute next tick for %q: %v", expr, err)
			return time.Hour
		}
		return at.Sub(now)
	}
	if s.start(next) {
		lgr.Printf("[INFO] scheduler started with cron %q", expr)
	}
	return nil
}

func (s *Scheduler) start(next func(now time.Time) time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.loopDone = make(chan struct{})
	go s.loop(next, s.stopCh, s.loopDone)
	return true
}

func (s *Scheduler) loop(next func(now time.Time) time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	s.trigger()
	for {
		timer := time.NewTimer(next(time.Now()))
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
			s.trigger()
		}
	}
}

// Stop disarms the schedule and waits for the loop to exit.
// A sweep already in progress keeps running, use Wait to block on it.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	done := s.loopDone
	s.mu.Unlock()

	<-done
	lgr.Printf("[INFO] scheduler stopped")
}

// Wait blocks until no sweep is in flight
func (s *Scheduler) Wait() {
	s.sweeps.Wait()
}

// SyncNow runs a sweep synchronously unless one is already in flight,
// in which case it returns false without waiting
func (s *Scheduler) SyncNow(ctx context.Context) (SweepResult, bool) {
	if !s.acquire("manual sync") {
		return SweepResult{}, false
	}
	defer s.sweeps.Done()
	defer s.inFlight.Store(false)
	return s.run(context.WithoutCancel(ctx))
}

// Status reports whether the schedule is armed, whether a sweep runs and the last result
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	return Status{Running: running, InFlight: s.inFlight.Load(), Skipped: s.skipped.Load(), LastSweep: s.last.Load()}
}

// trigger starts a background sweep unless one is in flight
func (s *Scheduler) trigger() {
	if !s.acquire("scheduled tick") {
		return
	}
	go func() {
		defer s.sweeps.Done()
		defer s.inFlight.Store(false)
		_, _ = s.run(context.Background())
	}()
}

// acquire sets the in-flight flag, registering the sweep with the wait group
func (s *Scheduler) acquire(source string) bool {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.skipped.Add(1)
		metrics.SkippedSweeps.Inc()
		lgr.Printf("[INFO] %s skipped, sweep already in flight", source)
		return false
	}
	s.sweeps.Add(1)
	return true
}

// run executes one sweep, recovering from panics so the in-flight flag is always released
func (s *Scheduler) run(ctx context.Context) (res SweepResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] sweep panic: %v", r)
			res, ok = SweepResult{Failures: 1}, true
		}
	}()
	res = s.runner.Sweep(ctx)
	s.last.Store(&res)
	return res, true
}
