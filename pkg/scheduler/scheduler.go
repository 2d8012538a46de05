// Package scheduler runs the periodic style summary sweep. Summaries are normally refreshed right
// after a send is recorded, the sweep retries domains whose detached summarization failed or
// was cut short by a shutdown.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/replyscope/pkg/memory"
)

//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer

// Summarizer is the learning memory part the sweep works with
type Summarizer interface {
	Pending() []string
	Summarize(ctx context.Context, domainID string) (string, error)
}

// Params holds scheduler dependencies and intervals
type Params struct {
	Memory     Summarizer
	Interval   time.Duration // sweep interval, 30m if zero
	Timeout    time.Duration // limit for one domain summarization, 60s if zero
	MaxWorkers int           // concurrent summarizations, 2 if zero
}

// Scheduler manages the periodic summary sweep
type Scheduler struct {
	memory     Summarizer
	interval   time.Duration
	timeout    time.Duration
	maxWorkers int
	wg         sync.WaitGroup
	cancel     context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	res := &Scheduler{
		memory:     params.Memory,
		interval:   params.Interval,
		timeout:    params.Timeout,
		maxWorkers: params.MaxWorkers,
	}
	if res.interval <= 0 {
		res.interval = 30 * time.Minute
	}
	if res.timeout <= 0 {
		res.timeout = 60 * time.Second
	}
	if res.maxWorkers <= 0 {
		res.maxWorkers = 2
	}
	return res
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.sweepWorker(ctx)

	lgr.Printf("[INFO] scheduler started with summary sweep interval %v", s.interval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// SweepNow summarizes all pending domains and returns the number of refreshed summaries
func (s *Scheduler) SweepNow(ctx context.Context) int {
	return s.sweep(ctx)
}

func (s *Scheduler) sweepWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) int {
	pending := s.memory.Pending()
	if len(pending) == 0 {
		return 0
	}
	lgr.Printf("[DEBUG] summary sweep, %d pending domains", len(pending))

	var mu sync.Mutex
	updated := 0
	g := errgroup.Group{}
	g.SetLimit(s.maxWorkers)
	for _, domainID := range pending {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			dctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			if _, err := s.memory.Summarize(dctx, domainID); err != nil {
				if errors.Is(err, memory.ErrNotEnoughSamples) {
					lgr.Printf("[DEBUG] skip summary for %s: %v", domainID, err)
					return nil
				}
				lgr.Printf("[WARN] summary sweep failed for %s: %v", domainID, err)
				return nil
			}
			mu.Lock()
			updated++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	lgr.Printf("[INFO] summary sweep completed, %d of %d domains updated", updated, len(pending))
	return updated
}
