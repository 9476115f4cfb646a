// file: internal/checker/scheduler.go
// version: 1.1.0
// guid: f5e97283-1ef2-4cb2-a8c7-f398e165bfef

package checker

import (
	"context"
	"log"
	"sync"
	"time"
)

// BootDelay is how long schedulers wait after startup before the first run,
// so the server is fully up before background work starts.
const BootDelay = 10 * time.Second

// Scheduler drives a check function on a fixed interval. The interval is
// read through a getter on every Reconfigure so database settings changes
// take effect without a restart.
type Scheduler struct {
	name      string
	run       func(ctx context.Context)
	interval  func() time.Duration
	bootDelay time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	current time.Duration
	started bool
}

// NewScheduler creates a scheduler that reads its interval dynamically via
// the getter.
func NewScheduler(name string, intervalGetter func() time.Duration, run func(ctx context.Context)) *Scheduler {
	return &Scheduler{
		name:      name,
		run:       run,
		interval:  intervalGetter,
		bootDelay: BootDelay,
	}
}

// Start launches the loop: one boot-delayed run, then ticks at the
// configured interval. Calling Start twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.current = s.interval()
	s.launch(ctx, s.bootDelay)
	log.Printf("[INFO] %s scheduler started: first run in %s, then every %s", s.name, s.bootDelay, s.current)
}

// launch starts a fresh loop goroutine. Caller holds s.mu.
func (s *Scheduler) launch(parent context.Context, delay time.Duration) {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	interval := s.current

	go func() {
		defer close(done)

		boot := time.NewTimer(delay)
		defer boot.Stop()
		select {
		case <-ctx.Done():
			return
		case <-boot.C:
		}
		s.run(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.run(ctx)
			}
		}
	}()
}

// Reconfigure re-reads the interval and, if it changed, tears down the
// running loop and starts a new one. The old loop is fully stopped before
// the replacement starts so timers never stack.
func (s *Scheduler) Reconfigure(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	next := s.interval()
	if next == s.current {
		return
	}

	s.cancel()
	<-s.done
	s.current = next
	s.launch(ctx, next)
	log.Printf("[INFO] %s scheduler reconfigured: every %s", s.name, next)
}

// Stop halts the loop and waits for any in-flight run to observe
// cancellation.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.cancel()
	<-s.done
	s.started = false
	log.Printf("[INFO] %s scheduler stopped", s.name)
}
