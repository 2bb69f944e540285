package dashboard

import (
	"sync"
	"time"
)

// Scheduler fires a refresh callback at a fixed interval until stopped. It
// has an explicit lifecycle so the loop can be torn down deterministically
// when the dashboard context goes away.
type Scheduler struct {
	interval time.Duration
	refresh  func()

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	started bool
	stopped bool
}

func NewScheduler(interval time.Duration, refresh func()) *Scheduler {
	return &Scheduler{
		interval: interval,
		refresh:  refresh,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the refresh loop. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go s.run()
}

func (s *Scheduler) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh()
		case <-s.stop:
			return
		}
	}
}

// Stop halts the loop and waits for it to exit. Idempotent; safe to call
// even if Start never ran.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	s.mu.Unlock()

	close(s.stop)
	if started {
		<-s.done
	}
}
