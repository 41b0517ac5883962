package utils

import (
	"context"
	"sync"
	"time"

	cron "github.com/robfig/cron/v3"
)

// Scheduler runs periodic housekeeping jobs in the background.
type Scheduler struct {
	cron    *cron.Cron
	mu      sync.Mutex
	jobs    map[string]cron.EntryID
	running bool
}

// NewScheduler creates an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		jobs: make(map[string]cron.EntryID),
	}
}

// Every registers fn to run once per interval. Intervals under a second are
// rounded up. Re-registering a name replaces the old job.
func (s *Scheduler) Every(name string, interval time.Duration, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.jobs[name]; ok {
		s.cron.Remove(id)
	}
	id, err := s.cron.AddFunc("@every "+interval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		if err := fn(ctx); err != nil {
			Sugar.Warnw("scheduled job failed", "job", name, "err", err)
		}
	})
	if err != nil {
		return err
	}
	s.jobs[name] = id
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		s.cron.Start()
		s.running = true
	}
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()
	<-s.cron.Stop().Done()
}
