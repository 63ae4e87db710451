package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type job struct {
	name  string
	every time.Duration
	run   func(ctx context.Context) error
}

// Scheduler runs registered jobs on fixed intervals until stopped. Jobs must
// be registered before Start; registrations after Start are ignored.
type Scheduler struct {
	mu      sync.Mutex
	jobs    []job
	started bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job to run every interval.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		slog.Warn("Job registered after scheduler start, ignoring", "name", name)
		return
	}

	s.jobs = append(s.jobs, job{name: name, every: interval, run: fn})
	slog.Info("Background job registered", "name", name, "interval", interval)
}

// Start launches one goroutine per job. Each job runs immediately, then on
// its interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}

	slog.Info("Background scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Background scheduler stopped")
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.every)
	defer ticker.Stop()

	s.execute(s.ctx, j)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(s.ctx, j)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, j job) {
	start := time.Now()

	if err := j.run(ctx); err != nil {
		slog.Error("Background job failed", "name", j.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Background job completed", "name", j.name, "duration", time.Since(start))
}

// RunOnce executes every registered job a single time on the caller's
// context, independent of the interval loop.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := make([]job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	for _, j := range jobs {
		s.execute(ctx, j)
	}
}
