package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerRunOnce(t *testing.T) {
	s := NewScheduler()

	var first, second int32
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&first, 1)
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&second, 1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	if got := atomic.LoadInt32(&first); got != 2 {
		t.Errorf("first job ran %d times, want 2", got)
	}
	if got := atomic.LoadInt32(&second); got != 2 {
		t.Errorf("second job ran %d times, want 2", got)
	}
}

func TestSchedulerStartRunsImmediately(t *testing.T) {
	s := NewScheduler()

	ran := make(chan struct{}, 1)
	s.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run after Start")
	}
}

func TestSchedulerIgnoresJobsAfterStart(t *testing.T) {
	s := NewScheduler()
	s.Start()
	defer s.Stop()

	var calls int32
	s.AddJob("late", time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	s.RunOnce(context.Background())
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("late job ran %d times, want 0", got)
	}
}

func TestSchedulerStopWaitsForJobs(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	s.AddJob("slow", time.Hour, func(ctx context.Context) error {
		<-ctx.Done()
		close(done)
		return nil
	})

	s.Start()
	s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop returned before job observed cancellation")
	}
}
