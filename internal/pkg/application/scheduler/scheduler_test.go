package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestRegisterRejectsBadJobs(t *testing.T) {
	is := is.New(t)
	s := New()

	is.True(s.Register("", time.Second, func(ctx context.Context) error { return nil }) != nil)
	is.True(s.Register("j", 0, func(ctx context.Context) error { return nil }) != nil)
	is.True(s.Register("j", time.Second, nil) != nil)
	is.NoErr(s.Register("j", time.Second, func(ctx context.Context) error { return nil }))
}

func TestJobRunsRepeatedly(t *testing.T) {
	is := is.New(t)
	s := New()

	var runs atomic.Int32
	err := s.Register("counter", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	is.NoErr(err)

	s.Start(context.Background())
	waitFor(t, func() bool { return runs.Load() >= 3 })
	is.NoErr(s.Stop(context.Background()))
}

func TestPanickingJobDoesNotStopOthers(t *testing.T) {
	is := is.New(t)
	s := New()

	var healthy atomic.Int32
	is.NoErr(s.Register("panicky", 5*time.Millisecond, func(ctx context.Context) error {
		panic("boom")
	}))
	is.NoErr(s.Register("healthy", 5*time.Millisecond, func(ctx context.Context) error {
		healthy.Add(1)
		return nil
	}))

	s.Start(context.Background())
	waitFor(t, func() bool { return healthy.Load() >= 3 })
	is.NoErr(s.Stop(context.Background()))
}

func TestFailingJobKeepsRunning(t *testing.T) {
	is := is.New(t)
	s := New()

	var runs atomic.Int32
	is.NoErr(s.Register("flaky", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return fmt.Errorf("nope")
	}))

	s.Start(context.Background())
	waitFor(t, func() bool { return runs.Load() >= 2 })
	is.NoErr(s.Stop(context.Background()))
}

func TestIntervalMeasuredFromEndOfRun(t *testing.T) {
	is := is.New(t)
	s := New()

	var starts []time.Time
	done := make(chan struct{})
	is.NoErr(s.Register("slow", 10*time.Millisecond, func(ctx context.Context) error {
		starts = append(starts, time.Now())
		if len(starts) == 2 {
			close(done)
		}
		time.Sleep(20 * time.Millisecond)
		return nil
	}))

	s.Start(context.Background())
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run twice")
	}
	is.NoErr(s.Stop(context.Background()))

	// run time plus interval, not just the interval
	is.True(starts[1].Sub(starts[0]) >= 30*time.Millisecond)
}

func TestStopDrainsAndReturns(t *testing.T) {
	is := is.New(t)
	s := New()

	started := make(chan struct{})
	is.NoErr(s.Register("slow", time.Millisecond, func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		time.Sleep(20 * time.Millisecond)
		return nil
	}))

	s.Start(context.Background())
	<-started
	is.NoErr(s.Stop(context.Background()))
}

func TestStopTimesOutOnStuckJob(t *testing.T) {
	is := is.New(t)
	s := New()
	s.drainTimeout = 20 * time.Millisecond

	started := make(chan struct{})
	is.NoErr(s.Register("stuck", time.Millisecond, func(ctx context.Context) error {
		close(started)
		time.Sleep(time.Second)
		return nil
	}))

	s.Start(context.Background())
	<-started
	is.True(s.Stop(context.Background()) != nil)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
