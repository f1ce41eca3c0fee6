package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// JobFunc does one run of a periodic job. Errors are logged, not fatal.
type JobFunc func(ctx context.Context) error

type job struct {
	name     string
	interval time.Duration
	run      JobFunc
}

// Scheduler runs named jobs on fixed intervals. The interval is measured
// from the end of one run to the start of the next, so a slow run never
// stacks up behind itself.
type Scheduler struct {
	jobs []job

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	drainTimeout time.Duration
}

func New() *Scheduler {
	return &Scheduler{
		done:         make(chan struct{}),
		drainTimeout: 10 * time.Second,
	}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(name string, interval time.Duration, run JobFunc) error {
	if name == "" {
		return fmt.Errorf("job name must not be empty")
	}
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive", name)
	}
	if run == nil {
		return fmt.Errorf("job %s: run func must not be nil", name)
	}

	s.jobs = append(s.jobs, job{name: name, interval: interval, run: run})
	return nil
}

// Start launches one goroutine per registered job. Jobs run until Stop
// is called or the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	log := logging.GetFromContext(ctx)

	for _, j := range s.jobs {
		log.Info("starting job", "job", j.name, "interval", j.interval.String())

		s.wg.Add(1)
		go func(j job) {
			defer s.wg.Done()
			s.runLoop(ctx, j)
		}(j)
	}
}

// Stop signals all jobs and waits for in-flight runs to finish, bounded
// by the drain timeout.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	drained := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-time.After(s.drainTimeout):
		return fmt.Errorf("scheduler did not drain within %s", s.drainTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runLoop(ctx context.Context, j job) {
	timer := time.NewTimer(j.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-timer.C:
		}

		s.runOnce(ctx, j)
		timer.Reset(j.interval)
	}
}

// runOnce isolates a single run: a panicking or failing job is logged
// and never takes the other jobs down with it.
func (s *Scheduler) runOnce(ctx context.Context, j job) {
	log := logging.GetFromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error("job panicked", "job", j.name, "recovered", fmt.Sprintf("%v", r))
		}
	}()

	err := j.run(ctx)
	if err != nil {
		log.Error("job failed", "job", j.name, "err", err.Error())
	}
}
