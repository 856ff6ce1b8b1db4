// Package scheduler runs the recurring tasks at the instants their schedules
// compute.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/netresearch/go-cron"
	"github.com/rs/zerolog"

	"github.com/diegoclair/status-update-bot/internal/domain/contract"
	"github.com/diegoclair/status-update-bot/internal/domain/daily"
)

type Scheduler struct {
	cron  *cron.Cron
	clock cron.Clock
	tasks []contract.Task
	log   zerolog.Logger

	stopOnce sync.Once
	done     chan struct{}
}

// New registers every task on a cron runner. A nil clock uses the system
// clock. Each task has its own entry: a failing or panicking run is logged
// and never affects the other tasks, and a run still in progress when the
// next one is due makes that one skip.
func New(log zerolog.Logger, loc *time.Location, clock cron.Clock, tasks ...contract.Task) (*Scheduler, error) {
	if clock == nil {
		clock = cron.RealClock{}
	}
	if loc == nil {
		loc = time.UTC
	}

	cl := cronLogger{log: log}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithClock(clock),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		clock: clock,
		tasks: tasks,
		log:   log,
		done:  make(chan struct{}),
	}

	for _, task := range tasks {
		if _, err := s.cron.ScheduleJob(task, s.job(task), cron.WithName(task.Name())); err != nil {
			return nil, fmt.Errorf("failed to schedule task %s: %w", task.Name(), err)
		}
	}

	return s, nil
}

// job adapts a task to go-cron. The context is cancelled when the scheduler
// stops.
func (s *Scheduler) job(task contract.Task) cron.Job {
	log := s.log.With().Str("task", task.Name()).Logger()

	return cron.FuncJobWithContext(func(ctx context.Context) {
		started := s.clock.Now()
		log.Info().Msg("task run started")

		if err := task.Run(ctx); err != nil {
			log.Error().Err(err).Dur("took", s.clock.Now().Sub(started)).Msg("task run failed")
			return
		}

		log.Info().
			Dur("took", s.clock.Now().Sub(started)).
			Time("next_run", task.Next(s.clock.Now())).
			Msg("task run finished")
	})
}

// Start launches the runner. It stops on its own when ctx ends.
func (s *Scheduler) Start(ctx context.Context) {
	now := s.clock.Now()
	for _, task := range s.tasks {
		s.log.Info().
			Str("task", task.Name()).
			Time("next_run", task.Next(now)).
			Dur("wait", daily.Until(task, now)).
			Msg("task scheduled")
	}

	s.cron.Start()

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-s.done:
		}
	}()
}

// Stop cancels the context of in-flight runs and waits for them to return.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.cron.StopAndWait()
		s.log.Info().Msg("scheduler stopped")
	})
}
