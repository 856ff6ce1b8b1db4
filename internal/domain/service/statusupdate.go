package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/diegoclair/status-update-bot/internal/config"
	"github.com/diegoclair/status-update-bot/internal/domain/contract"
	"github.com/diegoclair/status-update-bot/internal/domain/daily"
	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

// StatusUpdateTask is the registry name of the status-update job.
const StatusUpdateTask = "status-update"

type statusUpdateJob struct {
	cfg        *config.Config
	schedule   daily.At
	dm         contract.DataManager
	chat       contract.ChatClient
	directory  contract.DirectoryClient
	store      contract.CheckpointStore
	collector  *collector
	reconciler *reconciler
	now        func() time.Time
	log        zerolog.Logger
}

func newStatusUpdateJob(
	cfg *config.Config,
	dm contract.DataManager,
	chat contract.ChatClient,
	directory contract.DirectoryClient,
	store contract.CheckpointStore,
	log zerolog.Logger,
) *statusUpdateJob {
	log = log.With().Str("task", StatusUpdateTask).Logger()

	return &statusUpdateJob{
		cfg:        cfg,
		schedule:   daily.At{Hour: cfg.RunHour, Minute: cfg.RunMin, Location: cfg.Location},
		dm:         dm,
		chat:       chat,
		directory:  directory,
		store:      store,
		collector:  newCollector(cfg, chat, log),
		reconciler: newReconciler(cfg, directory, log),
		now:        time.Now,
		log:        log,
	}
}

func (j *statusUpdateJob) Name() string {
	return StatusUpdateTask
}

func (j *statusUpdateJob) Next(now time.Time) time.Time {
	return j.schedule.Next(now)
}

// NextRun satisfies contract.StatusService.
func (j *statusUpdateJob) NextRun(now time.Time) time.Time {
	return j.schedule.Next(now)
}

// LastRun returns the most recent recorded run, or nil before the first one.
func (j *statusUpdateJob) LastRun() (*entity.Run, error) {
	return j.dm.Run().GetLatest(StatusUpdateTask)
}

// Run reconciles yesterday's status updates and publishes the report.
func (j *statusUpdateJob) Run(ctx context.Context) error {
	now := j.now()
	run := j.startRun(now)

	result, reportTS, err := j.run(ctx, now)

	j.finishRun(run, result, reportTS, err)
	return err
}

func (j *statusUpdateJob) run(ctx context.Context, now time.Time) (*entity.Reconciliation, string, error) {
	channels := j.cfg.Bot.GroupChannels

	members, err := j.directory.FetchMembers(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch members from directory: %w", err)
	}

	checkpoint, err := j.store.Load()
	switch {
	case errors.Is(err, entity.ErrNoWatermark):
		j.log.Info().Msg("no checkpoint stored yet, reading the most recent messages")
	case err != nil:
		j.log.Warn().Err(err).Msg("checkpoint unavailable, falling back to the most recent messages")
	}

	window := daily.ComplianceWindow(now, j.cfg.Location, j.cfg.Bot.CutoffHour)
	j.log.Info().
		Time("window_start", window.Start).
		Time("window_end", window.End).
		Dur("window_length", window.Duration()).
		Int("members", len(members)).
		Msg("collecting status updates")

	updates, err := j.collector.Collect(ctx, channels, checkpoint, window)
	if err != nil {
		return nil, "", fmt.Errorf("failed to collect updates: %w", err)
	}

	next, err := j.collector.PostMarkers(ctx, channels)
	if err != nil {
		return nil, "", fmt.Errorf("failed to send limiting messages: %w", err)
	}

	result, err := j.reconciler.Reconcile(ctx, members, updates)
	if err != nil {
		return nil, "", fmt.Errorf("failed to reconcile streaks: %w", err)
	}

	report := BuildReport(j.cfg.Bot.Report, result, now, j.cfg.Location)
	reportTS, err := j.chat.PostReport(ctx, j.cfg.Bot.ReportChannel, report)
	if err != nil {
		return result, "", fmt.Errorf("failed to send status update report: %w", err)
	}

	if err := j.store.Save(next); err != nil {
		return result, reportTS, fmt.Errorf("failed to save checkpoint: %w", err)
	}

	j.log.Info().
		Int("updates", len(updates)).
		Int("compliant", result.Compliant).
		Int("missed", len(result.Missed)).
		Str("report_ts", reportTS).
		Msg("status update report published")

	return result, reportTS, nil
}

// startRun records the run in history. History is an audit trail; failing to
// write it never fails the run.
func (j *statusUpdateJob) startRun(now time.Time) *entity.Run {
	run := &entity.Run{
		Task:      StatusUpdateTask,
		Status:    entity.RunStatusRunning,
		StartedAt: now,
	}
	if err := j.dm.Run().Create(run); err != nil {
		j.log.Error().Err(err).Msg("failed to record run start")
		return nil
	}
	return run
}

func (j *statusUpdateJob) finishRun(run *entity.Run, result *entity.Reconciliation, reportTS string, runErr error) {
	if run == nil {
		return
	}

	finishedAt := j.now()
	run.FinishedAt = &finishedAt
	run.ReportTS = reportTS
	run.Status = entity.RunStatusSucceeded
	if runErr != nil {
		run.Status = entity.RunStatusFailed
		run.Error = runErr.Error()
	}
	if result != nil {
		run.Compliant = result.Compliant
		run.Missed = len(result.Missed)
	}

	if err := j.dm.Run().Finish(run); err != nil {
		j.log.Error().Err(err).Int64("run_id", run.ID).Msg("failed to record run result")
	}
}
