package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/diegoclair/status-update-bot/internal/domain/contract"
	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

type runRepo struct {
	db dbConn
}

func newRunRepo(db dbConn) contract.RunRepo {
	return &runRepo{db: db}
}

func (r *runRepo) Create(run *entity.Run) error {
	query := `
		INSERT INTO task_runs (task, status, started_at)
		VALUES (?, ?, ?)
	`

	result, err := r.db.Exec(query, run.Task, run.Status, run.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	run.ID = id
	return nil
}

func (r *runRepo) Finish(run *entity.Run) error {
	query := `
		UPDATE task_runs SET
			status = ?,
			finished_at = ?,
			error = ?,
			compliant = ?,
			missed = ?,
			report_ts = ?
		WHERE id = ?
	`

	finishedAt := time.Now().UTC()
	if run.FinishedAt != nil {
		finishedAt = run.FinishedAt.UTC()
	}

	result, err := r.db.Exec(query,
		run.Status,
		finishedAt,
		run.Error,
		run.Compliant,
		run.Missed,
		run.ReportTS,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("run %d not found", run.ID)
	}

	run.FinishedAt = &finishedAt
	return nil
}

func (r *runRepo) GetLatest(task string) (*entity.Run, error) {
	run := &entity.Run{}
	query := `
		SELECT id, task, status, started_at, finished_at, error, compliant, missed, report_ts
		FROM task_runs
		WHERE task = ?
		ORDER BY started_at DESC, id DESC
		LIMIT 1
	`

	var finishedAt sql.NullTime
	err := r.db.QueryRow(query, task).Scan(
		&run.ID,
		&run.Task,
		&run.Status,
		&run.StartedAt,
		&finishedAt,
		&run.Error,
		&run.Compliant,
		&run.Missed,
		&run.ReportTS,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}

	return run, nil
}
