package contract

//go:generate mockgen -source=service.go -destination=../../../mocks/service_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

// Task is a named unit of recurring work. Next returns the first instant
// strictly after now at which the task should run.
type Task interface {
	Name() string
	Next(now time.Time) time.Time
	Run(ctx context.Context) error
}

// StatusService exposes the status-update job to the slash command handler.
type StatusService interface {
	LastRun() (*entity.Run, error)
	NextRun(now time.Time) time.Time
}
