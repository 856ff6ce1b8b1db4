package contract

//go:generate mockgen -source=repo.go -destination=../../../mocks/repo_mock.go -package=mocks

import (
	"context"

	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Run() RunRepo
	Checkpoint() CheckpointRepo
}

// RunRepo defines the contract for the run history repository
type RunRepo interface {
	Create(run *entity.Run) error
	Finish(run *entity.Run) error
	GetLatest(task string) (*entity.Run, error)
}

// CheckpointRepo defines the contract for the sqlite checkpoint repository
type CheckpointRepo interface {
	Upsert(cp *entity.ChannelCheckpoint) error
	GetAll() ([]*entity.ChannelCheckpoint, error)
}

// CheckpointStore persists the per-channel watermarks between runs.
// Load returns a checkpoint with one entry per monitored channel even when it
// also returns an error, so callers can fall back to "no watermark".
type CheckpointStore interface {
	Load() (entity.Checkpoint, error)
	Save(cp entity.Checkpoint) error
}
