package contract

//go:generate mockgen -source=directory.go -destination=../../../mocks/directory_mock.go -package=mocks

import (
	"context"

	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

// DirectoryClient is the member directory service. The streak returned by a
// mutation is authoritative.
type DirectoryClient interface {
	FetchMembers(ctx context.Context) ([]entity.Member, error)
	IncrementStreak(ctx context.Context, memberID int) (entity.Streak, error)
	ResetStreak(ctx context.Context, memberID int) (entity.Streak, error)
}
