package contract

//go:generate mockgen -source=slack.go -destination=../../../mocks/slack_mock.go -package=mocks

import (
	"context"

	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

// ChatClient defines the chat platform operations the status-update job needs.
// This allows mocking in tests while keeping the Slack implementation simple
type ChatClient interface {
	// History returns one page of channel history.
	History(ctx context.Context, query entity.HistoryQuery) (*entity.HistoryPage, error)

	// PostText sends a plain message and returns its message id.
	PostText(ctx context.Context, channelID, text string) (string, error)

	// PostReport sends a rendered report and returns its message id.
	PostReport(ctx context.Context, channelID string, report *entity.Report) (string, error)
}
