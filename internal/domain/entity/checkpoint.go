package entity

import (
	"errors"
	"time"
)

// ErrNoWatermark is returned by a checkpoint store that holds nothing yet.
var ErrNoWatermark = errors.New("no checkpoint stored")

// Checkpoint holds the last processed message id for every monitored
// channel, aligned by position with the configured channel list.
// An empty entry means the channel has no watermark.
type Checkpoint []string

// NewCheckpoint returns a checkpoint with no watermark for any of n channels.
func NewCheckpoint(n int) Checkpoint {
	return make(Checkpoint, n)
}

// Watermark returns the watermark at position i, or "" when there is none.
func (c Checkpoint) Watermark(i int) string {
	if i < 0 || i >= len(c) {
		return ""
	}
	return c[i]
}

// ChannelCheckpoint is one stored watermark row.
type ChannelCheckpoint struct {
	Position  int
	ChannelID string
	Watermark string
	UpdatedAt time.Time
}
