package database

import (
	"context"
	"fmt"

	"github.com/diegoclair/status-update-bot/internal/domain/contract"
	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

type checkpointStore struct {
	dm       contract.DataManager
	channels []string
}

// NewCheckpointStore returns a CheckpointStore backed by the
// channel_checkpoints table. A stored row only counts when it was written for
// the channel currently configured at the same position.
func NewCheckpointStore(dm contract.DataManager, channels []string) contract.CheckpointStore {
	return &checkpointStore{dm: dm, channels: channels}
}

func (s *checkpointStore) Load() (entity.Checkpoint, error) {
	cp := entity.NewCheckpoint(len(s.channels))

	rows, err := s.dm.Checkpoint().GetAll()
	if err != nil {
		return cp, err
	}
	if len(rows) == 0 {
		return cp, entity.ErrNoWatermark
	}

	for _, row := range rows {
		if row.Position < 0 || row.Position >= len(s.channels) {
			continue
		}
		if row.ChannelID != s.channels[row.Position] {
			continue
		}
		cp[row.Position] = row.Watermark
	}

	return cp, nil
}

func (s *checkpointStore) Save(cp entity.Checkpoint) error {
	if len(cp) != len(s.channels) {
		return fmt.Errorf("checkpoint has %d entries, want %d", len(cp), len(s.channels))
	}

	return s.dm.WithTransaction(context.Background(), func(tx contract.DataManager) error {
		for i, watermark := range cp {
			row := &entity.ChannelCheckpoint{
				Position:  i,
				ChannelID: s.channels[i],
				Watermark: watermark,
			}
			if err := tx.Checkpoint().Upsert(row); err != nil {
				return fmt.Errorf("failed to save checkpoint for channel %s: %w", s.channels[i], err)
			}
		}
		return nil
	})
}
