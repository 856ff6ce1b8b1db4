package database

import (
	"fmt"
	"time"

	"github.com/diegoclair/status-update-bot/internal/domain/contract"
	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

type checkpointRepo struct {
	db dbConn
}

func newCheckpointRepo(db dbConn) contract.CheckpointRepo {
	return &checkpointRepo{db: db}
}

func (r *checkpointRepo) Upsert(cp *entity.ChannelCheckpoint) error {
	query := `
		INSERT INTO channel_checkpoints (position, channel_id, watermark, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(position) DO UPDATE SET
			channel_id = excluded.channel_id,
			watermark = excluded.watermark,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC()
	_, err := r.db.Exec(query, cp.Position, cp.ChannelID, cp.Watermark, now)
	if err != nil {
		return fmt.Errorf("failed to upsert checkpoint: %w", err)
	}

	cp.UpdatedAt = now
	return nil
}

func (r *checkpointRepo) GetAll() ([]*entity.ChannelCheckpoint, error) {
	query := `
		SELECT position, channel_id, watermark, updated_at
		FROM channel_checkpoints
		ORDER BY position
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkpoints: %w", err)
	}
	defer rows.Close()

	var checkpoints []*entity.ChannelCheckpoint
	for rows.Next() {
		cp := &entity.ChannelCheckpoint{}
		if err := rows.Scan(&cp.Position, &cp.ChannelID, &cp.Watermark, &cp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint: %w", err)
		}
		checkpoints = append(checkpoints, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checkpoints: %w", err)
	}

	return checkpoints, nil
}
