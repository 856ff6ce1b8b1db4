package service

import (
	"github.com/rs/zerolog"

	"github.com/diegoclair/status-update-bot/internal/config"
	"github.com/diegoclair/status-update-bot/internal/domain/contract"
)

type Instance struct {
	StatusUpdate *statusUpdateJob
}

func NewInstance(
	cfg *config.Config,
	dm contract.DataManager,
	chat contract.ChatClient,
	directory contract.DirectoryClient,
	store contract.CheckpointStore,
	log zerolog.Logger,
) *Instance {
	return &Instance{
		StatusUpdate: newStatusUpdateJob(cfg, dm, chat, directory, store, log),
	}
}

// Tasks is the fixed registry of recurring jobs handed to the scheduler.
func (i *Instance) Tasks() []contract.Task {
	return []contract.Task{i.StatusUpdate}
}
