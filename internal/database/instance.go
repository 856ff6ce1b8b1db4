package database

import (
	"context"
	"fmt"

	"github.com/diegoclair/status-update-bot/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db             *DB
	runRepo        contract.RunRepo
	checkpointRepo contract.CheckpointRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	instance := &instance{
		db: db,
	}
	instance.repoInstances()
	return instance
}

// repoInstances initializes all repositories
func (i *instance) repoInstances() {
	i.runRepo = newRunRepo(i.db.conn)
	i.checkpointRepo = newCheckpointRepo(i.db.conn)
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(db dbConn) *instance {
	return &instance{
		runRepo:        newRunRepo(db),
		checkpointRepo: newCheckpointRepo(db),
	}
}

// Run returns the run history repository
func (i *instance) Run() contract.RunRepo {
	return i.runRepo
}

// Checkpoint returns the checkpoint repository
func (i *instance) Checkpoint() contract.CheckpointRepo {
	return i.checkpointRepo
}

// WithTransaction executes a function within a database transaction
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	tx, err := i.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
