package storage

import (
	"context"

	"github.com/iudanet/fleetsync/internal/models"
)

//go:generate moq -out statestorage_mock.go . StateStorage

// StateStorage defines interface for persisting the replicated state of the local replica
type StateStorage interface {
	// SaveSnapshot stores the latest snapshot, replacing the previous one
	SaveSnapshot(ctx context.Context, snap *models.ReplicaSnapshot) error

	// LoadSnapshot returns the latest snapshot
	// Returns ErrSnapshotNotFound if nothing has been saved yet
	LoadSnapshot(ctx context.Context) (*models.ReplicaSnapshot, error)
}
