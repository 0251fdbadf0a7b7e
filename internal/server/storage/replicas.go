package storage

import (
	"context"

	"github.com/iudanet/fleetsync/internal/models"
)

// ReplicaStorage defines interface for the relay's view of the fleet
type ReplicaStorage interface {
	// ListReplicas returns every replica that pushed an item or a snapshot, ordered by ID
	ListReplicas(ctx context.Context) ([]*models.ReplicaRecord, error)
}
