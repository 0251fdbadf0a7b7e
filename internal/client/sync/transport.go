package sync

import (
	"context"

	"github.com/iudanet/fleetsync/internal/models"
)

//go:generate moq -out transport_mock.go . Transport SnapshotExchanger

// Transport delivers one queue item to the outside world.
// A nil error is an acknowledgment: only then the item leaves the queue.
type Transport interface {
	Deliver(ctx context.Context, item models.SyncQueueItem) error
}

// TransportFunc adapts a plain function to Transport.
type TransportFunc func(ctx context.Context, item models.SyncQueueItem) error

// Deliver calls f(ctx, item).
func (f TransportFunc) Deliver(ctx context.Context, item models.SyncQueueItem) error {
	return f(ctx, item)
}

// SnapshotExchanger is implemented by transports that can trade replica
// snapshots with a peer. The returned snapshot is merged into the local state.
type SnapshotExchanger interface {
	Exchange(ctx context.Context, snap *models.ReplicaSnapshot) (*models.ReplicaSnapshot, error)
}
