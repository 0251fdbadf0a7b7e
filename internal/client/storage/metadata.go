package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveReplicaID stores the identity of this replica. It is written once at first run.
	SaveReplicaID(ctx context.Context, replicaID string) error

	// GetReplicaID retrieves the identity of this replica
	// Returns ErrReplicaIDNotFound if no identity has been created yet
	GetReplicaID(ctx context.Context) (string, error)

	// SaveLastSyncTimestamp saves the time (ms) of the last successful sync
	SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error

	// GetLastSyncTimestamp retrieves the time (ms) of the last successful sync
	// Returns 0 if no sync has been performed yet
	GetLastSyncTimestamp(ctx context.Context) (int64, error)
}
