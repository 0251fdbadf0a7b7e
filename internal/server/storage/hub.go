package storage

import "context"

// HubStateStorage defines interface for persisting the merged state of the hub replica
type HubStateStorage interface {
	// SaveHubState replaces the encoded hub snapshot and counts a merge for replicaID
	SaveHubState(ctx context.Context, replicaID string, snapshot []byte, at int64) error

	// LoadHubState returns the encoded hub snapshot
	// Returns ErrHubStateNotFound if nothing has been merged yet
	LoadHubState(ctx context.Context) ([]byte, error)
}
