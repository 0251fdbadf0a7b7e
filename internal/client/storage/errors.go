package storage

import "errors"

// Common client storage errors
var (
	// ErrItemNotFound indicates that a queue item was not found
	ErrItemNotFound = errors.New("queue item not found")

	// ErrSnapshotNotFound indicates that no replica snapshot has been saved yet
	ErrSnapshotNotFound = errors.New("replica snapshot not found")

	// ErrReplicaIDNotFound indicates that the replica identity has not been created yet
	ErrReplicaIDNotFound = errors.New("replica id not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
