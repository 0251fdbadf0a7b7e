package sync

import (
	"errors"
	"fmt"
)

var (
	// ErrQueueFull indicates that the outbound queue reached its capacity.
	// The caller must shed load or wait for a sync round.
	ErrQueueFull = errors.New("sync queue is full")

	// ErrNoConnection indicates that sync was attempted while offline
	ErrNoConnection = errors.New("no connection")

	// ErrNoTransport indicates that the manager has no transport to deliver items through
	ErrNoTransport = errors.New("no transport configured")

	// ErrConflictDetected is reserved for a non-CRDT conflict path. Nothing returns it today.
	ErrConflictDetected = errors.New("conflict detected")
)

// QueueFullError is returned by Enqueue when the queue holds Max items.
type QueueFullError struct {
	Max int
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("sync queue is full: %d items", e.Max)
}

// Is reports ErrQueueFull as the sentinel for QueueFullError.
func (e *QueueFullError) Is(target error) bool {
	return target == ErrQueueFull
}
