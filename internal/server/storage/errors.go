package storage

import "errors"

// Common storage errors
var (
	// ErrItemNotFound indicates that a sync item was not found in storage
	ErrItemNotFound = errors.New("sync item not found")

	// ErrHubStateNotFound indicates that the hub has not merged any snapshot yet
	ErrHubStateNotFound = errors.New("hub state not found")
)
