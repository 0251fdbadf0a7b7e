package storage

import (
	"context"

	"github.com/iudanet/fleetsync/internal/models"
)

//go:generate moq -out queuestorage_mock.go . QueueStorage

// QueueStorage defines interface for persisting outbound sync queue items on client
type QueueStorage interface {
	// SaveItem stores or replaces a queue item by its ID
	SaveItem(ctx context.Context, item *models.SyncQueueItem) error

	// DeleteItem removes a queue item
	// Returns ErrItemNotFound if the item doesn't exist
	DeleteItem(ctx context.Context, id string) error

	// LoadItems returns all stored items in insertion order
	LoadItems(ctx context.Context) ([]*models.SyncQueueItem, error)

	// ClearItems removes all queue items
	ClearItems(ctx context.Context) error
}
