package storage

import (
	"context"

	"github.com/iudanet/fleetsync/internal/models"
)

// ItemStorage defines interface for persisting items pushed by replicas
type ItemStorage interface {
	// SaveItem stores a new item and counts it for its origin replica.
	// Saving is idempotent by item ID: for an already stored item it returns
	// duplicate=true and sets item.ReceivedAt to the time of the first receipt.
	SaveItem(ctx context.Context, item *models.RelayItem) (duplicate bool, err error)

	// GetItem retrieves an item by ID
	// Returns ErrItemNotFound if item doesn't exist
	GetItem(ctx context.Context, id string) (*models.RelayItem, error)

	// CountItemsByOperation returns the number of stored items per operation
	CountItemsByOperation(ctx context.Context) (map[models.SyncOperation]int, error)
}
