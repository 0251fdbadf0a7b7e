package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/fleetsync/internal/models"
	"github.com/iudanet/fleetsync/internal/server/storage"
)

// SaveItem stores a new item, idempotent by item ID
func (s *Storage) SaveItem(ctx context.Context, item *models.RelayItem) (bool, error) {
	if item == nil || item.ID == "" {
		return false, fmt.Errorf("item must have an id")
	}
	if !item.Operation.Valid() {
		return false, fmt.Errorf("invalid sync operation: %s", item.Operation)
	}

	duplicate := false

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO sync_items (id, origin, operation, payload, created_at, received_at, retry_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`,
			item.ID,
			item.Origin,
			item.Operation.String(),
			item.Payload,
			item.CreatedAt,
			item.ReceivedAt,
			item.RetryCount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}

		if affected == 0 {
			// Элемент уже принят ранее: возвращаем время первого приема
			duplicate = true
			if err := tx.QueryRowContext(ctx,
				`SELECT received_at FROM sync_items WHERE id = ?`, item.ID,
			).Scan(&item.ReceivedAt); err != nil {
				return fmt.Errorf("failed to read existing item: %w", err)
			}
			return nil
		}

		return touchReplica(ctx, tx, item.Origin, item.ReceivedAt, 1, 0)
	})

	if err != nil {
		return false, err
	}

	return duplicate, nil
}

// GetItem retrieves an item by ID
func (s *Storage) GetItem(ctx context.Context, id string) (*models.RelayItem, error) {
	item := &models.RelayItem{}
	var operation string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, origin, operation, payload, created_at, received_at, retry_count
		FROM sync_items
		WHERE id = ?
	`, id).Scan(
		&item.ID,
		&item.Origin,
		&operation,
		&item.Payload,
		&item.CreatedAt,
		&item.ReceivedAt,
		&item.RetryCount,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	item.Operation, err = models.ParseSyncOperation(operation)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored item %s: %w", id, err)
	}

	return item, nil
}

// CountItemsByOperation returns the number of stored items per operation
func (s *Storage) CountItemsByOperation(ctx context.Context) (map[models.SyncOperation]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT operation, COUNT(*)
		FROM sync_items
		GROUP BY operation
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.SyncOperation]int)
	for rows.Next() {
		var (
			name  string
			count int
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("failed to scan item count: %w", err)
		}

		op, err := models.ParseSyncOperation(name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored operation: %w", err)
		}
		counts[op] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return counts, nil
}
