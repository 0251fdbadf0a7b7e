package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/fleetsync/internal/server/storage"
)

// SaveHubState replaces the encoded hub snapshot and counts a merge for replicaID
func (s *Storage) SaveHubState(ctx context.Context, replicaID string, snapshot []byte, at int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO hub_state (id, snapshot, updated_at)
			VALUES (1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				snapshot   = excluded.snapshot,
				updated_at = excluded.updated_at
		`, snapshot, at)
		if err != nil {
			return fmt.Errorf("failed to save hub state: %w", err)
		}

		if replicaID == "" {
			return nil
		}
		return touchReplica(ctx, tx, replicaID, at, 0, 1)
	})
}

// LoadHubState returns the encoded hub snapshot
func (s *Storage) LoadHubState(ctx context.Context) ([]byte, error) {
	var snapshot []byte

	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM hub_state WHERE id = 1`).Scan(&snapshot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrHubStateNotFound
		}
		return nil, fmt.Errorf("failed to load hub state: %w", err)
	}

	return snapshot, nil
}
