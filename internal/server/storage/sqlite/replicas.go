package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iudanet/fleetsync/internal/models"
)

// touchReplica регистрирует реплику и увеличивает ее счетчики
func touchReplica(ctx context.Context, tx *sql.Tx, replicaID string, at int64, items, merges int) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO replicas (replica_id, first_seen_at, last_seen_at, items_received, merges)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(replica_id) DO UPDATE SET
			last_seen_at   = MAX(last_seen_at, excluded.last_seen_at),
			items_received = items_received + excluded.items_received,
			merges         = merges + excluded.merges
	`, replicaID, at, at, items, merges)
	if err != nil {
		return fmt.Errorf("failed to update replica %s: %w", replicaID, err)
	}
	return nil
}

// ListReplicas returns every known replica ordered by ID
func (s *Storage) ListReplicas(ctx context.Context) ([]*models.ReplicaRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT replica_id, first_seen_at, last_seen_at, items_received, merges
		FROM replicas
		ORDER BY replica_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query replicas: %w", err)
	}
	defer rows.Close()

	var replicas []*models.ReplicaRecord
	for rows.Next() {
		r := &models.ReplicaRecord{}
		if err := rows.Scan(&r.ReplicaID, &r.FirstSeenAt, &r.LastSeenAt, &r.ItemsReceived, &r.Merges); err != nil {
			return nil, fmt.Errorf("failed to scan replica: %w", err)
		}
		replicas = append(replicas, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return replicas, nil
}
