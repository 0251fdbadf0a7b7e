package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/fleetsync/internal/client/storage"
)

func TestSaveAndGetLastSyncTimestamp(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Изначально, если timestamp не сохранён, ожидаем 0
	ts, err := store.GetLastSyncTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ts)

	var expectedTS int64 = 1234567890
	require.NoError(t, store.SaveLastSyncTimestamp(ctx, expectedTS))

	gotTS, err := store.GetLastSyncTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, expectedTS, gotTS)
}

func TestReplicaID(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.GetReplicaID(ctx)
	assert.ErrorIs(t, err, storage.ErrReplicaIDNotFound)

	assert.Error(t, store.SaveReplicaID(ctx, ""))

	require.NoError(t, store.SaveReplicaID(ctx, "0192d4e0-replica"))
	id, err := store.GetReplicaID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0192d4e0-replica", id)
}

func TestMetadata_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Удаляем bucket metadata напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketMetadata)
	})
	require.NoError(t, err)

	_, err = store.GetLastSyncTimestamp(ctx)
	assert.ErrorContains(t, err, "metadata bucket not found")

	err = store.SaveLastSyncTimestamp(ctx, 42)
	assert.ErrorContains(t, err, "metadata bucket not found")

	_, err = store.GetReplicaID(ctx)
	assert.ErrorContains(t, err, "metadata bucket not found")
}
