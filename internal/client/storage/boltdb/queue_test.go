package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fleetsync/internal/client/storage"
	"github.com/iudanet/fleetsync/internal/models"
)

func testItem(id string, createdAt int64) *models.SyncQueueItem {
	return &models.SyncQueueItem{
		ID:        id,
		Origin:    "replica-1",
		Payload:   []byte("payload-" + id),
		CreatedAt: createdAt,
		Operation: models.OpMeasurementUpload,
		State:     models.StatePending,
	}
}

func TestSaveItem_LoadItems(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Сохраняем в произвольном порядке
	require.NoError(t, store.SaveItem(ctx, testItem("c", 300)))
	require.NoError(t, store.SaveItem(ctx, testItem("a", 100)))
	require.NoError(t, store.SaveItem(ctx, testItem("b", 100)))

	items, err := store.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Порядок по CreatedAt, затем по ID
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
	assert.Equal(t, []byte("payload-a"), items[0].Payload)
	assert.Equal(t, models.OpMeasurementUpload, items[0].Operation)
}

func TestSaveItem_Replace(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	item := testItem("a", 100)
	require.NoError(t, store.SaveItem(ctx, item))

	item.State = models.StateError
	item.RetryCount = 2
	require.NoError(t, store.SaveItem(ctx, item))

	items, err := store.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.StateError, items[0].State)
	assert.Equal(t, uint32(2), items[0].RetryCount)
}

func TestSaveItem_Invalid(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	assert.Error(t, store.SaveItem(ctx, nil))
	assert.Error(t, store.SaveItem(ctx, &models.SyncQueueItem{}))

	// Невалидная операция не сериализуется
	bad := testItem("bad", 1)
	bad.Operation = 0
	assert.Error(t, store.SaveItem(ctx, bad))
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveItem(ctx, testItem("a", 100)))
	require.NoError(t, store.DeleteItem(ctx, "a"))

	items, err := store.LoadItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = store.DeleteItem(ctx, "a")
	assert.ErrorIs(t, err, storage.ErrItemNotFound)
}

func TestClearItems(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.SaveItem(ctx, testItem(id, 1)))
	}

	require.NoError(t, store.ClearItems(ctx))

	items, err := store.LoadItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Очередь продолжает работать после очистки
	require.NoError(t, store.SaveItem(ctx, testItem("d", 2)))
	items, err = store.LoadItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
