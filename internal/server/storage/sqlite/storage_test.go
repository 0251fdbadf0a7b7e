package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	// Используем in-memory database для тестов
	storage, err := New(context.Background(), ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = storage.Close()
	})

	return storage
}

func TestNew_RunsMigrations(t *testing.T) {
	s := setupTestStorage(t)

	for _, table := range []string{"sync_items", "replicas", "hub_state"} {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	require.NoError(t, s.Ping(context.Background()))
}

func TestNew_File_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "relay.db")

	s, err := New(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.SaveHubState(ctx, "replica-1", []byte{1}, 10))
	require.NoError(t, s.Close())

	// Повторные миграции не ломают существующую базу
	s, err = New(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	state, err := s.LoadHubState(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, state)
}
