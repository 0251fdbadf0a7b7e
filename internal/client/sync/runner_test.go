package sync

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fleetsync/internal/models"
)

func TestRunner_Step_Offline(t *testing.T) {
	m := newTestManager(t, "replica-1", WithTransport(acceptingTransport(nil)))
	r := NewRunner(m, time.Millisecond, time.Millisecond, time.Millisecond, discardLogger())

	retried, err := r.Step(context.Background(), r.newBackoff())
	require.NoError(t, err)
	assert.False(t, retried)
}

func TestRunner_Step_RetriesFailedItems(t *testing.T) {
	ctx := context.Background()

	fail := true
	transport := TransportFunc(func(ctx context.Context, item models.SyncQueueItem) error {
		if fail {
			return errTransport
		}
		return nil
	})

	m := newTestManager(t, "replica-1", WithTransport(transport))
	m.SetConnected(true)
	_, err := m.Enqueue(ctx, models.OpMeasurementUpload, nil)
	require.NoError(t, err)

	r := NewRunner(m, time.Hour, time.Millisecond, 5*time.Millisecond, discardLogger())
	backoff := r.newBackoff()

	// Первый раунд: доставка не удалась, элемент возвращен в Pending после паузы
	retried, err := r.Step(ctx, backoff)
	require.NoError(t, err)
	assert.True(t, retried)
	require.Equal(t, 1, m.PendingCount())
	assert.Equal(t, uint32(1), m.Items()[0].RetryCount)

	// Второй раунд: транспорт снова доступен
	fail = false
	retried, err = r.Step(ctx, backoff)
	require.NoError(t, err)
	assert.False(t, retried)
	assert.Equal(t, 0, m.QueueSize())
}

func TestRunner_Step_CancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := newTestManager(t, "replica-1", WithTransport(failingTransport()))
	m.SetConnected(true)
	_, err := m.Enqueue(ctx, models.OpMeasurementUpload, nil)
	require.NoError(t, err)

	r := NewRunner(m, time.Hour, time.Hour, time.Hour, discardLogger())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err = r.Step(ctx, retry.NewConstant(time.Hour))
	assert.ErrorIs(t, err, context.Canceled)

	// Элемент остался в Error и не потерян
	require.Equal(t, 1, m.RetryableCount())
}

func TestRunner_Run_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	delivered := make(chan struct{}, 1)
	transport := TransportFunc(func(ctx context.Context, item models.SyncQueueItem) error {
		select {
		case delivered <- struct{}{}:
		default:
		}
		return nil
	})

	m := newTestManager(t, "replica-1", WithTransport(transport))
	m.SetConnected(true)
	_, err := m.Enqueue(ctx, models.OpSettingsSync, nil)
	require.NoError(t, err)

	r := NewRunner(m, time.Millisecond, time.Millisecond, time.Millisecond, discardLogger())

	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx)
	}()

	select {
	case <-delivered:
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not deliver the queued item")
	}

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop after cancel")
	}
	assert.Equal(t, 0, m.QueueSize())
}
