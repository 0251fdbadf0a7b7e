package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gosync "sync"

	"github.com/google/uuid"

	"github.com/iudanet/fleetsync/internal/client/storage"
	"github.com/iudanet/fleetsync/internal/crdt"
	"github.com/iudanet/fleetsync/internal/models"
)

const (
	// MaxQueueSize is the capacity of the outbound queue
	MaxQueueSize = 10000

	// MaxRetries is the number of RetryFailed calls an item survives before it stays in Error for good
	MaxRetries = 5
)

// SyncResult contains the outcome of one drain of the queue
type SyncResult struct {
	Synced    int `json:"synced"`    // количество доставленных и удаленных элементов
	Failed    int `json:"failed"`    // количество элементов, завершившихся ошибкой (включая исчерпавшие попытки)
	Remaining int `json:"remaining"` // количество элементов, оставшихся в очереди после очистки
}

// Queue is the bounded, persisted list of outbound items.
// Every state change is written to storage before it becomes visible,
// and an item leaves storage only after the transport acknowledged it.
//
// Queue is safe for concurrent use. Delivery happens outside the lock,
// so Enqueue is not blocked by a slow transport.
type Queue struct {
	store  storage.QueueStorage
	clock  crdt.Clock
	logger *slog.Logger
	origin string

	items []*models.SyncQueueItem
	mu    gosync.Mutex

	// syncMu сериализует проходы Sync
	syncMu gosync.Mutex
}

// NewQueue creates an empty queue whose items originate from origin.
// Call Load to restore items persisted by a previous run.
func NewQueue(store storage.QueueStorage, origin string, clock crdt.Clock, logger *slog.Logger) *Queue {
	if clock == nil {
		clock = crdt.WallClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		store:  store,
		clock:  clock,
		logger: logger,
		origin: origin,
	}
}

// exhausted reports whether the item used up its retries
func exhausted(item *models.SyncQueueItem) bool {
	return item.RetryCount >= MaxRetries
}

// Load replaces the in-memory queue with the items from storage.
// Items caught in Syncing by a crash go back to Pending without charging a retry.
func (q *Queue) Load(ctx context.Context) error {
	items, err := q.store.LoadItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to load queue: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	loaded := make([]*models.SyncQueueItem, 0, len(items))
	for _, item := range items {
		switch item.State {
		case models.StateSyncing:
			// Доставка не была подтверждена до падения, отправим повторно
			item.State = models.StatePending
			if err := q.store.SaveItem(ctx, item); err != nil {
				return fmt.Errorf("failed to recover item %s: %w", item.ID, err)
			}
			q.logger.Info("Recovered in-flight queue item", "item_id", item.ID, "operation", item.Operation)
		case models.StateSynced:
			// Подтвержден, но не удален из хранилища
			if err := q.store.DeleteItem(ctx, item.ID); err != nil && !errors.Is(err, storage.ErrItemNotFound) {
				return fmt.Errorf("failed to prune synced item %s: %w", item.ID, err)
			}
			continue
		case models.StatePending, models.StateError:
		default:
			return fmt.Errorf("item %s has unknown state %s", item.ID, item.State)
		}
		loaded = append(loaded, item)
	}

	if len(loaded) > MaxQueueSize {
		q.logger.Warn("Persisted queue exceeds capacity", "items", len(loaded), "max", MaxQueueSize)
	}

	q.items = loaded
	return nil
}

// Enqueue persists and appends a new Pending item and returns its id.
// It fails with *QueueFullError when the queue holds MaxQueueSize items.
func (q *Queue) Enqueue(ctx context.Context, op models.SyncOperation, payload []byte) (string, error) {
	if !op.Valid() {
		return "", fmt.Errorf("invalid sync operation: %s", op)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) >= MaxQueueSize {
		return "", &QueueFullError{Max: MaxQueueSize}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate item id: %w", err)
	}

	data := make([]byte, len(payload))
	copy(data, payload)

	item := &models.SyncQueueItem{
		ID:        id.String(),
		Origin:    q.origin,
		Payload:   data,
		CreatedAt: q.clock.NowMillis(),
		Operation: op,
		State:     models.StatePending,
	}

	// Сначала сохраняем, потом добавляем в память
	if err := q.store.SaveItem(ctx, item); err != nil {
		return "", fmt.Errorf("failed to persist queue item: %w", err)
	}

	q.items = append(q.items, item)
	return item.ID, nil
}

// Sync drains the queue through transport in insertion order.
//
// Pending and Error items are delivered one by one; an acknowledged item is
// removed, a failed one moves to Error. Redelivering an Error item does not
// charge a retry, only RetryFailed does. Items that used up their retries are
// counted as failed on every pass. On context cancellation the drain stops
// and the in-flight item returns to Pending.
func (q *Queue) Sync(ctx context.Context, transport Transport) (SyncResult, error) {
	q.syncMu.Lock()
	defer q.syncMu.Unlock()

	var result SyncResult

	for _, id := range q.candidates() {
		if err := ctx.Err(); err != nil {
			result.Remaining = q.prune()
			return result, fmt.Errorf("sync interrupted: %w", err)
		}

		delivery, failed, err := q.claim(ctx, id)
		if err != nil {
			result.Remaining = q.prune()
			return result, err
		}
		if failed {
			result.Failed++
			continue
		}
		if delivery == nil {
			// элемент удален или изменен во время прохода
			continue
		}

		deliverErr := transport.Deliver(ctx, *delivery)

		switch {
		case deliverErr == nil:
			q.acknowledge(ctx, id)
			result.Synced++
		case ctx.Err() != nil:
			if err := q.release(ctx, id); err != nil {
				result.Remaining = q.prune()
				return result, err
			}
			result.Remaining = q.prune()
			return result, fmt.Errorf("sync interrupted: %w", ctx.Err())
		default:
			q.logger.Warn("Failed to deliver queue item",
				"item_id", id,
				"operation", delivery.Operation,
				"retry_count", delivery.RetryCount,
				"error", deliverErr)
			if err := q.fail(ctx, id); err != nil {
				result.Remaining = q.prune()
				return result, err
			}
			result.Failed++
		}
	}

	result.Remaining = q.prune()
	return result, nil
}

// candidates возвращает ID элементов, которые участвуют в проходе Sync
func (q *Queue) candidates() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids := make([]string, 0, len(q.items))
	for _, item := range q.items {
		if item.State == models.StatePending || item.State == models.StateError {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// claim переводит элемент в Syncing и сохраняет его до передачи транспорту.
// Возвращает копию для доставки, либо failed=true для исчерпавшего попытки элемента.
func (q *Queue) claim(ctx context.Context, id string) (*models.SyncQueueItem, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	item := q.find(id)
	if item == nil {
		return nil, false, nil
	}

	if exhausted(item) {
		if prev := item.State; prev != models.StateError {
			item.State = models.StateError
			if err := q.store.SaveItem(ctx, item); err != nil {
				item.State = prev
				return nil, false, fmt.Errorf("failed to persist exhausted item %s: %w", id, err)
			}
			q.logger.Warn("Queue item exhausted its retries", "item_id", id, "operation", item.Operation)
		}
		return nil, true, nil
	}

	prev := item.State
	if prev != models.StatePending && prev != models.StateError {
		return nil, false, nil
	}

	item.State = models.StateSyncing
	if err := q.store.SaveItem(ctx, item); err != nil {
		item.State = prev
		return nil, false, fmt.Errorf("failed to persist item %s before delivery: %w", id, err)
	}

	return item.Clone(), false, nil
}

// acknowledge отмечает элемент доставленным и удаляет его из хранилища
func (q *Queue) acknowledge(ctx context.Context, id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	item := q.find(id)
	if item == nil {
		return
	}
	item.State = models.StateSynced

	if err := q.store.DeleteItem(ctx, id); err != nil && !errors.Is(err, storage.ErrItemNotFound) {
		// Элемент останется в хранилище в Syncing и будет доставлен повторно после Load.
		// Повтор безопасен: слияния идемпотентны.
		q.logger.Warn("Failed to delete acknowledged item", "item_id", id, "error", err)
	}
}

// fail переводит элемент в Error
func (q *Queue) fail(ctx context.Context, id string) error {
	return q.setState(ctx, id, models.StateError)
}

// release возвращает элемент в Pending без списания попытки
func (q *Queue) release(ctx context.Context, id string) error {
	// исходный контекст уже отменен, сохраняем без него
	return q.setState(context.WithoutCancel(ctx), id, models.StatePending)
}

func (q *Queue) setState(ctx context.Context, id string, state models.SyncState) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	item := q.find(id)
	if item == nil {
		return nil
	}

	item.State = state
	if err := q.store.SaveItem(ctx, item); err != nil {
		return fmt.Errorf("failed to persist item %s as %s: %w", id, state, err)
	}
	return nil
}

// prune удаляет Synced элементы из памяти и возвращает длину очереди
func (q *Queue) prune() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	for _, item := range q.items {
		if item.State != models.StateSynced {
			kept = append(kept, item)
		}
	}
	// обнуляем хвост, чтобы не держать ссылки
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = kept
	return len(q.items)
}

func (q *Queue) find(id string) *models.SyncQueueItem {
	for _, item := range q.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// RetryFailed moves every Error item with retries left back to Pending and
// increments its retry count. It returns the number of items moved.
func (q *Queue) RetryFailed(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	moved := 0
	for _, item := range q.items {
		if item.State != models.StateError || exhausted(item) {
			continue
		}

		item.State = models.StatePending
		item.RetryCount++
		if err := q.store.SaveItem(ctx, item); err != nil {
			item.State = models.StateError
			item.RetryCount--
			return moved, fmt.Errorf("failed to persist retried item %s: %w", item.ID, err)
		}
		moved++
	}

	return moved, nil
}

// Clear drops every item from the queue and from storage
func (q *Queue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.store.ClearItems(ctx); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	q.items = nil
	return nil
}

// Len returns the number of items in the queue
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

// PendingCount returns the number of items waiting for delivery
func (q *Queue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, item := range q.items {
		if item.State == models.StatePending {
			n++
		}
	}
	return n
}

// RetryableCount returns the number of Error items that RetryFailed would move
func (q *Queue) RetryableCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, item := range q.items {
		if item.State == models.StateError && !exhausted(item) {
			n++
		}
	}
	return n
}

// Items returns copies of all items in insertion order
func (q *Queue) Items() []models.SyncQueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.SyncQueueItem, 0, len(q.items))
	for _, item := range q.items {
		out = append(out, *item.Clone())
	}
	return out
}

// FailedItems returns copies of the items that exhausted their retries
func (q *Queue) FailedItems() []models.SyncQueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []models.SyncQueueItem
	for _, item := range q.items {
		if item.State == models.StateError && exhausted(item) {
			out = append(out, *item.Clone())
		}
	}
	return out
}
