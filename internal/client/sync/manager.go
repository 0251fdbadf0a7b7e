package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gosync "sync"

	"github.com/google/uuid"

	"github.com/iudanet/fleetsync/internal/client/storage"
	"github.com/iudanet/fleetsync/internal/codec"
	"github.com/iudanet/fleetsync/internal/crdt"
	"github.com/iudanet/fleetsync/internal/models"
)

// Store is the local persistence a manager restores itself from
type Store interface {
	storage.QueueStorage
	storage.StateStorage
	storage.MetadataStorage
}

// Manager is the single entry point of a replica. It owns the outbound queue,
// the replicated measurement counter, the paired device set and the settings
// register, together with the replica identity and the connectivity flag.
//
// All methods are safe for concurrent use.
type Manager struct {
	transport Transport
	state     storage.StateStorage
	meta      storage.MetadataStorage
	clock     crdt.Clock
	logger    *slog.Logger
	queue     *Queue

	measurements *crdt.GrowCounter
	devices      *crdt.ORSet
	settings     *crdt.LWWRegister[models.Settings]

	replicaID string
	connected bool

	mu gosync.Mutex
}

// Option configures a Manager
type Option func(*Manager)

// WithTransport sets the collaborator used by Sync
func WithTransport(t Transport) Option {
	return func(m *Manager) {
		m.transport = t
	}
}

// WithStateStorage makes the manager persist its replicated state after every change
func WithStateStorage(s storage.StateStorage) Option {
	return func(m *Manager) {
		m.state = s
	}
}

// WithMetadataStorage makes the manager record the time of successful syncs
func WithMetadataStorage(s storage.MetadataStorage) Option {
	return func(m *Manager) {
		m.meta = s
	}
}

// WithClock sets the clock used for settings writes, item timestamps and snapshots
func WithClock(c crdt.Clock) Option {
	return func(m *Manager) {
		m.clock = c
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates a manager for replicaID with an empty state.
// The manager starts disconnected.
func NewManager(replicaID string, queueStore storage.QueueStorage, opts ...Option) *Manager {
	m := &Manager{
		replicaID:    replicaID,
		clock:        crdt.WallClock{},
		logger:       slog.Default(),
		measurements: crdt.NewGrowCounter(),
		devices:      crdt.NewORSet(),
		// Настройки по умолчанию проигрывают любой реальной записи
		settings: crdt.NewLWWRegisterAt(models.DefaultSettings(), "", 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.queue = NewQueue(queueStore, replicaID, m.clock, m.logger)
	return m
}

// Open restores a manager from local storage: the replica id is created once
// and reused afterwards, the queue and the replicated state are loaded back.
func Open(ctx context.Context, store Store, transport Transport, logger *slog.Logger, opts ...Option) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}

	replicaID, err := store.GetReplicaID(ctx)
	if errors.Is(err, storage.ErrReplicaIDNotFound) {
		replicaID = uuid.New().String()
		if err := store.SaveReplicaID(ctx, replicaID); err != nil {
			return nil, fmt.Errorf("failed to save replica id: %w", err)
		}
		logger.Info("Created replica identity", "replica_id", replicaID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get replica id: %w", err)
	}

	opts = append([]Option{
		WithTransport(transport),
		WithStateStorage(store),
		WithMetadataStorage(store),
		WithLogger(logger),
	}, opts...)
	m := NewManager(replicaID, store, opts...)

	if err := m.queue.Load(ctx); err != nil {
		return nil, err
	}

	snap, err := store.LoadSnapshot(ctx)
	switch {
	case errors.Is(err, storage.ErrSnapshotNotFound):
		// первый запуск
	case err != nil:
		return nil, fmt.Errorf("failed to load replica state: %w", err)
	default:
		m.mu.Lock()
		m.mergeSnapshotLocked(snap)
		m.mu.Unlock()
	}

	logger.Debug("Replica opened",
		"replica_id", replicaID,
		"queue_size", m.queue.Len(),
		"devices", m.devices.Len(),
		"measurements", m.measurements.Value())

	return m, nil
}

// ReplicaID returns the identity of this replica
func (m *Manager) ReplicaID() string {
	return m.replicaID
}

// SetTransport replaces the collaborator used by Sync.
// The HTTP transport needs the replica id, which is only known after Open.
func (m *Manager) SetTransport(t Transport) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.transport = t
}

// SetConnected toggles the connectivity flag
func (m *Manager) SetConnected(connected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected != connected {
		m.logger.Info("Connectivity changed", "connected", connected)
	}
	m.connected = connected
}

// IsConnected reports the connectivity flag
func (m *Manager) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.connected
}

// Enqueue adds an outbound item and returns its id
func (m *Manager) Enqueue(ctx context.Context, op models.SyncOperation, payload []byte) (string, error) {
	return m.queue.Enqueue(ctx, op, payload)
}

// EnqueueSnapshot encodes the current replicated state and enqueues it as a CrdtMerge item
func (m *Manager) EnqueueSnapshot(ctx context.Context) (string, error) {
	payload, err := codec.EncodeSnapshot(m.Snapshot())
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return m.queue.Enqueue(ctx, models.OpCrdtMerge, payload)
}

// Sync drains the queue through the transport. It fails with ErrNoConnection
// while offline. After a clean drain, a transport that implements
// SnapshotExchanger trades snapshots with its peer and the peer state is merged.
func (m *Manager) Sync(ctx context.Context) (SyncResult, error) {
	m.mu.Lock()
	connected, transport := m.connected, m.transport
	m.mu.Unlock()

	if !connected {
		return SyncResult{}, ErrNoConnection
	}
	if transport == nil {
		return SyncResult{}, ErrNoTransport
	}

	m.logger.Info("Starting synchronization", "replica_id", m.replicaID, "queue_size", m.queue.Len())

	result, err := m.queue.Sync(ctx, transport)
	if err != nil {
		return result, fmt.Errorf("failed to sync queue: %w", err)
	}

	merged := false
	if exchanger, ok := transport.(SnapshotExchanger); ok {
		peer, err := exchanger.Exchange(ctx, m.Snapshot())
		if err != nil {
			// Очередь уже доставлена, обмен состояниями повторится в следующий раз
			m.logger.Warn("Failed to exchange snapshots", "error", err)
		} else {
			m.MergeSnapshot(peer)
			merged = true
		}
	}

	if m.meta != nil {
		if err := m.meta.SaveLastSyncTimestamp(ctx, m.clock.NowMillis()); err != nil {
			m.logger.Warn("Failed to save last sync timestamp", "error", err)
		}
	}

	m.logger.Info("Synchronization completed",
		"synced", result.Synced,
		"failed", result.Failed,
		"remaining", result.Remaining,
		"merged_snapshot", merged)

	return result, nil
}

// RetryFailed moves failed items with retries left back to Pending
func (m *Manager) RetryFailed(ctx context.Context) (int, error) {
	return m.queue.RetryFailed(ctx)
}

// ClearQueue drops every queued item
func (m *Manager) ClearQueue(ctx context.Context) error {
	return m.queue.Clear(ctx)
}

// PendingCount returns the number of items waiting for delivery
func (m *Manager) PendingCount() int {
	return m.queue.PendingCount()
}

// RetryableCount returns the number of failed items RetryFailed would move
func (m *Manager) RetryableCount() int {
	return m.queue.RetryableCount()
}

// QueueSize returns the number of items in the queue
func (m *Manager) QueueSize() int {
	return m.queue.Len()
}

// Items returns copies of the queued items
func (m *Manager) Items() []models.SyncQueueItem {
	return m.queue.Items()
}

// FailedItems returns copies of the items that exhausted their retries
func (m *Manager) FailedItems() []models.SyncQueueItem {
	return m.queue.FailedItems()
}

// LastSyncAt returns the time (ms) of the last successful sync, 0 if none
func (m *Manager) LastSyncAt(ctx context.Context) (int64, error) {
	if m.meta == nil {
		return 0, nil
	}
	return m.meta.GetLastSyncTimestamp(ctx)
}

// RecordMeasurement counts one completed measurement on this replica
func (m *Manager) RecordMeasurement() {
	m.IncrementMeasurements(1)
}

// IncrementMeasurements raises this replica's measurement tally by amount
func (m *Manager) IncrementMeasurements(amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.measurements.IncrementBy(m.replicaID, amount)
	m.persistLocked()
}

// MeasurementTotal returns the fleet-wide measurement count known to this replica
func (m *Manager) MeasurementTotal() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.measurements.Value()
}

// MeasurementsBy returns the measurement tally of one replica
func (m *Manager) MeasurementsBy(replicaID string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.measurements.ReplicaValue(replicaID)
}

// MergeMeasurements merges a peer counter into the local one
func (m *Manager) MergeMeasurements(other *crdt.GrowCounter) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.measurements.Merge(other)
	m.persistLocked()
}

// Measurements returns a copy of the measurement counter
func (m *Manager) Measurements() *crdt.GrowCounter {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.measurements.Clone()
}

// AddDevice adds a paired device and returns the tag of this insertion
func (m *Manager) AddDevice(deviceID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	tag := m.devices.Add(deviceID)
	m.persistLocked()
	return tag
}

// RemoveDevice removes every observed insertion of a device
func (m *Manager) RemoveDevice(deviceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.devices.Remove(deviceID)
	m.persistLocked()
}

// HasDevice reports whether a device is paired
func (m *Manager) HasDevice(deviceID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.devices.Contains(deviceID)
}

// ListDevices returns the paired devices in sorted order
func (m *Manager) ListDevices() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.devices.Elements()
}

// MergeDevices merges a peer device set into the local one
func (m *Manager) MergeDevices(other *crdt.ORSet) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.devices.Merge(other)
	m.persistLocked()
}

// Devices returns a copy of the device set
func (m *Manager) Devices() *crdt.ORSet {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.devices.Clone()
}

// Settings returns the current settings value
func (m *Manager) Settings() models.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.settings.Value()
}

// UpdateSettings writes new settings on behalf of this replica
func (m *Manager) UpdateSettings(settings models.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings.SetAt(settings, m.replicaID, m.clock.NowMillis())
	m.persistLocked()
}

// MergeSettings merges a peer settings register and reports whether the local value changed
func (m *Manager) MergeSettings(other *crdt.LWWRegister[models.Settings]) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	changed := m.settings.Merge(other)
	if changed {
		m.persistLocked()
	}
	return changed
}

// SettingsRegister returns a copy of the settings register
func (m *Manager) SettingsRegister() *crdt.LWWRegister[models.Settings] {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.settings.Clone()
}

// Snapshot returns the replicated state of this replica
func (m *Manager) Snapshot() *models.ReplicaSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() *models.ReplicaSnapshot {
	return &models.ReplicaSnapshot{
		ReplicaID:    m.replicaID,
		Devices:      m.devices.State(),
		Measurements: m.measurements.State(),
		Settings:     m.settings.State(),
		TakenAt:      m.clock.NowMillis(),
	}
}

// MergeSnapshot merges every replicated type of a peer snapshot
func (m *Manager) MergeSnapshot(snap *models.ReplicaSnapshot) {
	if snap == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.mergeSnapshotLocked(snap)
	m.persistLocked()
}

func (m *Manager) mergeSnapshotLocked(snap *models.ReplicaSnapshot) {
	m.measurements.Merge(crdt.NewGrowCounterFromState(snap.Measurements))
	m.devices.Merge(crdt.NewORSetFromState(snap.Devices))

	if m.settings.Merge(crdt.NewLWWRegisterFromState(snap.Settings)) {
		m.logger.Debug("Merging settings (peer wins)",
			"peer", snap.ReplicaID,
			"writer", snap.Settings.Writer,
			"timestamp", snap.Settings.Timestamp)
	}
}

// Flush persists the replicated state and returns the storage error, if any
func (m *Manager) Flush(ctx context.Context) error {
	if m.state == nil {
		return nil
	}

	m.mu.Lock()
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if err := m.state.SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("failed to save replica state: %w", err)
	}
	return nil
}

// persistLocked сохраняет состояние после локального изменения.
// Операции над CRDT не возвращают ошибок, поэтому сбой только логируется.
func (m *Manager) persistLocked() {
	if m.state == nil {
		return
	}
	if err := m.state.SaveSnapshot(context.Background(), m.snapshotLocked()); err != nil {
		m.logger.Warn("Failed to persist replica state", "error", err)
	}
}
