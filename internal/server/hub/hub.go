// Package hub holds the relay's own replica: the merged state of every
// snapshot the fleet has sent to it.
package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/fleetsync/internal/codec"
	"github.com/iudanet/fleetsync/internal/crdt"
	"github.com/iudanet/fleetsync/internal/models"
	"github.com/iudanet/fleetsync/internal/server/storage"
)

// ReplicaID is the replica id the hub uses in its own snapshots
const ReplicaID = "relay-hub"

// Hub merges replica snapshots into one state and persists it after every merge
type Hub struct {
	store  storage.HubStateStorage
	clock  crdt.Clock
	logger *slog.Logger

	measurements *crdt.GrowCounter
	devices      *crdt.ORSet
	settings     *crdt.LWWRegister[models.Settings]

	mu sync.Mutex
}

// New creates a hub with an empty state. Call Load to restore the persisted state.
func New(store storage.HubStateStorage, clock crdt.Clock, logger *slog.Logger) *Hub {
	if clock == nil {
		clock = crdt.WallClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		store:        store,
		clock:        clock,
		logger:       logger,
		measurements: crdt.NewGrowCounter(),
		devices:      crdt.NewORSet(),
		settings:     crdt.NewLWWRegisterAt(models.DefaultSettings(), "", 0),
	}
}

// Load restores the hub state from storage
func (h *Hub) Load(ctx context.Context) error {
	data, err := h.store.LoadHubState(ctx)
	if errors.Is(err, storage.ErrHubStateNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load hub state: %w", err)
	}

	snap, err := codec.DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("failed to decode hub state: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.mergeLocked(snap)
	return nil
}

// Merge merges a replica snapshot, persists the result and returns the merged hub snapshot
func (h *Hub) Merge(ctx context.Context, snap *models.ReplicaSnapshot) (*models.ReplicaSnapshot, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot must not be nil")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Состояние хаба меняется только после успешного сохранения
	measurements := h.measurements.Clone()
	devices := h.devices.Clone()
	settings := h.settings.Clone()

	measurements.Merge(crdt.NewGrowCounterFromState(snap.Measurements))
	devices.Merge(crdt.NewORSetFromState(snap.Devices))
	settingsChanged := settings.Merge(crdt.NewLWWRegisterFromState(snap.Settings))

	merged := &models.ReplicaSnapshot{
		ReplicaID:    ReplicaID,
		Devices:      devices.State(),
		Measurements: measurements.State(),
		Settings:     settings.State(),
		TakenAt:      h.clock.NowMillis(),
	}

	data, err := codec.EncodeSnapshot(merged)
	if err != nil {
		return nil, err
	}
	if err := h.store.SaveHubState(ctx, snap.ReplicaID, data, merged.TakenAt); err != nil {
		return nil, fmt.Errorf("failed to save hub state: %w", err)
	}

	h.measurements, h.devices, h.settings = measurements, devices, settings

	h.logger.Debug("Merged replica snapshot",
		"replica_id", snap.ReplicaID,
		"measurements", measurements.Value(),
		"devices", devices.Len(),
		"settings_changed", settingsChanged)

	return merged, nil
}

// Snapshot returns the current hub state
func (h *Hub) Snapshot() *models.ReplicaSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	return &models.ReplicaSnapshot{
		ReplicaID:    ReplicaID,
		Devices:      h.devices.State(),
		Measurements: h.measurements.State(),
		Settings:     h.settings.State(),
		TakenAt:      h.clock.NowMillis(),
	}
}

// MeasurementTotal returns the fleet-wide measurement count known to the hub
func (h *Hub) MeasurementTotal() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.measurements.Value()
}

// Devices returns the paired devices known to the hub
func (h *Hub) Devices() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.devices.Elements()
}

func (h *Hub) mergeLocked(snap *models.ReplicaSnapshot) {
	h.measurements.Merge(crdt.NewGrowCounterFromState(snap.Measurements))
	h.devices.Merge(crdt.NewORSetFromState(snap.Devices))
	h.settings.Merge(crdt.NewLWWRegisterFromState(snap.Settings))
}
