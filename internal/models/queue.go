package models

import (
	"fmt"
)

// SyncOperation is the kind of an outbound queue item. It is the dispatch key
// for the transport; the payload itself is opaque to the sync layer.
type SyncOperation int

// SyncOperation values. The zero value is not a valid operation.
const (
	OpMeasurementUpload SyncOperation = iota + 1
	OpDeviceStatusUpdate
	OpSettingsSync
	OpCartridgeUsageLog
	OpCrdtMerge
)

// AllOperations lists every valid operation in declaration order.
var AllOperations = []SyncOperation{
	OpMeasurementUpload,
	OpDeviceStatusUpdate,
	OpSettingsSync,
	OpCartridgeUsageLog,
	OpCrdtMerge,
}

// String returns the canonical name of the operation.
func (op SyncOperation) String() string {
	switch op {
	case OpMeasurementUpload:
		return "MeasurementUpload"
	case OpDeviceStatusUpdate:
		return "DeviceStatusUpdate"
	case OpSettingsSync:
		return "SettingsSync"
	case OpCartridgeUsageLog:
		return "CartridgeUsageLog"
	case OpCrdtMerge:
		return "CrdtMerge"
	default:
		return fmt.Sprintf("SyncOperation(%d)", int(op))
	}
}

// Valid reports whether op is one of the declared operations.
func (op SyncOperation) Valid() bool {
	return op >= OpMeasurementUpload && op <= OpCrdtMerge
}

// ParseSyncOperation parses the canonical name of an operation.
func ParseSyncOperation(s string) (SyncOperation, error) {
	for _, op := range AllOperations {
		if op.String() == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown sync operation %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (op SyncOperation) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("invalid sync operation %d", int(op))
	}
	return []byte(op.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *SyncOperation) UnmarshalText(text []byte) error {
	parsed, err := ParseSyncOperation(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// SyncState is the position of a queue item in the retry state machine:
//
//	Pending -> Syncing -> Synced (terminal, pruned)
//	                   -> Error  -> Pending (RetryFailed, while retries remain)
type SyncState int

// SyncState values.
const (
	StatePending SyncState = iota + 1
	StateSyncing
	StateSynced
	StateError
)

// String returns the canonical name of the state.
func (s SyncState) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateSyncing:
		return "Syncing"
	case StateSynced:
		return "Synced"
	case StateError:
		return "Error"
	default:
		return fmt.Sprintf("SyncState(%d)", int(s))
	}
}

// ParseSyncState parses the canonical name of a state.
func ParseSyncState(s string) (SyncState, error) {
	for _, st := range []SyncState{StatePending, StateSyncing, StateSynced, StateError} {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown sync state %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s SyncState) MarshalText() ([]byte, error) {
	if s < StatePending || s > StateError {
		return nil, fmt.Errorf("invalid sync state %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SyncState) UnmarshalText(text []byte) error {
	parsed, err := ParseSyncState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SyncQueueItem is one outbound unit of work.
type SyncQueueItem struct {
	ID         string        `json:"id"`          // ID уникальный идентификатор (UUIDv7, упорядочен по времени)
	Origin     string        `json:"origin"`      // Origin реплика, создавшая элемент
	Payload    []byte        `json:"payload"`     // Payload непрозрачные данные коллабораторов
	CreatedAt  int64         `json:"created_at"`  // CreatedAt время создания в миллисекундах
	Operation  SyncOperation `json:"operation"`   // Operation тип операции
	State      SyncState     `json:"state"`       // State состояние в машине повторов
	RetryCount uint32        `json:"retry_count"` // RetryCount число вызовов RetryFailed для элемента
}

// Clone creates a deep copy of the item.
func (i *SyncQueueItem) Clone() *SyncQueueItem {
	payload := make([]byte, len(i.Payload))
	copy(payload, i.Payload)

	c := *i
	c.Payload = payload
	return &c
}
