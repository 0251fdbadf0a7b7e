// Package codec encodes replica snapshots for exchange between replicas:
// msgpack with sorted map keys, compressed with snappy, behind a one-byte
// format marker.
package codec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/golang/snappy"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/iudanet/fleetsync/internal/models"
)

// formatSnapshotV1 marks msgpack+snappy snapshot payloads.
const formatSnapshotV1 byte = 0x01

var (
	// ErrSerialization indicates that a snapshot could not be encoded.
	ErrSerialization = errors.New("snapshot serialization failed")

	// ErrDeserialization indicates that a payload is not a valid snapshot.
	ErrDeserialization = errors.New("snapshot deserialization failed")
)

// EncodeSnapshot encodes snap into a compact, deterministic payload.
func EncodeSnapshot(snap *models.ReplicaSnapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrSerialization)
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	// сортировка ключей дает одинаковые байты для одинаковых состояний
	enc.SetSortMapKeys(true)
	if err := enc.Encode(snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	compressed := snappy.Encode(nil, buf.Bytes())

	out := make([]byte, 0, len(compressed)+1)
	out = append(out, formatSnapshotV1)
	out = append(out, compressed...)
	return out, nil
}

// DecodeSnapshot decodes a payload produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (*models.ReplicaSnapshot, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: payload too short", ErrDeserialization)
	}
	if data[0] != formatSnapshotV1 {
		return nil, fmt.Errorf("%w: unknown format marker 0x%02x", ErrDeserialization, data[0])
	}

	raw, err := snappy.Decode(nil, data[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}

	var snap models.ReplicaSnapshot
	if err := msgpack.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}

	return &snap, nil
}
