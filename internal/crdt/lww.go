package crdt

import "time"

// RegisterState is the exchanged form of an LWWRegister.
type RegisterState[T any] struct {
	Value     T      `json:"value" msgpack:"value"`
	Writer    string `json:"writer" msgpack:"writer"`
	Timestamp int64  `json:"timestamp" msgpack:"timestamp"`
}

// LWWRegister holds a single value resolved by last-writer-wins.
// The ordering key is (timestamp, writer) compared lexicographically:
// a later timestamp wins, and on an exact timestamp collision the larger
// writer id wins, so resolution is deterministic on every replica.
//
// T should be a value type (or treated as immutable): Clone copies it by value.
type LWWRegister[T any] struct {
	value     T
	writer    string
	timestamp int64
}

// NewLWWRegister creates a register stamped with the current wall time.
func NewLWWRegister[T any](value T, writer string) *LWWRegister[T] {
	return NewLWWRegisterAt(value, writer, time.Now().UnixMilli())
}

// NewLWWRegisterAt creates a register with an explicit timestamp in milliseconds.
func NewLWWRegisterAt[T any](value T, writer string, timestamp int64) *LWWRegister[T] {
	return &LWWRegister[T]{
		value:     value,
		writer:    writer,
		timestamp: timestamp,
	}
}

// NewLWWRegisterFromState restores a register from an exchanged state.
func NewLWWRegisterFromState[T any](state RegisterState[T]) *LWWRegister[T] {
	return NewLWWRegisterAt(state.Value, state.Writer, state.Timestamp)
}

// Value returns the current value.
func (r *LWWRegister[T]) Value() T {
	return r.value
}

// Timestamp returns the timestamp (ms) of the winning write.
func (r *LWWRegister[T]) Timestamp() int64 {
	return r.timestamp
}

// Writer returns the replica id of the winning write.
func (r *LWWRegister[T]) Writer() string {
	return r.writer
}

// Set writes value on behalf of writer, stamped with the current wall time,
// or with the current timestamp + 1 when the register already holds a key at
// or after that time (see SetAt). A local write therefore always wins over
// the state it replaces, including merged state stamped in the future by a
// peer with a skewed clock.
func (r *LWWRegister[T]) Set(value T, writer string) {
	r.SetAt(value, writer, time.Now().UnixMilli())
}

// SetAt writes value on behalf of writer at timestamp.
// A local write must win over the state it replaces: if the clock has not
// advanced past the current timestamp, the new write is stamped current+1.
func (r *LWWRegister[T]) SetAt(value T, writer string, timestamp int64) {
	if timestamp <= r.timestamp {
		timestamp = r.timestamp + 1
	}
	r.value = value
	r.writer = writer
	r.timestamp = timestamp
}

// Merge replaces the local state with other iff other's (timestamp, writer)
// key is strictly greater. It reports whether the local state changed.
func (r *LWWRegister[T]) Merge(other *LWWRegister[T]) bool {
	if other == nil || !other.newerThan(r.timestamp, r.writer) {
		return false
	}
	r.value = other.value
	r.writer = other.writer
	r.timestamp = other.timestamp
	return true
}

// newerThan сравнивает ключ (timestamp, writer) регистра с переданным.
func (r *LWWRegister[T]) newerThan(timestamp int64, writer string) bool {
	if r.timestamp != timestamp {
		return r.timestamp > timestamp
	}
	// Timestamps равны - сравниваем writer для детерминизма
	return r.writer > writer
}

// Clone returns a copy of the register.
func (r *LWWRegister[T]) Clone() *LWWRegister[T] {
	return NewLWWRegisterAt(r.value, r.writer, r.timestamp)
}

// State returns the register state for exchange or persistence.
func (r *LWWRegister[T]) State() RegisterState[T] {
	return RegisterState[T]{
		Value:     r.value,
		Writer:    r.writer,
		Timestamp: r.timestamp,
	}
}

// Equal reports whether both registers hold the same key and, according to eq, the same value.
func (r *LWWRegister[T]) Equal(other *LWWRegister[T], eq func(a, b T) bool) bool {
	if other == nil {
		return false
	}
	return r.timestamp == other.timestamp && r.writer == other.writer && eq(r.value, other.value)
}
