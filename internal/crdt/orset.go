package crdt

import (
	"crypto/rand"
	"encoding/hex"
	"sort"
)

// tagSize is the number of random bytes in an add tag (128 bits).
const tagSize = 16

// SetState is the exchanged form of an ORSet. Tag lists are sorted so that
// equal sets encode identically.
type SetState struct {
	Elements   map[string][]string `json:"elements" msgpack:"elements"`
	Tombstones []string            `json:"tombstones" msgpack:"tombstones"`
}

// ORSet is an observed-remove set of strings with add-wins semantics.
//
// Every Add mints a fresh unique tag. Remove tombstones only the tags the
// remover has observed, so an add made concurrently on another replica
// survives the merge.
//
// ORSet is not safe for concurrent use; callers serialise access.
type ORSet struct {
	elements   map[string]map[string]struct{} // значение -> активные теги
	tombstones map[string]struct{}            // удаленные теги
}

// NewORSet creates an empty set.
func NewORSet() *ORSet {
	return &ORSet{
		elements:   make(map[string]map[string]struct{}),
		tombstones: make(map[string]struct{}),
	}
}

// NewORSetFromState restores a set from an exchanged state. Tags that are
// already tombstoned are dropped so the visibility invariant holds.
func NewORSetFromState(state SetState) *ORSet {
	s := NewORSet()
	for _, tag := range state.Tombstones {
		s.tombstones[tag] = struct{}{}
	}
	for value, tags := range state.Elements {
		for _, tag := range tags {
			if _, removed := s.tombstones[tag]; removed {
				continue
			}
			s.addTag(value, tag)
		}
	}
	return s
}

// Add inserts value under a fresh tag and returns the tag.
func (s *ORSet) Add(value string) string {
	tag := newTag()
	s.addTag(value, tag)
	return tag
}

// Remove tombstones every tag currently observed for value.
// Removing an absent value is a no-op.
func (s *ORSet) Remove(value string) {
	tags, ok := s.elements[value]
	if !ok {
		return
	}
	for tag := range tags {
		s.tombstones[tag] = struct{}{}
	}
	delete(s.elements, value)
}

// Contains reports whether value is visible.
func (s *ORSet) Contains(value string) bool {
	return len(s.elements[value]) > 0
}

// Elements returns the visible values in sorted order.
func (s *ORSet) Elements() []string {
	values := make([]string, 0, len(s.elements))
	for value, tags := range s.elements {
		if len(tags) > 0 {
			values = append(values, value)
		}
	}
	sort.Strings(values)
	return values
}

// Len returns the number of visible values.
func (s *ORSet) Len() int {
	n := 0
	for _, tags := range s.elements {
		if len(tags) > 0 {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no value is visible.
func (s *ORSet) IsEmpty() bool {
	return s.Len() == 0
}

// Tags returns the live tags of value, sorted.
func (s *ORSet) Tags(value string) []string {
	return sortedKeys(s.elements[value])
}

// Merge folds other into s.
//
// Tombstones are unioned before tags are filtered: a tag that survives only
// in other's tombstones must still be removed here.
func (s *ORSet) Merge(other *ORSet) {
	if other == nil {
		return
	}

	// 1. объединяем tombstones
	for tag := range other.tombstones {
		s.tombstones[tag] = struct{}{}
	}

	// 2. объединяем теги значений
	for value, tags := range other.elements {
		for tag := range tags {
			s.addTag(value, tag)
		}
	}

	// 3. удаляем теги, попавшие в tombstones, и пустые значения
	for value, tags := range s.elements {
		for tag := range tags {
			if _, removed := s.tombstones[tag]; removed {
				delete(tags, tag)
			}
		}
		if len(tags) == 0 {
			delete(s.elements, value)
		}
	}
}

// Clone returns a deep copy.
func (s *ORSet) Clone() *ORSet {
	return NewORSetFromState(s.State())
}

// State returns the set state for exchange or persistence.
func (s *ORSet) State() SetState {
	elements := make(map[string][]string, len(s.elements))
	for value, tags := range s.elements {
		if len(tags) == 0 {
			continue
		}
		elements[value] = sortedKeys(tags)
	}
	return SetState{
		Elements:   elements,
		Tombstones: sortedKeys(s.tombstones),
	}
}

// Equal reports whether both sets hold the same tags and tombstones.
func (s *ORSet) Equal(other *ORSet) bool {
	if other == nil {
		return false
	}
	if len(s.tombstones) != len(other.tombstones) || len(s.elements) != len(other.elements) {
		return false
	}
	for tag := range s.tombstones {
		if _, ok := other.tombstones[tag]; !ok {
			return false
		}
	}
	for value, tags := range s.elements {
		otherTags, ok := other.elements[value]
		if !ok || len(otherTags) != len(tags) {
			return false
		}
		for tag := range tags {
			if _, ok := otherTags[tag]; !ok {
				return false
			}
		}
	}
	return true
}

func (s *ORSet) addTag(value, tag string) {
	tags, ok := s.elements[value]
	if !ok {
		tags = make(map[string]struct{})
		s.elements[value] = tags
	}
	tags[tag] = struct{}{}
}

// newTag генерирует 128-битный случайный тег.
func newTag() string {
	b := make([]byte, tagSize)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand.Read не возвращает ошибку на поддерживаемых платформах
		panic("crdt: failed to read random tag: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
