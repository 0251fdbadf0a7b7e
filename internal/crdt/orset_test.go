package crdt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestORSet_AddRemove(t *testing.T) {
	set := NewORSet()

	tag1 := set.Add("device-1")
	set.Add("device-2")

	assert.Len(t, tag1, 2*tagSize, "tag must carry 128 random bits")
	assert.True(t, set.Contains("device-1"))
	assert.True(t, set.Contains("device-2"))
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"device-1", "device-2"}, set.Elements())

	set.Remove("device-1")
	assert.False(t, set.Contains("device-1"))
	assert.True(t, set.Contains("device-2"))
	assert.Equal(t, 1, set.Len())
}

func TestORSet_Empty(t *testing.T) {
	set := NewORSet()

	assert.True(t, set.IsEmpty())
	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Contains("anything"))
	assert.Empty(t, set.Elements())

	// удаление отсутствующего значения - no-op
	set.Remove("anything")
	assert.True(t, set.IsEmpty())
	assert.Empty(t, set.State().Tombstones)
}

func TestORSet_UniqueTags(t *testing.T) {
	set := NewORSet()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tag := set.Add("v")
		require.False(t, seen[tag], "tag collision")
		seen[tag] = true
	}
	assert.Len(t, set.Tags("v"), 1000)
	assert.Equal(t, 1, set.Len())
}

func TestORSet_MergeConcurrentAdds(t *testing.T) {
	a := NewORSet()
	b := NewORSet()

	a.Add("device-1")
	b.Add("device-2")

	a.Merge(b)

	assert.True(t, a.Contains("device-1"))
	assert.True(t, a.Contains("device-2"))
}

func TestORSet_AddWins(t *testing.T) {
	replica1 := NewORSet()
	replica2 := NewORSet()

	replica1.Add("x")
	replica2.Merge(replica1)
	require.True(t, replica2.Contains("x"))

	replica2.Remove("x")
	require.False(t, replica2.Contains("x"))

	// новый тег на replica1, который replica2 еще не наблюдала
	replica1.Add("x")

	replica2.Merge(replica1)
	assert.True(t, replica2.Contains("x"))

	// и в обратную сторону результат тот же
	replica1.Merge(replica2)
	assert.True(t, replica1.Contains("x"))
	assert.True(t, replica1.Equal(replica2))
}

func TestORSet_ObservedRemovePropagates(t *testing.T) {
	a := NewORSet()
	b := NewORSet()

	a.Add("reader")
	b.Merge(a)
	b.Remove("reader")

	a.Merge(b)
	assert.False(t, a.Contains("reader"), "remove of an observed tag must win")
}

func TestORSet_TombstoneUnionBeforeFilter(t *testing.T) {
	// b видел тег и удалил его; a все еще хранит тег.
	// Тег, живущий только в tombstones другой стороны, должен быть удален.
	a := NewORSet()
	a.Add("v")
	b := a.Clone()
	b.Remove("v")

	c := NewORSet()
	c.Merge(a)
	c.Merge(b)
	assert.False(t, c.Contains("v"))

	d := NewORSet()
	d.Merge(b)
	d.Merge(a)
	assert.False(t, d.Contains("v"))
	assert.True(t, c.Equal(d))
}

func TestORSet_MergeIdempotent(t *testing.T) {
	set := NewORSet()
	set.Add("a")
	set.Add("b")
	set.Remove("a")
	before := set.Clone()

	set.Merge(set.Clone())
	assert.True(t, set.Equal(before))
	assert.Equal(t, before.State(), set.State())

	set.Merge(nil)
	assert.True(t, set.Equal(before))
}

func TestORSet_StateNormalizesTombstonedTags(t *testing.T) {
	state := SetState{
		Elements: map[string][]string{
			"a": {"t1", "t2"},
			"b": {"t3"},
		},
		Tombstones: []string{"t1", "t3"},
	}

	set := NewORSetFromState(state)

	assert.True(t, set.Contains("a"))
	assert.False(t, set.Contains("b"))
	assert.Equal(t, []string{"t2"}, set.Tags("a"))
	assert.Equal(t, []string{"t1", "t3"}, set.State().Tombstones)
}

func TestORSet_CloneIsIndependent(t *testing.T) {
	set := NewORSet()
	set.Add("a")
	clone := set.Clone()
	clone.Remove("a")

	assert.True(t, set.Contains("a"))
	assert.False(t, clone.Contains("a"))
	assert.False(t, set.Equal(clone))
}

func TestORSet_ConvergenceUnderShuffledDelivery(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := []string{"reader-A", "reader-B", "reader-C", "cart-1", "cart-2"}

	replicas := make([]*ORSet, 4)
	for i := range replicas {
		replicas[i] = NewORSet()
	}

	// случайные локальные операции и частичные обмены состояниями
	for step := 0; step < 200; step++ {
		r := replicas[rng.Intn(len(replicas))]
		v := values[rng.Intn(len(values))]
		switch rng.Intn(3) {
		case 0, 1:
			r.Add(v)
		case 2:
			r.Remove(v)
		}
		if rng.Intn(4) == 0 {
			from := replicas[rng.Intn(len(replicas))]
			r.Merge(from.Clone())
		}
	}

	snapshots := make([]*ORSet, len(replicas))
	for i, r := range replicas {
		snapshots[i] = r.Clone()
	}

	// каждая реплика получает все снапшоты в своем порядке, с дубликатами
	for _, r := range replicas {
		order := rng.Perm(len(snapshots))
		for _, idx := range order {
			r.Merge(snapshots[idx])
			if rng.Intn(2) == 0 {
				r.Merge(snapshots[idx])
			}
		}
	}

	for i := 1; i < len(replicas); i++ {
		assert.True(t, replicas[0].Equal(replicas[i]), "replica %d diverged", i)
		assert.Equal(t, replicas[0].Elements(), replicas[i].Elements())
	}
}
