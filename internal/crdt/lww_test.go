package crdt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringsEqual(a, b string) bool { return a == b }

func TestLWWRegister_New(t *testing.T) {
	before := time.Now().UnixMilli()
	reg := NewLWWRegister("initial", "node-1")

	assert.Equal(t, "initial", reg.Value())
	assert.Equal(t, "node-1", reg.Writer())
	assert.GreaterOrEqual(t, reg.Timestamp(), before)
}

func TestLWWRegister_Set(t *testing.T) {
	reg := NewLWWRegisterAt("old", "node-1", 100)

	reg.Set("new", "node-2")

	assert.Equal(t, "new", reg.Value())
	assert.Equal(t, "node-2", reg.Writer())
	assert.Greater(t, reg.Timestamp(), int64(100))
}

func TestLWWRegister_SetAtNeverGoesBackwards(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		setAt    int64
		expected int64
	}{
		{"clock advanced", 100, 150, 150},
		{"same millisecond", 100, 100, 101},
		{"clock behind", 100, 40, 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewLWWRegisterAt("a", "node-1", tt.current)
			reg.SetAt("b", "node-1", tt.setAt)
			assert.Equal(t, tt.expected, reg.Timestamp())
			assert.Equal(t, "b", reg.Value())
		})
	}
}

func TestLWWRegister_SetAfterFutureMerge(t *testing.T) {
	future := time.Now().Add(time.Hour).UnixMilli()

	reg := NewLWWRegisterAt("local", "node-1", 100)
	reg.Merge(NewLWWRegisterAt("skewed", "node-2", future))
	require.Equal(t, "skewed", reg.Value())

	// Локальная запись побеждает состояние из будущего
	reg.Set("mine", "node-1")
	assert.Equal(t, "mine", reg.Value())
	assert.Equal(t, future+1, reg.Timestamp())
}

func TestLWWRegister_Merge(t *testing.T) {
	tests := []struct {
		name          string
		local         *LWWRegister[string]
		remote        *LWWRegister[string]
		expectedValue string
		expectedWin   bool
	}{
		{
			name:          "later timestamp wins",
			local:         NewLWWRegisterAt("A", "node-A", 100),
			remote:        NewLWWRegisterAt("B", "node-B", 200),
			expectedValue: "B",
			expectedWin:   true,
		},
		{
			name:          "earlier timestamp loses",
			local:         NewLWWRegisterAt("A", "node-A", 300),
			remote:        NewLWWRegisterAt("B", "node-B", 200),
			expectedValue: "A",
			expectedWin:   false,
		},
		{
			name:          "equal timestamp larger writer wins",
			local:         NewLWWRegisterAt("X", "A", 100),
			remote:        NewLWWRegisterAt("Y", "B", 100),
			expectedValue: "Y",
			expectedWin:   true,
		},
		{
			name:          "equal timestamp smaller writer loses",
			local:         NewLWWRegisterAt("Y", "B", 100),
			remote:        NewLWWRegisterAt("X", "A", 100),
			expectedValue: "Y",
			expectedWin:   false,
		},
		{
			name:          "equal key keeps local",
			local:         NewLWWRegisterAt("X", "A", 100),
			remote:        NewLWWRegisterAt("X", "A", 100),
			expectedValue: "X",
			expectedWin:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			won := tt.local.Merge(tt.remote)
			assert.Equal(t, tt.expectedWin, won)
			assert.Equal(t, tt.expectedValue, tt.local.Value())
		})
	}
}

func TestLWWRegister_TieBreakBothDirections(t *testing.T) {
	r1 := NewLWWRegisterAt("X", "A", 100)
	r2 := NewLWWRegisterAt("Y", "B", 100)

	left := r1.Clone()
	left.Merge(r2)

	right := r2.Clone()
	right.Merge(r1)

	assert.Equal(t, "Y", left.Value())
	assert.Equal(t, "Y", right.Value())
	assert.True(t, left.Equal(right, stringsEqual))
}

func TestLWWRegister_MergeIdempotent(t *testing.T) {
	reg := NewLWWRegisterAt("value", "node-1", 42)
	before := reg.Clone()

	assert.False(t, reg.Merge(reg.Clone()))
	assert.True(t, reg.Equal(before, stringsEqual))

	assert.False(t, reg.Merge(nil))
	assert.True(t, reg.Equal(before, stringsEqual))
}

func TestLWWRegister_StateRoundTrip(t *testing.T) {
	type settings struct {
		Locale string
		Units  string
	}

	reg := NewLWWRegisterAt(settings{Locale: "ko", Units: "mg/dL"}, "node-1", 500)
	restored := NewLWWRegisterFromState(reg.State())

	assert.True(t, reg.Equal(restored, func(a, b settings) bool { return a == b }))
	assert.Equal(t, int64(500), restored.Timestamp())
}
