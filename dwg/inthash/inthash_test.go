package inthash

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityFor(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 8},
		{6, 8},
		{7, 16},
		{12, 16},
		{13, 32},
		{3000, 4096},
		{3073, 8192},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, capacityFor(tc.n), "n=%d", tc.n)
	}
}

func TestSetGet(t *testing.T) {
	m := New(4)
	require.NoError(t, m.Set(1, 100))
	require.NoError(t, m.Set(0x1F, 0))
	require.NoError(t, m.Set(math.MaxUint64, 7))

	v, ok := m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, uint64(100), v)

	v, ok = m.Get(0x1F)
	assert.True(t, ok, "value 0 is a legal value")
	assert.Equal(t, uint64(0), v)

	v, ok = m.Get(math.MaxUint64)
	assert.True(t, ok)
	assert.Equal(t, uint64(7), v)

	_, ok = m.Get(2)
	assert.False(t, ok)
	_, ok = m.Get(0)
	assert.False(t, ok)
	assert.Equal(t, 3, m.Len())
}

func TestZeroKeyRejected(t *testing.T) {
	m := New(4)
	require.ErrorIs(t, m.Set(0, 1), ErrZeroKey)
	assert.Equal(t, 0, m.Len())
}

func TestOverwriteIsIdempotent(t *testing.T) {
	m := New(8)
	for k := uint64(1); k <= 50; k++ {
		require.NoError(t, m.Set(k, 1))
		require.NoError(t, m.Set(k, 2))
		v, ok := m.Get(k)
		require.True(t, ok)
		require.Equal(t, uint64(2), v)
	}
	assert.Equal(t, 50, m.Len())
}

func TestSingleResizeAtLoadFactor(t *testing.T) {
	m := New(12)
	require.Equal(t, 16, m.Cap())
	limit := m.Cap() * loadPercent / 100

	for k := 1; k <= limit; k++ {
		require.NoError(t, m.Set(uint64(k), uint64(k*10)))
	}
	assert.Equal(t, 0, m.Stats().Resizes)
	assert.Equal(t, 16, m.Cap())

	require.NoError(t, m.Set(uint64(limit+1), uint64((limit+1)*10)))
	st := m.Stats()
	assert.Equal(t, 1, st.Resizes)
	assert.Equal(t, 32, st.Capacity)
	assert.Equal(t, limit+1, st.Elems)

	for k := 1; k <= limit+1; k++ {
		v, ok := m.Get(uint64(k))
		require.True(t, ok, "key %d lost after resize", k)
		assert.Equal(t, uint64(k*10), v)
	}
}

func TestManyKeysStayWithinLoad(t *testing.T) {
	m := New(0)
	const n = 10000
	for k := uint64(1); k <= n; k++ {
		require.NoError(t, m.Set(k*0x10001, k))
	}
	st := m.Stats()
	assert.Equal(t, n, st.Elems)
	assert.LessOrEqual(t, st.Elems*100, st.Capacity*loadPercent)
	assert.Equal(t, 0, st.Capacity&(st.Capacity-1), "capacity must be a power of two")
	for k := uint64(1); k <= n; k++ {
		v, ok := m.Get(k * 0x10001)
		require.True(t, ok)
		require.Equal(t, k, v)
	}
}

func TestRangeAndReset(t *testing.T) {
	m := New(4)
	for k := uint64(1); k <= 5; k++ {
		require.NoError(t, m.Set(k, k*k))
	}
	sum := uint64(0)
	m.Range(func(k, v uint64) bool {
		assert.Equal(t, k*k, v)
		sum += k
		return true
	})
	assert.Equal(t, uint64(15), sum)

	seen := 0
	m.Range(func(_, _ uint64) bool {
		seen++
		return false
	})
	assert.Equal(t, 1, seen)

	m.Reset(0)
	assert.Equal(t, 0, m.Len())
	_, ok := m.Get(3)
	assert.False(t, ok)
}

func TestStatsMaxProbe(t *testing.T) {
	m := New(4)
	assert.Equal(t, 0, m.Stats().MaxProbe)
	require.NoError(t, m.Set(42, 1))
	assert.Equal(t, 1, m.Stats().MaxProbe)
}

func BenchmarkSet(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m := New(1024)
		for k := uint64(1); k <= 1024; k++ {
			_ = m.Set(k, k)
		}
	}
}

func BenchmarkGet(b *testing.B) {
	m := New(1 << 16)
	for k := uint64(1); k <= 1<<16; k++ {
		_ = m.Set(k, k)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Get(uint64(i&0xFFFF) + 1)
	}
}
