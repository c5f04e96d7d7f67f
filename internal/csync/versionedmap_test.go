package csync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionedMap_Set(t *testing.T) {
	t.Parallel()

	vm := NewVersionedMap[int, string]()
	require.Equal(t, uint64(0), vm.Version())

	vm.Set(7, "seven")
	require.Equal(t, uint64(1), vm.Version())

	value, ok := vm.Get(7)
	require.True(t, ok)
	require.Equal(t, "seven", value)
}

func TestVersionedMap_Update(t *testing.T) {
	t.Parallel()

	vm := NewVersionedMap[int, int]()
	vm.Set(1, 10)
	before := vm.Version()

	require.True(t, vm.Update(1, func(v int) int { return v + 1 }))
	require.Equal(t, before+1, vm.Version())
	value, _ := vm.Get(1)
	require.Equal(t, 11, value)

	// Missing keys leave the version alone.
	require.False(t, vm.Update(2, func(v int) int { return v + 1 }))
	require.Equal(t, before+1, vm.Version())
	require.Equal(t, 1, vm.Len())
}

func TestVersionedMap_Del(t *testing.T) {
	t.Parallel()

	vm := NewVersionedMap[int, int]()
	vm.Set(1, 42)
	before := vm.Version()

	vm.Del(1)
	require.Equal(t, before+1, vm.Version())
	_, ok := vm.Get(1)
	require.False(t, ok)

	vm.Del(99)
	require.Equal(t, before+2, vm.Version())
}

func TestVersionedMap_Changed(t *testing.T) {
	t.Parallel()

	vm := NewVersionedMap[int, int]()
	changed, seen := vm.Changed(0)
	require.False(t, changed)

	vm.Reset(map[int]int{1: 1, 2: 2})
	changed, seen = vm.Changed(seen)
	require.True(t, changed)
	require.Equal(t, 2, vm.Len())

	changed, _ = vm.Changed(seen)
	require.False(t, changed)
}

func TestVersionedMap_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	vm := NewVersionedMap[int, int]()
	const workers = 50
	const ops = 100

	var wg sync.WaitGroup
	for i := range workers {
		wg.Go(func() {
			for j := range ops {
				key := i*ops + j
				vm.Set(key, key*2)
				vm.Update(key, func(v int) int { return v + 1 })
				vm.Del(key)
			}
		})
	}
	wg.Wait()

	require.Equal(t, uint64(workers*ops*3), vm.Version())
	require.Zero(t, vm.Len())
}

func TestMap_Seq2IsSnapshot(t *testing.T) {
	t.Parallel()

	m := NewMapFrom(map[string]int{"a": 1, "b": 2})
	seen := 0
	for k := range m.Seq2() {
		m.Del(k)
		seen++
	}
	require.Equal(t, 2, seen)
	require.Zero(t, m.Len())
}
