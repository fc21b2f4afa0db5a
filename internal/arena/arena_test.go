package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pstr/resource"
)

func TestAllocator_New(t *testing.T) {
	a := New()

	assert.Nil(t, a.Current(), "blocks are created lazily")
	assert.Equal(t, Stats{}, a.Stats())
	assert.Equal(t, float64(0), a.Usage())
}

func TestAllocator_Reserve(t *testing.T) {
	t.Run("basic reservation", func(t *testing.T) {
		a := New()

		loc, slot, err := a.Reserve(5)
		require.NoError(t, err)
		assert.Len(t, slot, 6)
		assert.Equal(t, 6, cap(slot))
		assert.Equal(t, uint32(0), loc.Offset, "first entry starts at offset 0")

		loc2, slot2, err := a.Reserve(3)
		require.NoError(t, err)
		assert.Equal(t, loc.Block, loc2.Block)
		assert.Equal(t, uint32(6), loc2.Offset, "entries are packed without padding")
		assert.Len(t, slot2, 4)

		stats := a.Stats()
		assert.Equal(t, uint64(1), stats.Blocks)
		assert.Equal(t, uint64(10), stats.BytesUsed)
		assert.Equal(t, uint64(2), stats.Entries)
		assert.Equal(t, uint64(BlockSize), stats.BytesReserved)
	})

	t.Run("zero length", func(t *testing.T) {
		a := New()

		_, slot, err := a.Reserve(0)
		require.NoError(t, err)
		assert.Len(t, slot, 1, "empty payload still takes a prefix byte")
	})

	t.Run("max length", func(t *testing.T) {
		a := New()

		_, slot, err := a.Reserve(MaxPayload)
		require.NoError(t, err)
		assert.Len(t, slot, MaxPayload+1)
	})

	t.Run("invalid length", func(t *testing.T) {
		a := New()

		_, _, err := a.Reserve(MaxPayload + 1)
		assert.ErrorIs(t, err, ErrInvalidLength)

		_, _, err = a.Reserve(-1)
		assert.ErrorIs(t, err, ErrInvalidLength)

		assert.Nil(t, a.Current(), "rejected requests must not create blocks")
	})
}

func TestAllocator_BlockRollover(t *testing.T) {
	a := New(WithHeapBlocks())

	// 4095 entries of 256 bytes leave exactly 256 free bytes.
	for i := 0; i < BlockSize/256-1; i++ {
		_, _, err := a.Reserve(255)
		require.NoError(t, err)
	}
	first := a.Current()
	require.Equal(t, 256, first.Free())

	// 257 bytes do not fit in the 256-byte tail.
	loc, _, err := a.Reserve(256)
	require.NoError(t, err)

	second := a.Current()
	assert.NotSame(t, first, second)
	assert.Equal(t, second.Index(), loc.Block)
	assert.Equal(t, uint32(0), loc.Offset)
	assert.Equal(t, 256, first.Free(), "retired blocks are never written again")

	stats := a.Stats()
	assert.Equal(t, uint64(2), stats.Blocks)
	assert.Equal(t, uint64(256), stats.BytesWasted)
}

func TestAllocator_ExactFit(t *testing.T) {
	a := New(WithHeapBlocks())

	for i := 0; i < BlockSize/256; i++ {
		_, _, err := a.Reserve(255)
		require.NoError(t, err)
	}

	assert.Equal(t, 0, a.Current().Free())
	assert.Equal(t, uint64(1), a.Stats().Blocks, "a full block is not replaced until needed")

	_, _, err := a.Reserve(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), a.Stats().Blocks)
	assert.Equal(t, uint64(0), a.Stats().BytesWasted)
}

func TestAllocator_HeapBlocks(t *testing.T) {
	a := New(WithHeapBlocks())

	_, _, err := a.Reserve(1)
	require.NoError(t, err)

	assert.False(t, a.Current().OffHeap())
	assert.Equal(t, BlockSize, a.Current().Cap())
	assert.Equal(t, uint64(0), a.Stats().OffHeapBlocks)
}

func TestAllocator_MemoryAcquirer(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: BlockSize})
	a := New(WithMemoryAcquirer(rc), WithHeapBlocks())

	for i := 0; i < BlockSize/256; i++ {
		_, _, err := a.Reserve(255)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(BlockSize), rc.MemoryUsage())

	before := a.Stats()

	_, _, err := a.Reserve(0)
	require.ErrorIs(t, err, ErrAllocationFailed)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)

	assert.Equal(t, before, a.Stats(), "a failed block allocation leaves the allocator untouched")
	assert.Equal(t, int64(BlockSize), rc.MemoryUsage())
}

func TestAllocator_BlockHook(t *testing.T) {
	var seen []uint32
	a := New(WithHeapBlocks(), WithBlockHook(func(b *Block) {
		seen = append(seen, b.Index())
	}))

	_, _, err := a.Reserve(10)
	require.NoError(t, err)
	_, _, err = a.Reserve(10)
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, a.Current().Index(), seen[0])
}

func TestAllocator_String(t *testing.T) {
	a := New(WithHeapBlocks())
	_, _, err := a.Reserve(9)
	require.NoError(t, err)

	assert.Contains(t, a.String(), "blocks: 1")
	assert.Contains(t, a.String(), "entries: 1")
}

func TestLookup(t *testing.T) {
	a := New(WithHeapBlocks())

	loc, slot, err := a.Reserve(3)
	require.NoError(t, err)
	slot[0] = EncodePrefix(3)
	copy(slot[1:], "abc")

	b := Lookup(loc.Block)
	assert.Same(t, a.Current(), b)
	assert.Equal(t, EncodePrefix(3), b.Prefix(loc.Offset))
	assert.Equal(t, []byte("abc"), b.Payload(loc.Offset, 3))
	assert.GreaterOrEqual(t, Registered(), 1)

	assert.Panics(t, func() { Lookup(MaxBlocks - 1) })
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		n      int
		prefix byte
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{255, 254},
		{256, 255},
	}

	for _, tt := range tests {
		p := EncodePrefix(tt.n)
		assert.Equal(t, tt.prefix, p, "n=%d", tt.n)
		assert.Equal(t, tt.n, DecodePrefix(p, tt.n == 0), "n=%d", tt.n)
	}
}
