package arena

import (
	"sync/atomic"

	"github.com/hupe1980/pstr/internal/mmap"
)

const (
	// BlockSize is the capacity of every block (1 MiB).
	BlockSize = 1 << OffsetBits
	// OffsetBits is the number of bits needed to address a byte in a block.
	OffsetBits = 20
	// MaxPayload is the largest payload a single entry can carry.
	MaxPayload = 256
	// PrefixSize is the size of the length prefix in front of every payload.
	PrefixSize = 1
)

// Block is a fixed-size region holding packed entries.
// Bytes below the cursor are immutable.
type Block struct {
	data    []byte
	mapping *mmap.Mapping // nil for heap-backed blocks
	cursor  atomic.Int64  // written by the owning allocator, read by Stats
	index   uint32
}

// Index returns the block's position in the process-wide directory.
func (b *Block) Index() uint32 {
	return b.index
}

// Len returns the number of bytes written so far.
func (b *Block) Len() int {
	return int(b.cursor.Load())
}

// Cap returns the capacity of the block.
func (b *Block) Cap() int {
	return len(b.data)
}

// Free returns the number of unwritten bytes.
func (b *Block) Free() int {
	return b.Cap() - b.Len()
}

// OffHeap reports whether the block lives in an anonymous mapping.
func (b *Block) OffHeap() bool {
	return b.mapping != nil
}

// Prefix returns the raw length prefix of the entry at offset.
func (b *Block) Prefix(offset uint32) byte {
	return b.data[offset]
}

// Payload returns the n payload bytes of the entry at offset.
// The slice is capacity limited so appends never reach the next entry.
func (b *Block) Payload(offset uint32, n int) []byte {
	start := int(offset) + PrefixSize
	end := start + n
	return b.data[start:end:end]
}

// fits reports whether an entry with an n-byte payload fits in the free tail.
func (b *Block) fits(n int) bool {
	return b.Free() >= PrefixSize+n
}

// EncodePrefix returns the length prefix stored for an n-byte payload.
// Lengths 1..256 are stored offset by one; the empty payload stores 0.
func EncodePrefix(n int) byte {
	if n == 0 {
		return 0
	}
	return byte(n - 1)
}

// DecodePrefix is the inverse of EncodePrefix. empty disambiguates the
// shared zero prefix and is carried outside the block.
func DecodePrefix(p byte, empty bool) int {
	if empty {
		return 0
	}
	return int(p) + 1
}
