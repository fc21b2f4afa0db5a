package arena

import (
	"errors"
	"sync"
	"sync/atomic"
)

// MaxBlocks limits the number of blocks in the process.
// Limit to 64GB addressable space with 1MB blocks.
const MaxBlocks = 1 << 16

// ErrMaxBlocksExceeded is returned when the process-wide directory is full.
var ErrMaxBlocksExceeded = errors.New("arena: max blocks exceeded")

// directory is shared by every allocator in the process. Slots are only
// appended, so readers need nothing but an atomic load.
var directory struct {
	mu     sync.Mutex
	blocks [MaxBlocks]atomic.Pointer[Block] // Fixed-size array to avoid slice race conditions
	count  atomic.Uint32
}

func register(b *Block) error {
	directory.mu.Lock()
	defer directory.mu.Unlock()

	idx := directory.count.Load()
	if idx >= MaxBlocks {
		return ErrMaxBlocksExceeded
	}

	b.index = idx
	directory.blocks[idx].Store(b)
	directory.count.Add(1)

	return nil
}

// Lookup returns the block registered at index.
// It panics for indices that were never handed out.
func Lookup(index uint32) *Block {
	if index >= directory.count.Load() {
		panic("arena: unknown block index")
	}

	b := directory.blocks[index].Load()
	if b == nil {
		panic("arena: block is nil")
	}

	return b
}

// Registered returns the number of blocks in the process-wide directory.
func Registered() int {
	return int(directory.count.Load())
}
