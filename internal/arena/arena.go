package arena

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/hupe1980/pstr/internal/conv"
	"github.com/hupe1980/pstr/internal/mmap"
)

var (
	// ErrAllocationFailed is returned when a new block cannot be obtained.
	ErrAllocationFailed = errors.New("arena: allocation failed")
	// ErrInvalidLength is returned when a payload length is outside [0, MaxPayload].
	ErrInvalidLength = errors.New("arena: invalid payload length")
)

// MemoryAcquirer is an interface for acquiring memory.
type MemoryAcquirer interface {
	AcquireMemory(amount int64) error
	ReleaseMemory(amount int64)
}

// Location identifies an entry: the directory index of its block and the
// byte offset of its prefix inside that block.
type Location struct {
	Block  uint32
	Offset uint32
}

// Stats tracks allocator memory usage metrics.
//
// Note on semantics:
//   - BytesReserved: total block memory obtained (Blocks * BlockSize)
//   - BytesUsed: prefix and payload bytes written
//   - BytesWasted: unused tails of retired blocks
type Stats struct {
	Blocks        uint64
	BytesReserved uint64
	BytesUsed     uint64
	BytesWasted   uint64
	Entries       uint64
	OffHeapBlocks uint64
}

type atomicStats struct {
	Blocks        atomic.Uint64
	BytesReserved atomic.Uint64
	BytesUsed     atomic.Uint64
	BytesWasted   atomic.Uint64
	Entries       atomic.Uint64
	OffHeapBlocks atomic.Uint64
}

// Allocator bump-allocates entries into a chain of blocks.
type Allocator struct {
	current  *Block
	acquirer MemoryAcquirer
	heap     bool
	onBlock  func(*Block)
	stats    atomicStats
}

// Option is a configuration option for Allocator.
type Option func(*Allocator)

// WithMemoryAcquirer charges every new block against acquirer.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(a *Allocator) {
		a.acquirer = acquirer
	}
}

// WithHeapBlocks backs blocks with ordinary heap slices instead of
// anonymous mappings.
func WithHeapBlocks() Option {
	return func(a *Allocator) {
		a.heap = true
	}
}

// WithBlockHook registers fn to be called after each new block is installed.
func WithBlockHook(fn func(*Block)) Option {
	return func(a *Allocator) {
		a.onBlock = fn
	}
}

// New creates an Allocator. No memory is obtained until the first Reserve.
func New(opts ...Option) *Allocator {
	a := &Allocator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Reserve claims space for an entry with an n-byte payload and returns its
// location together with the 1+n byte slot (prefix first). The caller
// writes the prefix and payload before publishing the location.
func (a *Allocator) Reserve(n int) (Location, []byte, error) {
	if n < 0 || n > MaxPayload {
		return Location{}, nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	if a.current == nil || !a.current.fits(n) {
		if err := a.allocateBlock(); err != nil {
			return Location{}, nil, err
		}
	}

	curr := a.current
	start := curr.Len()
	end := start + PrefixSize + n

	offset, err := conv.IntToUint32(start)
	if err != nil {
		return Location{}, nil, err
	}

	curr.cursor.Store(int64(end))

	a.stats.BytesUsed.Add(uint64(PrefixSize + n))
	a.stats.Entries.Add(1)

	return Location{Block: curr.index, Offset: offset}, curr.data[start:end:end], nil
}

func (a *Allocator) allocateBlock() error {
	if a.acquirer != nil {
		if err := a.acquirer.AcquireMemory(BlockSize); err != nil {
			return fmt.Errorf("%w: %w", ErrAllocationFailed, err)
		}
	}

	b, err := a.newBlock()
	if err != nil {
		if a.acquirer != nil {
			a.acquirer.ReleaseMemory(BlockSize)
		}
		return fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	}

	if err := register(b); err != nil {
		if b.mapping != nil {
			_ = b.mapping.Close()
		}
		if a.acquirer != nil {
			a.acquirer.ReleaseMemory(BlockSize)
		}
		return fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	}

	if prev := a.current; prev != nil {
		a.stats.BytesWasted.Add(uint64(prev.Free()))
	}

	a.current = b

	a.stats.Blocks.Add(1)
	a.stats.BytesReserved.Add(BlockSize)
	if b.OffHeap() {
		a.stats.OffHeapBlocks.Add(1)
	}

	if a.onBlock != nil {
		a.onBlock(b)
	}

	return nil
}

func (a *Allocator) newBlock() (*Block, error) {
	if !a.heap {
		mapping, err := mmap.MapAnon(BlockSize)
		switch {
		case err == nil:
			return &Block{data: mapping.Bytes(), mapping: mapping}, nil
		case !errors.Is(err, mmap.ErrUnsupported):
			return nil, fmt.Errorf("failed to map anonymous memory for block: %w", err)
		}
	}

	return &Block{data: make([]byte, BlockSize)}, nil
}

// Current returns the active block, or nil before the first Reserve.
func (a *Allocator) Current() *Block {
	return a.current
}

// Stats returns the current allocator statistics.
func (a *Allocator) Stats() Stats {
	return Stats{
		Blocks:        a.stats.Blocks.Load(),
		BytesReserved: a.stats.BytesReserved.Load(),
		BytesUsed:     a.stats.BytesUsed.Load(),
		BytesWasted:   a.stats.BytesWasted.Load(),
		Entries:       a.stats.Entries.Load(),
		OffHeapBlocks: a.stats.OffHeapBlocks.Load(),
	}
}

// Usage returns the memory usage percentage.
func (a *Allocator) Usage() float64 {
	stats := a.Stats()
	if stats.BytesReserved == 0 {
		return 0
	}
	return float64(stats.BytesUsed) / float64(stats.BytesReserved) * 100
}

func (a *Allocator) String() string {
	stats := a.Stats()
	return fmt.Sprintf(
		"Allocator{blocks: %d, reserved: %.2f MB, used: %.2f MB, wasted: %.2f KB, usage: %.1f%%, entries: %d}",
		stats.Blocks,
		float64(stats.BytesReserved)/(1024*1024),
		float64(stats.BytesUsed)/(1024*1024),
		float64(stats.BytesWasted)/1024,
		a.Usage(),
		stats.Entries,
	)
}
