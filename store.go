package pstr

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/cockroachdb/swiss"
	"github.com/dustin/go-humanize"

	"github.com/hupe1980/pstr/internal/arena"
)

const (
	// MaxLength is the longest string that can be interned, in bytes.
	MaxLength = arena.MaxPayload
	// BlockSize is the size of each shared block (1 MiB).
	BlockSize = arena.BlockSize
)

// Store packs interned strings into shared blocks and deduplicates them.
//
// A Store is safe for concurrent use. Its memory is never released: create
// stores for data that lives as long as the process. Handles from one Store
// must not be passed to another Store's methods as if they were its own;
// they remain readable, but equality with that Store's handles is lost.
type Store struct {
	mu    sync.Mutex
	alloc *arena.Allocator
	table *swiss.Map[string, Handle]

	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty Store. No block memory is reserved until the first
// string is interned.
func New(optFns ...Option) *Store {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Store{
		table:   swiss.New[string, Handle](opts.initialCapacity),
		logger:  opts.logger,
		metrics: opts.metricsCollector,
	}

	allocOpts := []arena.Option{arena.WithBlockHook(s.onBlock)}
	if opts.controller != nil {
		allocOpts = append(allocOpts, arena.WithMemoryAcquirer(opts.controller))
	}
	if opts.heapBlocks {
		allocOpts = append(allocOpts, arena.WithHeapBlocks())
	}
	s.alloc = arena.New(allocOpts...)

	return s
}

// Intern returns the Handle for b, storing a copy of b on first sight.
// b is not retained. Interning byte-equal content always yields the same
// Handle.
func (s *Store) Intern(b []byte) (Handle, error) {
	if len(b) > MaxLength {
		err := &LengthExceededError{Length: len(b), Max: MaxLength}
		s.logger.LogLengthExceeded(len(b))
		s.metrics.RecordError(err)
		return 0, err
	}

	start := time.Now()

	s.mu.Lock()
	h, hit, err := s.internLocked(b)
	s.mu.Unlock()

	if err != nil {
		s.logger.LogAllocationFailure(len(b), err)
		s.metrics.RecordError(err)
		return 0, err
	}

	s.metrics.RecordIntern(hit, time.Since(start))

	return h, nil
}

func (s *Store) internLocked(b []byte) (Handle, bool, error) {
	if h, ok := s.table.Get(unsafeString(b)); ok {
		return h, true, nil
	}

	loc, slot, err := s.alloc.Reserve(len(b))
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrAllocationFailure, err)
	}

	slot[0] = arena.EncodePrefix(len(b))
	payload := slot[arena.PrefixSize:]
	copy(payload, b)

	h := newHandle(loc, len(b))

	// The key aliases block memory, which is immutable from here on.
	s.table.Put(unsafeString(payload), h)

	return h, false, nil
}

// InternString is like Intern for a string argument.
func (s *Store) InternString(str string) (Handle, error) {
	return s.Intern(unsafe.Slice(unsafe.StringData(str), len(str))) //nolint:gosec // Intern only reads its argument
}

// MustIntern is like InternString but panics on error.
// It simplifies the initialization of package-level handles.
func (s *Store) MustIntern(str string) Handle {
	h, err := s.InternString(str)
	if err != nil {
		panic(err)
	}
	return h
}

// Lookup returns the Handle for b if it has already been interned.
// It never allocates block memory.
func (s *Store) Lookup(b []byte) (Handle, bool) {
	if len(b) > MaxLength {
		return 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.table.Get(unsafeString(b))
}

// Len returns the number of distinct strings interned.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.table.Len()
}

// Stats describes the memory held by a Store.
type Stats struct {
	Strings       int    // distinct strings in the table
	Blocks        uint64 // blocks created
	OffHeapBlocks uint64 // blocks backed by anonymous mappings
	BytesReserved uint64 // Blocks * BlockSize
	BytesUsed     uint64 // prefix and payload bytes written
	BytesWasted   uint64 // unused tails of retired blocks
}

// String formats the stats with human-readable byte sizes.
func (s Stats) String() string {
	return fmt.Sprintf("Stats{strings: %d, blocks: %d, reserved: %s, used: %s, wasted: %s}",
		s.Strings,
		s.Blocks,
		humanize.IBytes(s.BytesReserved),
		humanize.IBytes(s.BytesUsed),
		humanize.IBytes(s.BytesWasted),
	)
}

// Stats returns a snapshot of the store's memory usage.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	as := s.alloc.Stats()

	return Stats{
		Strings:       s.table.Len(),
		Blocks:        as.Blocks,
		OffHeapBlocks: as.OffHeapBlocks,
		BytesReserved: as.BytesReserved,
		BytesUsed:     as.BytesUsed,
		BytesWasted:   as.BytesWasted,
	}
}

// onBlock runs under s.mu from inside Reserve.
func (s *Store) onBlock(b *arena.Block) {
	s.logger.LogBlockAllocated(b.Index(), s.alloc.Stats().Blocks, b.OffHeap())
	s.metrics.RecordBlockAllocated()
}

func unsafeString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b)) //nolint:gosec // callers guarantee b outlives or is immutable for the string's use
}
