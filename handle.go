package pstr

import (
	"bytes"

	"github.com/hupe1980/pstr/internal/arena"
)

// Handle is a one-word reference to an interned string.
//
// Bit layout (most significant first):
//
//	[ block index + 1 : 35 ][ offset in block : 20 ][ length : 9 ]
//
// The zero Handle refers to nothing. Handles compare with == and can be used
// as map keys; because equal content always interns to the same location,
// comparing handles is equivalent to comparing contents. Handles from
// different stores never compare equal, even for equal content.
type Handle uint64

const (
	lenBits    = 9
	lenMask    = 1<<lenBits - 1
	offsetMask = 1<<arena.OffsetBits - 1
	blockShift = lenBits + arena.OffsetBits
)

func newHandle(loc arena.Location, n int) Handle {
	return Handle((uint64(loc.Block)+1)<<blockShift |
		uint64(loc.Offset)<<lenBits |
		uint64(n))
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h == 0
}

// Len returns the length of the interned string in bytes.
// It reads only the handle word, never block memory.
func (h Handle) Len() int {
	return int(h & lenMask)
}

// Bytes returns the interned bytes. The slice aliases permanent block
// memory and must not be modified. It returns nil for the zero Handle.
func (h Handle) Bytes() []byte {
	if h == 0 {
		return nil
	}
	return arena.Lookup(h.block()).Payload(h.offset(), h.Len())
}

// String returns the interned content as a string without copying.
func (h Handle) String() string {
	return unsafeString(h.Bytes())
}

func (h Handle) block() uint32 {
	return uint32(uint64(h)>>blockShift) - 1
}

func (h Handle) offset() uint32 {
	return uint32(uint64(h)>>lenBits) & offsetMask
}

// Compare orders handles by content, the same way bytes.Compare does.
// Equal handles short-circuit without touching block memory.
func Compare(a, b Handle) int {
	if a == b {
		return 0
	}
	return bytes.Compare(a.Bytes(), b.Bytes())
}
