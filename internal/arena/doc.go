// Package arena provides the block allocator behind the string store.
//
// Entries are packed back to back into fixed 1 MiB blocks as
//
//	[prefix byte][payload ...]
//
// where the prefix holds the payload length minus one (the empty payload
// also writes a zero prefix; the handle's own length field tells the two
// apart). Entries never straddle a block boundary: when the active block
// cannot hold 1+n more bytes it is retired, its tail bytes are counted as
// waste, and a fresh block becomes active.
//
// # Memory Management
//
// Block memory comes from anonymous mappings (off-heap, never scanned by the
// GC) unless WithHeapBlocks is given or the platform lacks them. Blocks are
// never freed: there is no Free or Reset. Every block is registered in a
// process-wide directory, so a (block index, offset) pair resolves to memory
// without a pointer to the allocator that created it.
//
// # Concurrency Model
//
// Allocator is NOT safe for concurrent use; its owner serializes Reserve.
// Lookup and Block reads are lock-free and safe from any goroutine once the
// location has been published through a synchronizing operation.
package arena
