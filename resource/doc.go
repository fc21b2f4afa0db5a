// Package resource implements a memory governor for block allocation.
//
// Every new 1 MiB block is charged against the Controller before its memory
// is mapped. With a limit configured, the charge fails fast with
// ErrMemoryLimitExceeded instead of blocking: interned blocks are never
// released, so a waiting caller could never be satisfied.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20, // 64 blocks
//	})
//
//	if err := rc.AcquireMemory(1 << 20); err != nil {
//	    // ErrMemoryLimitExceeded
//	}
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use. The underlying
// implementations use atomic operations and a weighted semaphore.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
