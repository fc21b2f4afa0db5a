// Package pstr provides permanent, packed, hash-consed storage for short strings.
//
// Strings of up to 256 bytes are copied once into shared 1 MiB blocks and
// referenced through a Handle, a single uint64. Interning the same content
// twice returns the same Handle, so handles can be compared with == and
// used as map keys in place of the strings themselves.
//
// # Quick Start
//
//	s := pstr.New()
//	a, _ := s.InternString("go")
//	b, _ := s.Intern([]byte("go"))
//	fmt.Println(a == b, a.Len(), a) // true 2 go
//
// Or through the process-wide store:
//
//	var kindPod = pstr.MustIntern("Pod")
//
// # Memory Layout
//
// Each entry is one length prefix byte followed by the payload, packed
// without padding. An entry never straddles two blocks; the unused tail of
// a retired block is accepted as waste. Block memory comes from anonymous
// mappings outside the Go heap (see WithHeapBlocks) and is never freed.
// There is no Close: a Store is meant to hold static data for the life of
// the process.
//
// # Concurrency
//
// Intern takes a single per-store mutex that guards both the active block
// and the table. Reading through a Handle (Bytes, String, Len) takes no
// lock: entry bytes are immutable once the Handle has been returned.
//
// # Errors
//
// Content longer than MaxLength fails with ErrLengthExceeded before any
// state changes. If a new block cannot be obtained (memory limit, mapping
// failure) Intern fails with ErrAllocationFailure.
package pstr
