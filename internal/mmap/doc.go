// Package mmap provides anonymous, off-heap memory mappings.
//
// Block memory for the string store is obtained here so that the Go garbage
// collector neither scans nor moves it. Mappings are read-write and zero
// filled by the kernel.
//
// # Usage
//
//	m, err := mmap.MapAnon(1 << 20)
//	if err != nil { ... }
//	buf := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE
//   - Windows: VirtualAlloc with MEM_RESERVE|MEM_COMMIT
//   - Everything else: MapAnon returns ErrUnsupported and callers fall back
//     to heap memory
//
// # Thread Safety
//
// Bytes and Size are safe for concurrent use. Close is idempotent but must
// not race with readers of Bytes; the string store never calls it.
package mmap
