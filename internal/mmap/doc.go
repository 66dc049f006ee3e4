// Package mmap provides memory mappings outside the Go heap.
//
// Two kinds of mapping are supported:
//
//   - Open maps an existing file read-only. LocalStore uses it to read
//     snapshots without copying them through kernel buffers.
//   - MapAnon creates a zeroed read-write anonymous mapping. Large bit stores
//     use it so that gigabyte-sized sieves do not add GC pressure and so that
//     an allocation failure surfaces as an error instead of a fatal runtime
//     out-of-memory.
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2), madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile and VirtualAlloc (Advise is a no-op)
//
// Close is idempotent. Callers must not touch Bytes() after Close returns.
package mmap
