// Package frame provides reference-counted raw video storage and the
// lightweight handles that let several pads observe the same pixels
// without copying.
//
// A Buffer owns the planes. A Ref is a view onto a Buffer: geometry (which
// may be a sub-rectangle), access permissions, and per-plane data slices.
// Every Ref holds one count on its Buffer. Duplicate adds a count, Release
// drops one, and the Buffer's release callback runs exactly once, on the
// transition to zero.
//
// Storage itself comes from an Allocator. HeapAllocator allocates fresh
// planes on every call; Pool recycles them.
package frame
