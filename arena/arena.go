// Package arena provides the pluggable memory sources that back every
// [Value], [Array] and [Object] in the gojson value tree.
//
// An Arena is identified by reference, not by content: two arenas are
// [Arena.Equal] only when they share deallocation identity. A bump
// arena is equal only to itself; the default arena is a process-wide
// singleton equal only to itself.
package arena

// Arena is a pluggable source of byte storage for the value tree.
//
// String values take their bytes from their Arena's Alloc and treat
// that slice as the canonical storage for their contents; Array and
// Object record their Arena but hold their elements in ordinary Go
// slices. An Arena never
// reuses a slice it has already returned for a different allocation;
// doing so would violate the "two live values never alias" contract
// that the value tree depends on.
type Arena interface {
	// Alloc returns a zeroed slice of length n that is valid until the
	// arena itself is discarded or reset. Implementations may panic
	// with a *CapacityError instead of returning if n exceeds an
	// implementation-defined maximum.
	Alloc(n int) []byte

	// Equal reports whether other shares deallocation identity with
	// this arena. It is used by the value tree to detect cross-arena
	// aliasing attempts (forbidden) versus same-arena moves (cheap).
	Equal(other Arena) bool

	// FreeIsNoop reports whether discarding allocations made by this
	// arena is a no-op. Containers use this to skip per-element
	// destruction walks when nothing they could reach owns an
	// external resource.
	FreeIsNoop() bool

	// Stats reports a snapshot of the arena's current usage.
	Stats() Stats
}

// Stats describes the current memory usage of an Arena.
type Stats struct {
	// Allocated is the number of bytes handed out via Alloc calls that
	// are still considered live (not reclaimed by Reset).
	Allocated int64
	// Blocks is the number of upstream blocks the arena currently
	// holds.
	Blocks int
}

// CapacityError is reported when a container would need to grow past
// an implementation-defined maximum.
type CapacityError struct {
	Requested int
	Limit     int
}

func (e *CapacityError) Error() string {
	return "arena: capacity exceeded"
}
