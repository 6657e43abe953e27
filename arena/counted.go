package arena

import "sync/atomic"

// Counted wraps any Arena with reference counting so that holders of
// a Counted can outlive the scope that created it: a holder calls
// Retain to take a reference and Release when it is done. The gojson
// containers do not call Retain or Release themselves. The wrapped
// arena's storage is only
// eligible for collection once the refcount reaches zero and the Go
// garbage collector reclaims the underlying blocks; Counted itself
// never frees anything early.
type Counted struct {
	inner Arena
	refs  *atomic.Int64
}

// NewCounted wraps inner in a reference-counted handle with an initial
// refcount of 1.
func NewCounted(inner Arena) *Counted {
	refs := new(atomic.Int64)
	refs.Store(1)
	return &Counted{inner: inner, refs: refs}
}

// Retain increments the reference count and returns a handle sharing
// the same underlying arena and counter.
func (c *Counted) Retain() *Counted {
	c.refs.Add(1)
	return &Counted{inner: c.inner, refs: c.refs}
}

// Release decrements the reference count. It reports whether this was
// the last reference.
func (c *Counted) Release() bool {
	return c.refs.Add(-1) == 0
}

// RefCount reports the current number of outstanding handles.
func (c *Counted) RefCount() int64 {
	return c.refs.Load()
}

// Alloc implements Arena by delegating to the wrapped arena.
func (c *Counted) Alloc(n int) []byte { return c.inner.Alloc(n) }

// FreeIsNoop implements Arena by delegating to the wrapped arena.
func (c *Counted) FreeIsNoop() bool { return c.inner.FreeIsNoop() }

// Stats implements Arena by delegating to the wrapped arena.
func (c *Counted) Stats() Stats { return c.inner.Stats() }

// Equal implements Arena. A Counted handle is identity-equal only to
// another Counted handle sharing the same refcount (and therefore the
// same wrapped arena) — never to the bare wrapped arena, since the two
// have different deallocation identities from the caller's
// perspective.
func (c *Counted) Equal(other Arena) bool {
	oc, ok := other.(*Counted)
	return ok && oc.refs == c.refs
}
