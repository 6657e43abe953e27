package gojson

import "github.com/vfalco/gojson/arena"

// maxContainerLen is the implementation-defined maximum size for an
// Array or Object; exceeding it on insertion is reported as a
// capacity error.
const maxContainerLen = 1 << 28

// Array is an ordered sequence of Values with amortized-constant
// append. Its backing storage grows geometrically the same way Go's
// own append does, which already gives the amortized O(1) bound
// without any hand-rolled capacity doubling.
type Array struct {
	a    arena.Arena
	vals []Value
}

// NewArray returns an empty array owned by a.
func NewArray(a arena.Arena) *Array {
	return &Array{a: a}
}

// Len reports the number of elements.
func (ar *Array) Len() int { return len(ar.vals) }

// At returns the element at index i. It panics on an out-of-range
// index, matching slice semantics; use Value.Index for the
// out-of-range-safe fluent accessor.
func (ar *Array) At(i int) Value { return ar.vals[i] }

// Set replaces the element at index i.
func (ar *Array) Set(i int, v Value) { ar.vals[i] = ar.adopt(v) }

// Append adds v to the end of the array. If v lives in a different
// arena than ar, Append deep-copies it into ar's arena first — cross-
// arena aliasing is forbidden, but cross-arena moves are defined (if
// slow).
func (ar *Array) Append(v Value) error {
	if len(ar.vals) >= maxContainerLen {
		return newError(KindCapacity, 0, nil)
	}
	ar.vals = append(ar.vals, ar.adopt(v))
	return nil
}

// Insert inserts v at index i, shifting subsequent elements right in
// linear time.
func (ar *Array) Insert(i int, v Value) error {
	if len(ar.vals) >= maxContainerLen {
		return newError(KindCapacity, 0, nil)
	}
	ar.vals = append(ar.vals, Value{})
	copy(ar.vals[i+1:], ar.vals[i:])
	ar.vals[i] = ar.adopt(v)
	return nil
}

// adopt returns v unchanged if it already belongs to ar's arena,
// otherwise a deep copy owned by ar's arena.
func (ar *Array) adopt(v Value) Value {
	if v.a != nil && v.a.Equal(ar.a) {
		return v
	}
	return v.DeepCopy(ar.a)
}

// Values returns the elements in order. The returned slice aliases
// the array's backing storage and must not be retained across a
// mutating call.
func (ar *Array) Values() []Value { return ar.vals }
