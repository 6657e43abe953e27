package a

import (
	"gojson"
	"gojson/arena"
)

// escapesViaReturn builds an array on a function-local Bump and
// returns it directly: the arena has no guaranteed lifetime beyond
// this call.
func escapesViaReturn() *gojson.Array {
	a := arena.NewBump()
	return gojson.NewArray(a) // want "arena-backed value escapes via return"
}

var leaked *gojson.Object

// escapesToGlobal stores a locally-arena-backed object into a
// package-level variable.
func escapesToGlobal() {
	a := arena.NewBump()
	leaked = gojson.NewObject(a) // want "arena-backed value escapes to a package-level variable"
}

// scopedUse allocates and uses a value without letting it (or its
// arena) leave the function: safe.
func scopedUse() int {
	a := arena.NewBump()
	arr := gojson.NewArray(a)
	_ = arr
	return 0
}

// returnsFromParameterArena builds on a caller-supplied arena: safe,
// since the caller controls that arena's lifetime already.
func returnsFromParameterArena(a arena.Arena) *gojson.Array {
	return gojson.NewArray(a)
}

// returnsFromDefaultArena builds on the process-wide default arena:
// always safe.
func returnsFromDefaultArena() *gojson.Object {
	return gojson.NewObject(arena.Default())
}
