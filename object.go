package gojson

import (
	"hash/maphash"

	"github.com/vfalco/gojson/arena"
)

// objEntry is one (key, value) pair in insertion order.
type objEntry struct {
	key string
	val Value
	// tombstone marks a logically-deleted slot so the index table
	// keeps its open-addressing probe chains intact.
	tombstone bool
}

// Object is an ordered sequence of (key, value) entries with a
// parallel open-addressed hash index for O(1) average lookup.
// Iteration order (Range) is always insertion order; the index exists
// purely to accelerate Get/Insert and is rebuilt whenever the index
// table itself has to grow.
type Object struct {
	a       arena.Arena
	entries []objEntry
	index   []int32 // -1 = empty slot, else index into entries
	live    int     // live (non-tombstone) entry count
	seed    maphash.Seed
}

const emptySlot int32 = -1

// maxLoadFactor bounds probe length: the index table grows once live
// entries would exceed half its slots.
const maxLoadFactor = 0.5

// NewObject returns an empty object owned by a.
func NewObject(a arena.Arena) *Object {
	return &Object{a: a, seed: maphash.MakeSeed()}
}

// Len reports the number of live entries (distinct keys currently
// present).
func (o *Object) Len() int { return o.live }

func (o *Object) hash(key string) uint64 {
	return maphash.String(o.seed, key)
}

// slotFor returns the index-table slot for key: either the slot
// already holding it, or the first empty slot on its probe chain.
func (o *Object) slotFor(key string) int {
	if len(o.index) == 0 {
		return -1
	}
	mask := len(o.index) - 1
	i := int(o.hash(key)) & mask
	for {
		e := o.index[i]
		if e == emptySlot {
			return i
		}
		if !o.entries[e].tombstone && o.entries[e].key == key {
			return i
		}
		i = (i + 1) & mask
	}
}

// Get looks up key, returning its value and true if present.
func (o *Object) Get(key string) (Value, bool) {
	if len(o.index) == 0 {
		return Value{}, false
	}
	i := o.slotFor(key)
	e := o.index[i]
	if e == emptySlot {
		return Value{}, false
	}
	return o.entries[e].val, true
}

// Insert adds (key, val) if key is not already present. It reports
// whether the insertion happened; on a duplicate key the existing
// value is kept (first-write-wins). Contrast Set, which a DOM builder
// uses for last-write-wins parse semantics.
func (o *Object) Insert(key string, val Value) (bool, error) {
	return o.insert(key, val, true)
}

// Set inserts (key, val), overwriting any existing value for key
// (last-write-wins). This is what the DOM builder (see dom.go) uses
// for duplicate keys encountered while parsing.
func (o *Object) Set(key string, val Value) error {
	_, err := o.insert(key, val, false)
	return err
}

func (o *Object) insert(key string, val Value, keepFirst bool) (bool, error) {
	val = o.adopt(val)
	if len(o.index) == 0 || o.live+1 > int(float64(len(o.index))*maxLoadFactor) {
		if err := o.grow(); err != nil {
			return false, err
		}
	}
	i := o.slotFor(key)
	if e := o.index[i]; e != emptySlot {
		if keepFirst {
			return false, nil
		}
		o.entries[e].val = val
		return true, nil
	}
	if len(o.entries) >= maxContainerLen {
		return false, newError(KindCapacity, 0, nil)
	}
	idx := int32(len(o.entries))
	o.entries = append(o.entries, objEntry{key: key, val: val})
	o.index[i] = idx
	o.live++
	return true, nil
}

// grow doubles the index table and rebuilds it from scratch.
func (o *Object) grow() error {
	newSize := 8
	if len(o.index) > 0 {
		newSize = len(o.index) * 2
	}
	if newSize > maxContainerLen {
		return newError(KindCapacity, 0, nil)
	}
	newIndex := make([]int32, newSize)
	for i := range newIndex {
		newIndex[i] = emptySlot
	}
	mask := newSize - 1
	for idx := range o.entries {
		e := &o.entries[idx]
		if e.tombstone {
			continue
		}
		h := int(o.hash(e.key)) & mask
		for newIndex[h] != emptySlot {
			h = (h + 1) & mask
		}
		newIndex[h] = int32(idx)
	}
	o.index = newIndex
	return nil
}

func (o *Object) adopt(v Value) Value {
	if v.a != nil && v.a.Equal(o.a) {
		return v
	}
	return v.DeepCopy(o.a)
}

// Range calls fn for every live entry in insertion order, stopping
// early if fn returns false.
func (o *Object) Range(fn func(key string, val Value) bool) {
	for _, e := range o.entries {
		if e.tombstone {
			continue
		}
		if !fn(e.key, e.val) {
			return
		}
	}
}

// Keys returns the live keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.live)
	o.Range(func(k string, _ Value) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}
