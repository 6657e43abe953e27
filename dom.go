package gojson

import (
	"unsafe"

	"github.com/vfalco/gojson/arena"
)

// stringToBytes returns a read-only view of s as a []byte with no
// copy. The parser never retains or mutates the slices it is handed,
// so this is safe as long as callers of ParseString observe the same
// contract.
func stringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// domFrame is one open container while building a Value tree: either
// an in-progress Array or an in-progress Object plus its pending key.
type domFrame struct {
	arr        *Array
	obj        *Object
	pendingKey string
}

// domBuilder is the Handler that turns a parser's callback stream into
// a Value tree, the way Parse and ParseString do. Every value in the
// tree is tagged with a single arena and string values take their bytes
// from it; object keys are ordinary Go strings.
type domBuilder struct {
	a     arena.Arena
	root  Value
	stack []domFrame

	keyBuf []byte
	strBuf []byte
}

func newDOMBuilder(a arena.Arena) *domBuilder {
	return &domBuilder{a: a}
}

func (d *domBuilder) OnDocumentBegin() bool { return true }
func (d *domBuilder) OnDocumentEnd() bool   { return true }

func (d *domBuilder) OnObjectBegin() bool {
	d.stack = append(d.stack, domFrame{obj: NewObject(d.a)})
	return true
}

func (d *domBuilder) OnObjectEnd(count int) bool {
	f := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	d.deliver(ObjectValue(f.obj))
	return true
}

func (d *domBuilder) OnArrayBegin() bool {
	d.stack = append(d.stack, domFrame{arr: NewArray(d.a)})
	return true
}

func (d *domBuilder) OnArrayEnd(count int) bool {
	f := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	d.deliver(ArrayValue(f.arr))
	return true
}

func (d *domBuilder) OnKeyPart(v []byte) bool {
	d.keyBuf = append(d.keyBuf, v...)
	return true
}

func (d *domBuilder) OnKey(v []byte) bool {
	d.keyBuf = append(d.keyBuf, v...)
	top := &d.stack[len(d.stack)-1]
	top.pendingKey = string(d.keyBuf)
	d.keyBuf = d.keyBuf[:0]
	return true
}

func (d *domBuilder) OnStringPart(v []byte) bool {
	d.strBuf = append(d.strBuf, v...)
	return true
}

func (d *domBuilder) OnString(v []byte) bool {
	d.strBuf = append(d.strBuf, v...)
	s := string(d.strBuf)
	d.strBuf = d.strBuf[:0]
	d.deliver(StringIn(d.a, s))
	return true
}

func (d *domBuilder) OnInt64(v int64) bool {
	d.deliver(Int64In(d.a, v))
	return true
}

func (d *domBuilder) OnUint64(v uint64) bool {
	d.deliver(Uint64In(d.a, v))
	return true
}

func (d *domBuilder) OnDouble(v float64) bool {
	d.deliver(DoubleIn(d.a, v))
	return true
}

func (d *domBuilder) OnBool(v bool) bool {
	d.deliver(BoolIn(d.a, v))
	return true
}

func (d *domBuilder) OnNull() bool {
	d.deliver(NullIn(d.a))
	return true
}

// deliver places a completed value wherever it belongs: the document
// root, the next array slot, or the pending object key. Duplicate
// object keys keep the last value seen, matching Object.Set.
func (d *domBuilder) deliver(v Value) {
	if len(d.stack) == 0 {
		d.root = v
		return
	}
	top := &d.stack[len(d.stack)-1]
	if top.arr != nil {
		_ = top.arr.Append(v)
		return
	}
	_ = top.obj.Set(top.pendingKey, v)
}

// resettable is implemented by arenas that can discard every
// allocation made so far in O(1), such as *arena.Bump. Arenas that
// don't implement it (the default singleton, a refcounted arena) rely
// on GC or refcounting rather than explicit bulk free, so there is
// nothing for Parse to do on their behalf.
type resettable interface {
	Reset()
}

// Parse parses a complete document from data into a Value tree owned
// by a, using opts. It is a convenience wrapper around Parser and
// domBuilder for callers that want the whole document rather than a
// streaming walk.
//
// On error, the partially built tree is discarded: the builder's open
// containers are dropped and, if a supports it, its storage is reset
// in bulk rather than left to accumulate as unreachable allocations.
func Parse(a arena.Arena, data []byte, opts Options) (Value, error) {
	d := newDOMBuilder(a)
	p := NewParser(d, opts)
	if _, err := p.Write(data, false); err != nil {
		d.stack = nil
		if r, ok := a.(resettable); ok {
			r.Reset()
		}
		return Value{}, err
	}
	return d.root, nil
}

// ParseString is Parse for a string input, avoiding a redundant copy
// since strings are already immutable.
func ParseString(a arena.Arena, s string, opts Options) (Value, error) {
	return Parse(a, stringToBytes(s), opts)
}
