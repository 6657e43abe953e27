package gojson

import (
	"strconv"
	"unsafe"

	"github.com/vfalco/gojson/arena"
)

// Value is a tagged variant over the eight value kinds (the JSON
// number is split into int64, uint64 and double). The zero Value is a
// null value whose Arena is nil.
//
// Every structured Value (array, object, string) carries the arena it
// was built in. The invariant that a value's arena equals the arena
// of every value reachable from it is enforced at construction time
// by NewArray/NewObject/StringIn and at mutation time by the Array and
// Object mutators, which deep-copy a foreign-arena child rather than
// alias it.
type Value struct {
	kind Kind
	a    arena.Arena

	b   bool
	i64 int64
	u64 uint64
	f64 float64
	str string
	arr *Array
	obj *Object
}

// Null returns a null value in the default arena.
func Null() Value { return Value{kind: KindNull, a: arena.Default()} }

// NullIn returns a null value tagged with arena a.
func NullIn(a arena.Arena) Value { return Value{kind: KindNull, a: a} }

// Bool returns a bool value in the default arena.
func Bool(v bool) Value { return Value{kind: KindBool, a: arena.Default(), b: v} }

// BoolIn returns a bool value tagged with arena a.
func BoolIn(a arena.Arena, v bool) Value { return Value{kind: KindBool, a: a, b: v} }

// Int64 returns a signed integer value in the default arena.
func Int64(v int64) Value { return Value{kind: KindInt64, a: arena.Default(), i64: v} }

// Int64In returns a signed integer value tagged with arena a.
func Int64In(a arena.Arena, v int64) Value { return Value{kind: KindInt64, a: a, i64: v} }

// Uint64 returns an unsigned integer value in the default arena.
func Uint64(v uint64) Value { return Value{kind: KindUint64, a: arena.Default(), u64: v} }

// Uint64In returns an unsigned integer value tagged with arena a.
func Uint64In(a arena.Arena, v uint64) Value { return Value{kind: KindUint64, a: a, u64: v} }

// Double returns a floating-point value in the default arena.
func Double(v float64) Value { return Value{kind: KindDouble, a: arena.Default(), f64: v} }

// DoubleIn returns a floating-point value tagged with arena a.
func DoubleIn(a arena.Arena, v float64) Value { return Value{kind: KindDouble, a: a, f64: v} }

// String copies s into the default arena and returns a string value.
func String(s string) Value { return StringIn(arena.Default(), s) }

// StringIn copies s into a's storage and returns a string value owned
// by a. The source s may be reused or mutated by the caller
// afterwards without affecting the returned Value.
func StringIn(a arena.Arena, s string) Value {
	if len(s) == 0 {
		return Value{kind: KindString, a: a}
	}
	buf := a.Alloc(len(s))
	copy(buf, s)
	// unsafe.String over storage we exclusively own and that outlives
	// this call is the same zero-copy trick strings.Builder uses
	// internally.
	return Value{kind: KindString, a: a, str: unsafe.String(unsafe.SliceData(buf), len(buf))}
}

// ArrayValue wraps arr as an array-kind Value.
func ArrayValue(arr *Array) Value {
	return Value{kind: KindArray, a: arr.a, arr: arr}
}

// ObjectValue wraps obj as an object-kind Value.
func ObjectValue(obj *Object) Value {
	return Value{kind: KindObject, a: obj.a, obj: obj}
}

// Kind reports which of the eight shapes v holds.
func (v Value) Kind() Kind { return v.kind }

// Arena reports the arena v (and everything reachable from it) is
// allocated in.
func (v Value) Arena() arena.Arena { return v.a }

// IsNull reports whether v holds null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool extracts a bool. Returns ErrExpectedBool if v is not boolean.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, newError(KindExpectedBool, 0, nil)
	}
	return v.b, nil
}

// AsInt64 extracts a signed integer without conversion. Returns
// ErrExpectedInteger if v is not an int64.
func (v Value) AsInt64() (int64, error) {
	if v.kind != KindInt64 {
		return 0, newError(KindExpectedInteger, 0, nil)
	}
	return v.i64, nil
}

// AsUint64 extracts an unsigned integer without conversion. Returns
// ErrExpectedInteger if v is not a uint64.
func (v Value) AsUint64() (uint64, error) {
	if v.kind != KindUint64 {
		return 0, newError(KindExpectedInteger, 0, nil)
	}
	return v.u64, nil
}

// AsDouble extracts a number as float64, converting int64/uint64
// losslessly where representable. Returns ErrExpectedNumber if v holds
// none of the three numeric kinds.
func (v Value) AsDouble() (float64, error) {
	switch v.kind {
	case KindDouble:
		return v.f64, nil
	case KindInt64:
		return float64(v.i64), nil
	case KindUint64:
		return float64(v.u64), nil
	}
	return 0, newError(KindExpectedNumber, 0, nil)
}

// AsString extracts the string. Returns ErrExpectedString otherwise.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", newError(KindExpectedString, 0, nil)
	}
	return v.str, nil
}

// AsArray extracts the array. Returns ErrExpectedArray otherwise.
func (v Value) AsArray() (*Array, error) {
	if v.kind != KindArray {
		return nil, newError(KindExpectedArray, 0, nil)
	}
	return v.arr, nil
}

// AsObject extracts the object. Returns ErrExpectedObject otherwise.
func (v Value) AsObject() (*Object, error) {
	if v.kind != KindObject {
		return nil, newError(KindExpectedObject, 0, nil)
	}
	return v.obj, nil
}

// Index drills into an array value by position, returning a null
// Value instead of an error on an out-of-range index or a non-array
// receiver, so a chain like v.Key("a").Index(2).Key("b") can run to
// completion and be checked once at the end.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= v.arr.Len() {
		return Value{kind: KindNull, a: v.a}
	}
	return v.arr.At(i)
}

// Key drills into an object value by key, returning a null Value
// instead of an error on a missing key or a non-object receiver, for
// the same chained-access reason as Index.
func (v Value) Key(k string) Value {
	if v.kind != KindObject {
		return Value{kind: KindNull, a: v.a}
	}
	val, ok := v.obj.Get(k)
	if !ok {
		return Value{kind: KindNull, a: v.a}
	}
	return val
}

// DeepCopy returns a structurally identical Value whose storage is
// entirely owned by dst, regardless of which arena v currently lives
// in. Mutating the copy never affects v and vice versa.
func (v Value) DeepCopy(dst arena.Arena) Value {
	switch v.kind {
	case KindString:
		return StringIn(dst, v.str)
	case KindArray:
		na := NewArray(dst)
		for i := 0; i < v.arr.Len(); i++ {
			na.Append(v.arr.At(i).DeepCopy(dst))
		}
		return ArrayValue(na)
	case KindObject:
		no := NewObject(dst)
		v.obj.Range(func(k string, val Value) bool {
			no.insert(k, val.DeepCopy(dst), true)
			return true
		})
		return ObjectValue(no)
	default:
		cp := v
		cp.a = dst
		return cp
	}
}

// Equal reports whether v and other are structurally equal: same
// kind, same scalar value or, for arrays/objects, recursively equal
// elements/entries in the same order. Arena identity is not part of
// equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt64:
		return v.i64 == other.i64
	case KindUint64:
		return v.u64 == other.u64
	case KindDouble:
		return v.f64 == other.f64 || (v.f64 != v.f64 && other.f64 != other.f64) // NaN == NaN here
	case KindString:
		return v.str == other.str
	case KindArray:
		if v.arr.Len() != other.arr.Len() {
			return false
		}
		for i := 0; i < v.arr.Len(); i++ {
			if !v.arr.At(i).Equal(other.arr.At(i)) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		keys, otherKeys := v.obj.Keys(), other.obj.Keys()
		for i, k := range keys {
			if k != otherKeys[i] {
				return false
			}
			val, _ := v.obj.Get(k)
			ovVal, _ := other.obj.Get(k)
			if !val.Equal(ovVal) {
				return false
			}
		}
		return true
	}
	return false
}

// String returns a debug representation of v. It is not guaranteed to
// be valid JSON output (e.g. it does not escape strings); use
// [Serializer] for that.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt64:
		return strconv.FormatInt(v.i64, 10)
	case KindUint64:
		return strconv.FormatUint(v.u64, 10)
	case KindDouble:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindArray:
		s := "["
		for i := 0; i < v.arr.Len(); i++ {
			if i > 0 {
				s += ","
			}
			s += v.arr.At(i).String()
		}
		return s + "]"
	case KindObject:
		s := "{"
		first := true
		v.obj.Range(func(k string, val Value) bool {
			if !first {
				s += ","
			}
			first = false
			s += strconv.Quote(k) + ":" + val.String()
			return true
		})
		return s + "}"
	}
	return "<unknown>"
}
