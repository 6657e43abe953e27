// Package view adapts read-only values from foreign container types
// — this library's own Value, Go maps, slices, arrays and described
// structs — behind one interface, so code that only needs to read a
// tree of data doesn't have to care what built it. Go already gives a
// zero-allocation, closure-free form of type erasure via small
// interfaces, so View is an interface rather than a hand-rolled
// function-pointer vtable.
package view

import (
	"reflect"

	"github.com/vfalco/gojson"
	"github.com/vfalco/gojson/describe"
)

// View is a non-owning, read-only handle over one value, regardless
// of whether it came from a gojson.Value, a Go map/slice/array, or a
// described struct field. Accessor methods that don't apply to the
// underlying shape (e.g. Int64 on an object) return ok=false rather
// than panicking.
type View interface {
	// Kind reports which of the eight value shapes this value presents
	// as.
	Kind() gojson.Kind

	// Len reports the number of elements/entries for an array or
	// object kind; zero otherwise.
	Len() int

	// At indexes into an array-kind View. It returns a null View for
	// an out-of-range index or a non-array receiver.
	At(i int) View

	// Key looks up a member of an object-kind View by name.
	Key(k string) (View, bool)

	// Range iterates an object-kind View's entries. Order is stored
	// order for gojson.Value and struct adaptors, and Go's randomized
	// map order for a map adaptor.
	Range(fn func(key string, v View) bool)

	Bool() (bool, bool)
	Int64() (int64, bool)
	Uint64() (uint64, bool)
	Double() (float64, bool)
	String() (string, bool)
}

// Of adapts a gojson.Value as a View.
func Of(v gojson.Value) View { return valueView{v} }

type valueView struct{ v gojson.Value }

func (vv valueView) Kind() gojson.Kind { return vv.v.Kind() }

func (vv valueView) Len() int {
	switch vv.v.Kind() {
	case gojson.KindArray:
		a, _ := vv.v.AsArray()
		return a.Len()
	case gojson.KindObject:
		o, _ := vv.v.AsObject()
		return o.Len()
	}
	return 0
}

func (vv valueView) At(i int) View { return valueView{vv.v.Index(i)} }

func (vv valueView) Key(k string) (View, bool) {
	if vv.v.Kind() != gojson.KindObject {
		return nil, false
	}
	o, _ := vv.v.AsObject()
	val, ok := o.Get(k)
	if !ok {
		return nil, false
	}
	return valueView{val}, true
}

func (vv valueView) Range(fn func(key string, v View) bool) {
	if vv.v.Kind() != gojson.KindObject {
		return
	}
	o, _ := vv.v.AsObject()
	o.Range(func(k string, val gojson.Value) bool {
		return fn(k, valueView{val})
	})
}

func (vv valueView) Bool() (bool, bool)       { b, err := vv.v.AsBool(); return b, err == nil }
func (vv valueView) Int64() (int64, bool)     { n, err := vv.v.AsInt64(); return n, err == nil }
func (vv valueView) Uint64() (uint64, bool)   { n, err := vv.v.AsUint64(); return n, err == nil }
func (vv valueView) Double() (float64, bool)  { f, err := vv.v.AsDouble(); return f, err == nil }
func (vv valueView) String() (string, bool)   { s, err := vv.v.AsString(); return s, err == nil }

// OfMap adapts any map whose keys convert to string and whose values
// can themselves be adapted, e.g. map[string]int or map[string]any.
func OfMap[M ~map[K]V, K ~string, V any](m M) View {
	return reflectView{reflect.ValueOf(m)}
}

// OfSlice adapts any slice type as an array-kind View.
func OfSlice[S ~[]E, E any](s S) View {
	return reflectView{reflect.ValueOf(s)}
}

// OfArray adapts a fixed-size Go array as an array-kind View.
func OfArray(a interface{}) View {
	rv := reflect.ValueOf(a)
	if rv.Kind() != reflect.Array {
		return nullView{}
	}
	return reflectView{rv}
}

// OfStruct adapts a struct (or pointer to struct) as an object-kind
// View, using describe.Lookup for its field list.
func OfStruct(s interface{}) View {
	rv := reflect.ValueOf(s)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nullView{}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nullView{}
	}
	return reflectView{rv}
}

// OfAny adapts an arbitrary Go value — map, slice, array, struct,
// pointer or scalar — by reflecting its shape. It is the fallback any
// of the typed constructors above reduce to, and what Range/At use to
// wrap a map's or slice's element values.
func OfAny(x interface{}) View {
	if v, ok := x.(gojson.Value); ok {
		return valueView{v}
	}
	if x == nil {
		return nullView{}
	}
	return reflectView{reflect.ValueOf(x)}
}

type nullView struct{}

func (nullView) Kind() gojson.Kind                        { return gojson.KindNull }
func (nullView) Len() int                                 { return 0 }
func (nullView) At(int) View                              { return nullView{} }
func (nullView) Key(string) (View, bool)                  { return nil, false }
func (nullView) Range(func(string, View) bool)            {}
func (nullView) Bool() (bool, bool)                       { return false, false }
func (nullView) Int64() (int64, bool)                     { return 0, false }
func (nullView) Uint64() (uint64, bool)                   { return 0, false }
func (nullView) Double() (float64, bool)                  { return 0, false }
func (nullView) String() (string, bool)                   { return "", false }

// reflectView adapts any Go value reached via reflection: maps,
// slices, arrays, structs (via describe), pointers (transparently
// indirected) and scalars.
type reflectView struct{ rv reflect.Value }

func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return rv
		}
		rv = rv.Elem()
	}
	return rv
}

func (r reflectView) resolved() reflect.Value { return indirect(r.rv) }

func (r reflectView) Kind() gojson.Kind {
	rv := r.resolved()
	if !rv.IsValid() {
		return gojson.KindNull
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return gojson.KindObject
	case reflect.Slice, reflect.Array:
		return gojson.KindArray
	case reflect.String:
		return gojson.KindString
	case reflect.Bool:
		return gojson.KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return gojson.KindInt64
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return gojson.KindUint64
	case reflect.Float32, reflect.Float64:
		return gojson.KindDouble
	}
	return gojson.KindNull
}

func (r reflectView) Len() int {
	rv := r.resolved()
	if !rv.IsValid() {
		return 0
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len()
	case reflect.Struct:
		return len(describe.Lookup(rv.Type()))
	}
	return 0
}

func (r reflectView) At(i int) View {
	rv := r.resolved()
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nullView{}
	}
	if i < 0 || i >= rv.Len() {
		return nullView{}
	}
	return OfAny(rv.Index(i).Interface())
}

func (r reflectView) Key(k string) (View, bool) {
	rv := r.resolved()
	if !rv.IsValid() {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Map:
		mv := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return OfAny(mv.Interface()), true
	case reflect.Struct:
		for _, m := range describe.Lookup(rv.Type()) {
			if m.Name == k {
				return OfAny(describe.FieldByIndex(rv, m.Index).Interface()), true
			}
		}
	}
	return nil, false
}

func (r reflectView) Range(fn func(key string, v View) bool) {
	rv := r.resolved()
	if !rv.IsValid() {
		return
	}
	switch rv.Kind() {
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if !fn(iter.Key().String(), OfAny(iter.Value().Interface())) {
				return
			}
		}
	case reflect.Struct:
		for _, m := range describe.Lookup(rv.Type()) {
			if !fn(m.Name, OfAny(describe.FieldByIndex(rv, m.Index).Interface())) {
				return
			}
		}
	}
}

func (r reflectView) Bool() (bool, bool) {
	rv := r.resolved()
	if rv.IsValid() && rv.Kind() == reflect.Bool {
		return rv.Bool(), true
	}
	return false, false
}

func (r reflectView) Int64() (int64, bool) {
	rv := r.resolved()
	if !rv.IsValid() {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	}
	return 0, false
}

func (r reflectView) Uint64() (uint64, bool) {
	rv := r.resolved()
	if !rv.IsValid() {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true
	}
	return 0, false
}

func (r reflectView) Double() (float64, bool) {
	rv := r.resolved()
	if !rv.IsValid() {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func (r reflectView) String() (string, bool) {
	rv := r.resolved()
	if rv.IsValid() && rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}
