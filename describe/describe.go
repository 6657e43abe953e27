// Package describe lists the exported fields of a struct type once,
// reflectively, and caches the result: the closest Go equivalent to
// the compile-time field enumeration tools like Boost.Describe give
// C++. gojson/view consumes it instead of walking reflect.Type itself;
// ParseInto uses its own field table (structInfo in decode.go).
package describe

import (
	"reflect"
	"strings"
	"sync"
)

// Member is one exported, describable struct field.
type Member struct {
	Name  string       // the wire name: the json tag if present, else the Go field name
	Index []int        // FieldByIndex path, supporting embedded structs
	Type  reflect.Type
}

var cache sync.Map // reflect.Type -> []Member

// generated holds code-generated member tables registered by Register,
// keyed by type. cmd/gojson-gen emits an init() call into this map for
// every struct it processes; Lookup prefers a generated entry over
// computing one via reflection.
var generated sync.Map // reflect.Type -> []Member

// Register records a precomputed member list for t, so Lookup(t) can
// skip reflection entirely. Generated code (see cmd/gojson-gen) calls
// this from an init function; hand-written callers may too.
func Register(t reflect.Type, members []Member) {
	generated.Store(t, members)
}

// Lookup returns the describable members of t, a struct type. The
// result is cached: first call reflects (or uses a Register'd table),
// later calls for the same type are a map lookup.
func Lookup(t reflect.Type) []Member {
	if v, ok := generated.Load(t); ok {
		return v.([]Member)
	}
	if v, ok := cache.Load(t); ok {
		return v.([]Member)
	}
	members := compute(t, nil)
	v, _ := cache.LoadOrStore(t, members)
	return v.([]Member)
}

func compute(t reflect.Type, prefix []int) []Member {
	var out []Member
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue
		}
		idx := append(append([]int{}, prefix...), i)

		if f.Anonymous {
			ft := f.Type
			for ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if _, tagged := f.Tag.Lookup("json"); !tagged {
					out = append(out, compute(ft, idx)...)
					continue
				}
			}
		}

		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			if comma := strings.IndexByte(tag, ','); comma >= 0 {
				tag = tag[:comma]
			}
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		out = append(out, Member{Name: name, Index: idx, Type: f.Type})
	}
	return out
}

// FieldByIndex is reflect.Value.FieldByIndex, allocating through
// nil embedded pointers as it descends — reflect's own FieldByIndex
// panics on a nil pointer instead.
func FieldByIndex(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 {
			if v.Kind() == reflect.Ptr {
				if v.IsNil() {
					v.Set(reflect.New(v.Type().Elem()))
				}
				v = v.Elem()
			}
		}
		v = v.Field(x)
	}
	return v
}
