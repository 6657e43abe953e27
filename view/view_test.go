package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vfalco/gojson"
	"github.com/vfalco/gojson/arena"
)

func TestOfValueAccessors(t *testing.T) {
	a := arena.NewBump()
	arr := gojson.NewArray(a)
	arr.Append(gojson.Int64In(a, 1))
	arr.Append(gojson.Int64In(a, 2))
	obj := gojson.NewObject(a)
	obj.Set("items", gojson.ArrayValue(arr))
	obj.Set("name", gojson.StringIn(a, "hi"))

	v := Of(gojson.ObjectValue(obj))
	if v.Kind() != gojson.KindObject {
		t.Fatalf("Kind() = %v, want KindObject", v.Kind())
	}
	items, ok := v.Key("items")
	if !ok {
		t.Fatal("Key(items) not found")
	}
	if items.Len() != 2 {
		t.Errorf("Len() = %d, want 2", items.Len())
	}
	if n, ok := items.At(1).Int64(); !ok || n != 2 {
		t.Errorf("At(1).Int64() = %d, %v, want 2, true", n, ok)
	}
	if s, ok := v.Key("name"); !ok {
		t.Error("Key(name) not found")
	} else if str, ok := s.String(); !ok || str != "hi" {
		t.Errorf("String() = %q, %v, want hi, true", str, ok)
	}
	if _, ok := v.Key("missing"); ok {
		t.Error("Key(missing) should report ok=false")
	}
}

func TestOfMapAdapts(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	v := OfMap(m)
	if v.Kind() != gojson.KindObject {
		t.Fatalf("Kind() = %v, want KindObject", v.Kind())
	}
	if v.Len() != 2 {
		t.Errorf("Len() = %d, want 2", v.Len())
	}
	got, ok := v.Key("a")
	if !ok {
		t.Fatal("Key(a) not found")
	}
	if n, ok := got.Int64(); !ok || n != 1 {
		t.Errorf("Int64() = %d, %v, want 1, true", n, ok)
	}
	seen := map[string]bool{}
	v.Range(func(k string, _ View) bool {
		seen[k] = true
		return true
	})
	if len(seen) != 2 || !seen["a"] || !seen["b"] {
		t.Errorf("Range saw %v", seen)
	}
}

func TestOfSliceAdapts(t *testing.T) {
	s := []string{"x", "y", "z"}
	v := OfSlice(s)
	if v.Kind() != gojson.KindArray {
		t.Fatalf("Kind() = %v, want KindArray", v.Kind())
	}
	if v.Len() != 3 {
		t.Errorf("Len() = %d, want 3", v.Len())
	}
	if got, ok := v.At(1).String(); !ok || got != "y" {
		t.Errorf("At(1).String() = %q, %v, want y, true", got, ok)
	}
	if got := v.At(10); got.Kind() != gojson.KindNull {
		t.Errorf("out-of-range At = %v, want KindNull", got.Kind())
	}
}

func TestOfArrayAdapts(t *testing.T) {
	a := [3]int{1, 2, 3}
	v := OfArray(a)
	if v.Len() != 3 {
		t.Errorf("Len() = %d, want 3", v.Len())
	}
	if n, ok := v.At(2).Int64(); !ok || n != 3 {
		t.Errorf("At(2).Int64() = %d, %v, want 3, true", n, ok)
	}
}

func TestOfArrayRejectsNonArray(t *testing.T) {
	v := OfArray("not an array")
	if v.Kind() != gojson.KindNull {
		t.Errorf("Kind() = %v, want KindNull", v.Kind())
	}
}

func TestOfStructAdapts(t *testing.T) {
	type Point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	v := OfStruct(Point{X: 3, Y: 4})
	assert.Equal(t, gojson.KindObject, v.Kind())
	x, ok := v.Key("x")
	assert.True(t, ok, "Key(x) should be found")
	n, ok := x.Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)
}

func TestOfStructThroughPointer(t *testing.T) {
	type Point struct {
		X int `json:"x"`
	}
	p := &Point{X: 9}
	v := OfStruct(p)
	if x, ok := v.Key("x"); !ok {
		t.Fatal("Key(x) not found through pointer")
	} else if n, _ := x.Int64(); n != 9 {
		t.Errorf("x = %d, want 9", n)
	}
}

func TestOfStructNilPointerIsNull(t *testing.T) {
	type Point struct{ X int }
	var p *Point
	v := OfStruct(p)
	if v.Kind() != gojson.KindNull {
		t.Errorf("Kind() = %v, want KindNull for a nil struct pointer", v.Kind())
	}
}

func TestOfAnyDispatchesByRuntimeType(t *testing.T) {
	if got := OfAny(5).Kind(); got != gojson.KindInt64 {
		t.Errorf("OfAny(int) Kind() = %v, want KindInt64", got)
	}
	if got := OfAny("s").Kind(); got != gojson.KindString {
		t.Errorf("OfAny(string) Kind() = %v, want KindString", got)
	}
	if got := OfAny(nil).Kind(); got != gojson.KindNull {
		t.Errorf("OfAny(nil) Kind() = %v, want KindNull", got)
	}
	gv := gojson.String("wrapped")
	if got, ok := OfAny(gv).String(); !ok || got != "wrapped" {
		t.Errorf("OfAny(gojson.Value) String() = %q, %v", got, ok)
	}
}
