package gojson

import (
	"fmt"
	"testing"

	"github.com/vfalco/gojson/arena"
)

func TestValueAsAccessors(t *testing.T) {
	for _, test := range []struct {
		name    string
		v       Value
		wantErr bool
	}{
		{"bool ok", Bool(true), false},
		{"bool on int fails", Int64(5), true},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.v.AsBool()
			if (err != nil) != test.wantErr {
				t.Errorf("AsBool() error = %v, wantErr %v", err, test.wantErr)
			}
		})
	}
}

func TestValueAsDoubleConverts(t *testing.T) {
	for _, test := range []struct {
		name string
		v    Value
		want float64
	}{
		{"int64", Int64(-5), -5},
		{"uint64", Uint64(5), 5},
		{"double", Double(5.5), 5.5},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.v.AsDouble()
			if err != nil {
				t.Fatalf("AsDouble() error = %v", err)
			}
			if got != test.want {
				t.Errorf("AsDouble() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestValueIndexAndKeyChain(t *testing.T) {
	a := arena.NewBump()
	arr := NewArray(a)
	arr.Append(Int64In(a, 1))
	arr.Append(Int64In(a, 2))
	obj := NewObject(a)
	obj.Set("items", ArrayValue(arr))
	root := ObjectValue(obj)

	if got, err := root.Key("items").Index(1).AsInt64(); err != nil || got != 2 {
		t.Errorf("Key(\"items\").Index(1) = %v, %v, want 2, nil", got, err)
	}

	// Chained access through missing keys/out-of-range indices returns
	// null instead of erroring.
	null := root.Key("missing").Index(5).Key("also-missing")
	if !null.IsNull() {
		t.Errorf("chained miss = %v, want null", null)
	}
}

func TestValueEqual(t *testing.T) {
	a := arena.NewBump()
	arr1 := NewArray(a)
	arr1.Append(Int64In(a, 1))
	arr2 := NewArray(arena.NewBump())
	arr2.Append(Int64In(arena.Default(), 1))

	for _, test := range []struct {
		name     string
		x, y     Value
		expected bool
	}{
		{"same int", Int64(5), Int64(5), true},
		{"different int", Int64(5), Int64(6), false},
		{"different kind", Int64(5), Uint64(5), false},
		{"nan equals nan", Double(nan()), Double(nan()), true},
		{"equal arrays across arenas", ArrayValue(arr1), ArrayValue(arr2), true},
	} {
		t.Run(test.name, func(t *testing.T) {
			if got := test.x.Equal(test.y); got != test.expected {
				t.Errorf("Equal() = %v, want %v", got, test.expected)
			}
		})
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestValueDeepCopyIsIndependent(t *testing.T) {
	src := arena.NewBump()
	dst := arena.NewBump()

	arr := NewArray(src)
	arr.Append(StringIn(src, "original"))
	v := ArrayValue(arr)

	cp := v.DeepCopy(dst)
	if cp.Arena().Equal(v.Arena()) {
		t.Fatal("DeepCopy result shares an arena with the source")
	}

	arr.Set(0, StringIn(src, "mutated"))
	got, _ := cp.Index(0).AsString()
	if got != "original" {
		t.Errorf("copy observed mutation of source: got %q", got)
	}
}

func TestValueStringDebugForm(t *testing.T) {
	for _, test := range []struct {
		v        Value
		expected string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Int64(-5), "-5"},
		{Uint64(5), "5"},
		{String("hi"), `"hi"`},
	} {
		t.Run(fmt.Sprintf("%v", test.expected), func(t *testing.T) {
			if got := test.v.String(); got != test.expected {
				t.Errorf("String() = %q, want %q", got, test.expected)
			}
		})
	}
}
