package gojson

import (
	"errors"
	"strings"
	"testing"

	"github.com/vfalco/gojson/arena"
)

func TestParseScalars(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		check func(t *testing.T, v Value)
	}{
		{"null", `null`, func(t *testing.T, v Value) {
			if !v.IsNull() {
				t.Errorf("got %v, want null", v)
			}
		}},
		{"true", `true`, func(t *testing.T, v Value) {
			if b, _ := v.AsBool(); !b {
				t.Errorf("got %v, want true", v)
			}
		}},
		{"integer", `42`, func(t *testing.T, v Value) {
			if n, err := v.AsInt64(); err != nil || n != 42 {
				t.Errorf("got %v, %v, want 42, nil", n, err)
			}
		}},
		{"negative integer", `-42`, func(t *testing.T, v Value) {
			if n, _ := v.AsInt64(); n != -42 {
				t.Errorf("got %v, want -42", n)
			}
		}},
		{"double", `3.25`, func(t *testing.T, v Value) {
			if f, _ := v.AsDouble(); f != 3.25 {
				t.Errorf("got %v, want 3.25", f)
			}
		}},
		{"string", `"hello"`, func(t *testing.T, v Value) {
			if s, _ := v.AsString(); s != "hello" {
				t.Errorf("got %q, want hello", s)
			}
		}},
		{"string with escape", `"a\nb"`, func(t *testing.T, v Value) {
			if s, _ := v.AsString(); s != "a\nb" {
				t.Errorf("got %q, want %q", s, "a\nb")
			}
		}},
		{"string with surrogate pair", `"😀"`, func(t *testing.T, v Value) {
			if s, _ := v.AsString(); s != "\U0001F600" {
				t.Errorf("got %q, want grinning face emoji", s)
			}
		}},
	} {
		t.Run(test.name, func(t *testing.T) {
			v, err := ParseString(arena.Default(), test.input, Options{})
			if err != nil {
				t.Fatalf("ParseString error = %v", err)
			}
			test.check(t, v)
		})
	}
}

func TestParseArrayAndObject(t *testing.T) {
	v, err := ParseString(arena.Default(), `{"a": [1, 2, {"b": true}]}`, Options{})
	if err != nil {
		t.Fatalf("ParseString error = %v", err)
	}
	if got, _ := v.Key("a").Index(2).Key("b").AsBool(); !got {
		t.Errorf("nested lookup = %v, want true", got)
	}
	arr, err := v.Key("a").AsArray()
	if err != nil || arr.Len() != 3 {
		t.Errorf("array length = %v, %v, want 3, nil", arr, err)
	}
}

func TestParseDuplicateKeysLastWins(t *testing.T) {
	v, err := ParseString(arena.Default(), `{"a": 1, "a": 2}`, Options{})
	if err != nil {
		t.Fatalf("ParseString error = %v", err)
	}
	if got, _ := v.Key("a").AsInt64(); got != 2 {
		t.Errorf("duplicate key resolved to %v, want 2", got)
	}
}

func TestParseRejectsSyntaxErrors(t *testing.T) {
	for _, input := range []string{
		``,
		`{`,
		`[1,]`,
		`{"a":}`,
		`tru`,
		`"unterminated`,
	} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseString(arena.Default(), input, Options{}); err == nil {
				t.Errorf("ParseString(%q) succeeded, want error", input)
			}
		})
	}
}

func TestParseRejectsTooDeepNesting(t *testing.T) {
	const maxDepth = 4

	within := strings.Repeat("[", maxDepth) + strings.Repeat("]", maxDepth)
	if _, err := ParseString(arena.Default(), within, Options{MaxDepth: maxDepth}); err != nil {
		t.Fatalf("ParseString(%q) error = %v, want nil at exactly MaxDepth", within, err)
	}

	tooDeep := strings.Repeat("[", maxDepth+1) + strings.Repeat("]", maxDepth+1)
	_, err := ParseString(arena.Default(), tooDeep, Options{MaxDepth: maxDepth})
	if err == nil {
		t.Fatalf("ParseString(%q) succeeded, want KindTooDeep", tooDeep)
	}
	if !errors.Is(err, ErrTooDeep) {
		t.Errorf("err = %v, want ErrTooDeep", err)
	}
}

func TestParseExtensions(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		opts  Options
	}{
		{"trailing comma array", `[1, 2,]`, Options{AllowTrailingCommas: true}},
		{"trailing comma object", `{"a": 1,}`, Options{AllowTrailingCommas: true}},
		{"line comment", "// hi\n{\"a\": 1}", Options{AllowComments: true}},
		{"block comment", `{/* hi */"a": 1}`, Options{AllowComments: true}},
		{"unquoted keys", `{a: 1}`, Options{AllowUnquotedKeys: true}},
		{"non-finite", `[NaN, Infinity, -Infinity]`, Options{AllowNonFiniteNumbers: true}},
	} {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseString(arena.Default(), test.input, test.opts); err != nil {
				t.Errorf("ParseString(%q) error = %v", test.input, err)
			}
		})
	}
}

func TestParseExtensionsRejectedByDefault(t *testing.T) {
	for _, input := range []string{
		`[1, 2,]`,
		"// hi\n{}",
		`{a: 1}`,
	} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseString(arena.Default(), input, Options{}); err == nil {
				t.Errorf("ParseString(%q) succeeded without the enabling option", input)
			}
		})
	}
}

func TestParserChunkedAcrossWriteCalls(t *testing.T) {
	full := `{"greeting": "hello, world", "count": 12345}`
	d := newDOMBuilder(arena.Default())
	p := NewParser(d, Options{})

	for i := 0; i < len(full); i++ {
		n, err := p.Write([]byte{full[i]}, true)
		if err != nil {
			t.Fatalf("Write at byte %d error = %v", i, err)
		}
		if n != 1 {
			t.Fatalf("Write at byte %d consumed %d bytes, want 1", i, n)
		}
	}
	if _, err := p.Write(nil, false); err != nil {
		t.Fatalf("final Write error = %v", err)
	}
	if !p.Done() {
		t.Fatal("parser not Done after final Write")
	}
	if got, _ := d.root.Key("count").AsInt64(); got != 12345 {
		t.Errorf("count = %v, want 12345", got)
	}
}

func TestParserBareNumberWaitsForMoreData(t *testing.T) {
	d := newDOMBuilder(arena.Default())
	p := NewParser(d, Options{})

	if _, err := p.Write([]byte("123"), true); err != nil {
		t.Fatalf("Write error = %v", err)
	}
	if p.Done() {
		t.Fatal("parser reported Done while a bare number could still extend")
	}
	if _, err := p.Write(nil, false); err != nil {
		t.Fatalf("final Write error = %v", err)
	}
	if !p.Done() {
		t.Fatal("parser not Done after moreData=false")
	}
	if got, _ := d.root.AsInt64(); got != 123 {
		t.Errorf("root = %v, want 123", got)
	}
}

func TestParserZeroCopyStringAvoidsScratchCopy(t *testing.T) {
	input := []byte(`"unescaped run"`)
	var captured []byte
	h := &captureHandler{onString: func(v []byte) bool {
		captured = v
		return true
	}}
	p := NewParser(h, Options{})
	if _, err := p.Write(input, false); err != nil {
		t.Fatalf("Write error = %v", err)
	}
	if &captured[0] != &input[1] {
		t.Error("OnString did not receive a slice aliasing the input buffer")
	}
}

// captureHandler is a minimal Handler for tests that only care about one
// callback.
type captureHandler struct {
	onString func([]byte) bool
}

func (h *captureHandler) OnDocumentBegin() bool    { return true }
func (h *captureHandler) OnDocumentEnd() bool      { return true }
func (h *captureHandler) OnObjectBegin() bool      { return true }
func (h *captureHandler) OnObjectEnd(int) bool     { return true }
func (h *captureHandler) OnArrayBegin() bool       { return true }
func (h *captureHandler) OnArrayEnd(int) bool      { return true }
func (h *captureHandler) OnKeyPart(v []byte) bool  { return true }
func (h *captureHandler) OnKey(v []byte) bool      { return true }
func (h *captureHandler) OnStringPart(v []byte) bool {
	return true
}
func (h *captureHandler) OnString(v []byte) bool {
	if h.onString != nil {
		return h.onString(v)
	}
	return true
}
func (h *captureHandler) OnInt64(int64) bool   { return true }
func (h *captureHandler) OnUint64(uint64) bool { return true }
func (h *captureHandler) OnDouble(float64) bool { return true }
func (h *captureHandler) OnBool(bool) bool     { return true }
func (h *captureHandler) OnNull() bool         { return true }
