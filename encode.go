package gojson

// encFrame is one open array/object while serializing: an index into
// the container's entries (raw entry index for objects, so tombstoned
// slots can be skipped) plus whether a separating comma is owed before
// the next one.
type encFrame struct {
	v        Value
	idx      int
	wroteAny bool
}

// Serializer writes a Value tree out as JSON, suspending whenever the
// caller-supplied buffer fills and resuming on the next Write call, the
// mirror image of Parser.Write. A Serializer is single-use: once Write
// reports the document complete, further calls return (0, nil).
type Serializer struct {
	opts     Options
	root     Value
	stack    []encFrame
	started  bool
	finished bool

	pending    []byte
	pendingPos int

	err error
}

// NewSerializer returns a Serializer that will emit v as JSON.
func NewSerializer(v Value, opts Options) *Serializer {
	return &Serializer{root: v, opts: opts}
}

// Done reports whether the document has been fully written.
func (s *Serializer) Done() bool { return s.finished }

// Write copies as much of the serialized document into dst as fits,
// returning the number of bytes written. It returns (0, nil) once the
// document is complete; dst of length zero is a valid way to check
// Done without writing anything.
func (s *Serializer) Write(dst []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n := 0
	for n < len(dst) {
		if s.pendingPos < len(s.pending) {
			c := copy(dst[n:], s.pending[s.pendingPos:])
			n += c
			s.pendingPos += c
			continue
		}
		if s.finished {
			break
		}
		if !s.step() {
			return n, s.err
		}
	}
	return n, nil
}

// step produces the next token (or container punctuation) into
// s.pending, resetting the read cursor to its start. It returns false
// only on error; reaching the end of the document is signaled by
// setting s.finished, not by returning false.
func (s *Serializer) step() bool {
	if len(s.stack) == 0 {
		if s.started {
			s.finished = true
			return true
		}
		s.started = true
		s.pending = s.emitOpen(s.pending[:0], s.root)
		s.pendingPos = 0
		return true
	}

	f := &s.stack[len(s.stack)-1]
	switch f.v.Kind() {
	case KindArray:
		return s.stepArray(f)
	case KindObject:
		return s.stepObject(f)
	}
	return true
}

func (s *Serializer) stepArray(f *encFrame) bool {
	arr := f.v.arr
	if f.idx >= arr.Len() {
		s.stack = s.stack[:len(s.stack)-1]
		s.pending = append(s.pending[:0], ']')
		s.pendingPos = 0
		return true
	}
	buf := s.pending[:0]
	if f.idx > 0 {
		buf = append(buf, ',')
	}
	child := arr.At(f.idx)
	f.idx++
	buf = s.emitOpen(buf, child)
	s.pending = buf
	s.pendingPos = 0
	return true
}

func (s *Serializer) stepObject(f *encFrame) bool {
	obj := f.v.obj
	for f.idx < len(obj.entries) {
		e := obj.entries[f.idx]
		f.idx++
		if e.tombstone {
			continue
		}
		buf := s.pending[:0]
		if f.wroteAny {
			buf = append(buf, ',')
		}
		f.wroteAny = true
		buf = appendJSONString(buf, e.key)
		buf = append(buf, ':')
		buf = s.emitOpen(buf, e.val)
		s.pending = buf
		s.pendingPos = 0
		return true
	}
	s.stack = s.stack[:len(s.stack)-1]
	s.pending = append(s.pending[:0], '}')
	s.pendingPos = 0
	return true
}

// emitOpen appends v to buf: the opening bracket/brace and a new stack
// frame for a container, or the complete token for a scalar.
func (s *Serializer) emitOpen(buf []byte, v Value) []byte {
	switch v.Kind() {
	case KindArray:
		s.stack = append(s.stack, encFrame{v: v})
		return append(buf, '[')
	case KindObject:
		s.stack = append(s.stack, encFrame{v: v})
		return append(buf, '{')
	default:
		return s.appendScalar(buf, v)
	}
}

func (s *Serializer) appendScalar(buf []byte, v Value) []byte {
	switch v.Kind() {
	case KindNull:
		return append(buf, "null"...)
	case KindBool:
		if v.b {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	case KindInt64:
		return AppendInt(buf, v.i64)
	case KindUint64:
		return AppendUint(buf, v.u64)
	case KindDouble:
		return AppendFloat(buf, v.f64, FormatGeneral, -1, s.opts.AllowNonFiniteNumbers)
	case KindString:
		return appendJSONString(buf, v.str)
	}
	return buf
}

// appendJSONString appends s as a quoted, escaped JSON string literal,
// copying unescaped runs verbatim and choosing single-character or
// \u00XX escapes from escapeTable (see ascii.go).
func appendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch escapeTable[b] {
		case escCopy:
			continue
		case escShort:
			dst = append(dst, s[start:i]...)
			dst = append(dst, '\\', escapeChar[b])
			start = i + 1
		case escUnicode:
			dst = append(dst, s[start:i]...)
			dst = appendU00(dst, b)
			start = i + 1
		}
	}
	dst = append(dst, s[start:]...)
	dst = append(dst, '"')
	return dst
}

// Marshal serializes v to a freshly allocated byte slice in one call.
func Marshal(v Value, opts Options) ([]byte, error) {
	s := NewSerializer(v, opts)
	var out []byte
	buf := make([]byte, 4096)
	for {
		n, err := s.Write(buf)
		if err != nil {
			return nil, err
		}
		out = append(out, buf[:n]...)
		if s.Done() {
			return out, nil
		}
		if n == 0 {
			return out, nil
		}
	}
}
