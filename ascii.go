package gojson

import "unicode/utf8"

// stopReason classifies why scanString stopped scanning an unescaped
// run, for the parser's zero-copy string path.
type stopReason int8

const (
	stopEndOfBuffer stopReason = iota // ran out of input; run may continue in a later call
	stopQuote                        // found the closing '"'
	stopBackslash                    // found the start of an escape sequence
	stopControl                      // found an unescaped control byte (< 0x20): syntax error
	stopInvalidUTF8                  // found invalid UTF-8 and AllowInvalidUTF8 is false
)

// scanString scans data from the start for the longest run of bytes
// that can be copied verbatim into a JSON string (i.e. containing no
// '"', no '\', no unescaped control byte, and — unless
// allowInvalidUTF8 — only valid UTF-8). It returns the run length and
// why it stopped: this is the primitive that lets the parser hand a
// handler a slice straight out of the input buffer instead of copying
// through scratch storage.
func scanString(data []byte, allowInvalidUTF8 bool) (n int, reason stopReason) {
	i := 0
	for i < len(data) {
		b := data[i]
		switch {
		case b == '"':
			return i, stopQuote
		case b == '\\':
			return i, stopBackslash
		case b < 0x20:
			return i, stopControl
		case b < 0x80:
			i++
		default:
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && size <= 1 {
				if !allowInvalidUTF8 {
					return i, stopInvalidUTF8
				}
				i++
				continue
			}
			i += size
		}
	}
	return i, stopEndOfBuffer
}

// isSpace reports whether b is one of the four JSON whitespace bytes.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// skipSpace returns the offset of the first non-whitespace byte in
// data, or len(data) if it is all whitespace.
func skipSpace(data []byte) int {
	i := 0
	for i < len(data) && isSpace(data[i]) {
		i++
	}
	return i
}

// hexDigit decodes an ASCII hex digit, returning -1 for a non-hex
// byte.
func hexDigit(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}

// isIdentStart / isIdentCont classify bytes for the AllowUnquotedKeys
// extension: keys matching a C-like identifier grammar.
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// escapeKind classifies a byte for string *emission*: copy verbatim,
// a single-character escape (\b \f \n \r \t \" \\), or the generic
// \u00XX form. Shared by the serializer's string writer.
type escapeKind int8

const (
	escCopy escapeKind = iota
	escShort
	escUnicode
)

var escapeTable, escapeChar = buildEscapeTable()

func buildEscapeTable() (tab [256]escapeKind, ch [256]byte) {
	for i := 0; i < 256; i++ {
		switch {
		case i == '"' || i == '\\':
			tab[i] = escShort
			ch[i] = byte(i)
		case i < 0x20:
			tab[i] = escUnicode
		default:
			tab[i] = escCopy
		}
	}
	tab['\b'] = escShort
	ch['\b'] = 'b'
	tab['\f'] = escShort
	ch['\f'] = 'f'
	tab['\n'] = escShort
	ch['\n'] = 'n'
	tab['\r'] = escShort
	ch['\r'] = 'r'
	tab['\t'] = escShort
	ch['\t'] = 't'
	return tab, ch
}

const hexLower = "0123456789abcdef"

// appendU00 appends the \u00XX escape form for a control byte.
func appendU00(dst []byte, b byte) []byte {
	dst = append(dst, '\\', 'u', '0', '0')
	dst = append(dst, hexLower[b>>4], hexLower[b&0xf])
	return dst
}
