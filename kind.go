package gojson

// Kind identifies which of the eight value shapes a Value holds.
// It is stored as the first field of Value so that a value's kind is
// readable without branching on storage.
type Kind int8

// The eight kinds a Value may hold.
const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindUint64
	KindDouble
	KindString
	KindArray
	KindObject

	numKinds
)

var kindStrings = [numKinds]string{
	"null", "bool", "int64", "uint64", "double", "string", "array", "object",
}

// String returns a short, stable name for k.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "<unknown>"
	}
	return kindStrings[k]
}
