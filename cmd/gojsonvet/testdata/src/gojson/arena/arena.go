// Package arena is a minimal stand-in for gojson/arena, shaped just
// enough (NewBump, Default) for gojsonvet's analyzer_test.go fixtures
// to exercise real call patterns under GOPATH-style test resolution.
package arena

type Arena interface{}

type Bump struct{}

func NewBump() *Bump { return &Bump{} }

func Default() Arena { return nil }
