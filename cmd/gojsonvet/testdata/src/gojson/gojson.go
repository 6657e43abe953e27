// Package gojson is a minimal stand-in for the real module, just
// enough surface (Array, Object, NewArray, NewObject) for
// analyzer_test.go's fixtures.
package gojson

import "gojson/arena"

type Array struct{}
type Object struct{}

func NewArray(a arena.Arena) *Array  { return &Array{} }
func NewObject(a arena.Arena) *Object { return &Object{} }
