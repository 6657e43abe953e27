// Package main implements gojsonvet, a static analyzer enforcing this
// module's arena discipline: a *gojson.Array or *gojson.Object built
// on a function-local arena.Bump must not escape that function via
// return or assignment to a package-level variable, since nothing
// then guarantees the bump arena outlives the value referencing it.
package main

import (
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/ssa"
)

// Analyzer is gojsonvet's single check. It requires buildssa so it can
// trace values through loads, stores, field/index addressing and phi
// nodes rather than only catching the literal, unindirected case.
var Analyzer = &analysis.Analyzer{
	Name:     "gojsonvet",
	Doc:      "flags arena-backed gojson values escaping the function that allocated their arena",
	Run:      run,
	Requires: []*analysis.Analyzer{buildssa.Analyzer},
}

// allocSite records where a *gojson.Array or *gojson.Object came from:
// the arena.Bump value it depends on and the source position it was
// constructed at, for the diagnostic message.
type allocSite struct {
	arena  ssa.Value
	posStr string
}

func run(pass *analysis.Pass) (interface{}, error) {
	ssaProg := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)
	for _, fn := range ssaProg.SrcFuncs {
		if fn == nil || fn.Blocks == nil {
			continue
		}
		checkFunction(pass, fn)
	}
	return nil, nil
}

func checkFunction(pass *analysis.Pass, fn *ssa.Function) {
	localArenas := make(map[ssa.Value]bool)  // results of arena.NewBump()
	allocations := make(map[ssa.Value]*allocSite)
	storesTo := make(map[ssa.Value]ssa.Value) // addr -> stored value, for load tracing

	for _, block := range fn.Blocks {
		for _, instr := range block.Instrs {
			if store, ok := instr.(*ssa.Store); ok {
				storesTo[store.Addr] = store.Val
			}
		}
	}

	for _, block := range fn.Blocks {
		for _, instr := range block.Instrs {
			call, ok := instr.(*ssa.Call)
			if !ok {
				continue
			}
			callee := call.Call.StaticCallee()
			if callee == nil {
				continue
			}
			name := callee.String()

			if strings.Contains(name, "gojson/arena.NewBump") {
				localArenas[call] = true
				continue
			}

			if (strings.Contains(name, "gojson.NewArray") || strings.Contains(name, "gojson.NewObject")) &&
				len(call.Call.Args) > 0 {
				arenaArg := call.Call.Args[0]
				if traceToLocalArena(arenaArg, localArenas, storesTo, make(map[ssa.Value]bool)) {
					allocations[call] = &allocSite{
						arena:  arenaArg,
						posStr: pass.Fset.Position(call.Pos()).String(),
					}
				}
			}
		}
	}

	for _, block := range fn.Blocks {
		for _, instr := range block.Instrs {
			switch v := instr.(type) {
			case *ssa.Return:
				for _, result := range v.Results {
					if site := findAllocation(result, allocations, storesTo, make(map[ssa.Value]bool)); site != nil {
						pass.Reportf(v.Pos(),
							"arena-backed value escapes via return; its arena.Bump was allocated locally at %s", site.posStr)
					}
				}
			case *ssa.Store:
				if isGlobalVar(v.Addr) {
					if site := findAllocation(v.Val, allocations, storesTo, make(map[ssa.Value]bool)); site != nil {
						pass.Reportf(v.Pos(),
							"arena-backed value escapes to a package-level variable; its arena.Bump was allocated locally at %s", site.posStr)
					}
				}
			}
		}
	}
}

// traceToLocalArena reports whether val is (or derives from, through
// loads/interface conversions/phi nodes) one of the function's own
// arena.NewBump() results, as opposed to an arena passed in as a
// parameter or arena.Default()'s process-wide singleton.
func traceToLocalArena(val ssa.Value, localArenas map[ssa.Value]bool, storesTo map[ssa.Value]ssa.Value, visited map[ssa.Value]bool) bool {
	if visited[val] {
		return false
	}
	visited[val] = true

	if localArenas[val] {
		return true
	}
	switch v := val.(type) {
	case *ssa.UnOp:
		if stored, ok := storesTo[v.X]; ok {
			if traceToLocalArena(stored, localArenas, storesTo, visited) {
				return true
			}
		}
		return traceToLocalArena(v.X, localArenas, storesTo, visited)
	case *ssa.Phi:
		for _, edge := range v.Edges {
			if traceToLocalArena(edge, localArenas, storesTo, visited) {
				return true
			}
		}
	case *ssa.MakeInterface:
		return traceToLocalArena(v.X, localArenas, storesTo, visited)
	}
	return false
}

// findAllocation traces val back to an allocation recorded in
// allocations, the mirror of traceToLocalArena for *Array/*Object
// results instead of *Bump results.
func findAllocation(val ssa.Value, allocations map[ssa.Value]*allocSite, storesTo map[ssa.Value]ssa.Value, visited map[ssa.Value]bool) *allocSite {
	if visited[val] {
		return nil
	}
	visited[val] = true

	if site, ok := allocations[val]; ok {
		return site
	}
	switch v := val.(type) {
	case *ssa.UnOp:
		if stored, ok := storesTo[v.X]; ok {
			if site := findAllocation(stored, allocations, storesTo, visited); site != nil {
				return site
			}
		}
		return findAllocation(v.X, allocations, storesTo, visited)
	case *ssa.FieldAddr:
		return findAllocation(v.X, allocations, storesTo, visited)
	case *ssa.IndexAddr:
		return findAllocation(v.X, allocations, storesTo, visited)
	case *ssa.Phi:
		for _, edge := range v.Edges {
			if site := findAllocation(edge, allocations, storesTo, visited); site != nil {
				return site
			}
		}
	case *ssa.MakeInterface:
		return findAllocation(v.X, allocations, storesTo, visited)
	}
	return nil
}

func isGlobalVar(val ssa.Value) bool {
	_, ok := val.(*ssa.Global)
	return ok
}

// isPointerLike reports whether t is a pointer or a named type whose
// underlying type is a pointer. Nothing in the analysis calls it.
func isPointerLike(t types.Type) bool {
	switch t := t.(type) {
	case *types.Pointer:
		return true
	case *types.Named:
		return isPointerLike(t.Underlying())
	}
	return false
}
