// Package graph orders declared types so every base is built before the
// types that derive from it, and reports base cycles.
package graph

import (
	"cmp"
	"slices"
)

// TypeRef identifies a declared type by module and name.
type TypeRef struct {
	Module string
	Name   string
}

func (r TypeRef) String() string { return r.Module + "::" + r.Name }

// Graph is a dependency graph of type declarations. An edge from a type
// to its base means the base must be built first.
type Graph struct {
	nodes map[TypeRef]struct{}
	edges map[TypeRef][]TypeRef
}

// New returns a graph with no nodes or edges.
func New() *Graph {
	return &Graph{
		nodes: make(map[TypeRef]struct{}),
		edges: make(map[TypeRef][]TypeRef),
	}
}

// AddNode registers a declaration. Duplicate calls are no-ops.
func (g *Graph) AddNode(ref TypeRef) {
	g.nodes[ref] = struct{}{}
}

// AddBase records that the declared type derives from base, so base must
// be built before it. Missing nodes are created implicitly and duplicate
// edges are ignored.
func (g *Graph) AddBase(declared, base TypeRef) {
	g.nodes[declared] = struct{}{}
	g.nodes[base] = struct{}{}

	if slices.Contains(g.edges[declared], base) {
		return
	}
	g.edges[declared] = append(g.edges[declared], base)
}

// Bases returns the recorded direct bases of a declaration.
func (g *Graph) Bases(ref TypeRef) []TypeRef {
	return g.edges[ref]
}

// HasNode reports whether the declaration exists in the graph.
func (g *Graph) HasNode(ref TypeRef) bool {
	_, ok := g.nodes[ref]
	return ok
}

// BuildOrder returns declarations ordered so that bases come before the
// types deriving from them, using Tarjan's algorithm. Strongly connected
// components with more than one node, or a single node deriving from
// itself, are reported as cycles and excluded from the order. Starting
// nodes are visited in module-then-name order, so the result is
// deterministic.
func (g *Graph) BuildOrder() (order []TypeRef, cycles [][]TypeRef) {
	var (
		index    int
		stack    []TypeRef
		onStack  = make(map[TypeRef]bool)
		indices  = make(map[TypeRef]int)
		lowlinks = make(map[TypeRef]int)
	)

	var strongConnect func(ref TypeRef)
	strongConnect = func(ref TypeRef) {
		indices[ref] = index
		lowlinks[ref] = index
		index++
		stack = append(stack, ref)
		onStack[ref] = true

		for _, base := range g.edges[ref] {
			if _, visited := indices[base]; !visited {
				strongConnect(base)
				lowlinks[ref] = min(lowlinks[ref], lowlinks[base])
			} else if onStack[base] {
				lowlinks[ref] = min(lowlinks[ref], indices[base])
			}
		}

		if lowlinks[ref] == indices[ref] {
			var scc []TypeRef
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == ref {
					break
				}
			}
			switch {
			case len(scc) > 1:
				cycles = append(cycles, scc)
			case slices.Contains(g.edges[scc[0]], scc[0]):
				cycles = append(cycles, scc)
			default:
				order = append(order, scc[0])
			}
		}
	}

	seeds := make([]TypeRef, 0, len(g.nodes))
	for ref := range g.nodes {
		seeds = append(seeds, ref)
	}
	slices.SortFunc(seeds, func(a, b TypeRef) int {
		if c := cmp.Compare(a.Module, b.Module); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	for _, ref := range seeds {
		if _, visited := indices[ref]; !visited {
			strongConnect(ref)
		}
	}

	return order, cycles
}
