// Package classgraph implements the superclass DAG as an adjacency-list
// graph queried by reflexive-transitive closure, grounded on the
// teacher's internal/util/graph.go Graph type (a []  []int adjacency
// list with a seen-map walk) — generalized here from vertex indices to
// names.TypeConName keys, and from Tarjan SCC detection (the teacher
// needs strongly-connected components for its let-binding groups) to a
// simple reachability query, since spec.md's invariant I3 only needs
// "is k1 reachable from k2 along Super edges", not component detection.
package classgraph

import "github.com/nguyentito/mpri13/names"

// Graph is an adjacency list from a class to its direct superclasses.
type Graph map[names.TypeConName][]names.TypeConName

// New returns an empty class graph.
func New() Graph { return make(Graph) }

// AddEdge records that sub has super as a direct superclass.
func (g Graph) AddEdge(sub, super names.TypeConName) {
	for _, existing := range g[sub] {
		if existing == super {
			return
		}
	}
	g[sub] = append(g[sub], super)
}

// Reachable reports whether target is reachable from start by
// following zero or more Super edges (reflexive-transitive closure).
func (g Graph) Reachable(start, target names.TypeConName) bool {
	if start == target {
		return true
	}
	seen := map[names.TypeConName]struct{}{start: {}}
	stack := append([]names.TypeConName(nil), g[start]...)
	for len(stack) > 0 {
		n := len(stack) - 1
		c := stack[n]
		stack = stack[:n]
		if c == target {
			return true
		}
		if _, visited := seen[c]; visited {
			continue
		}
		seen[c] = struct{}{}
		stack = append(stack, g[c]...)
	}
	return false
}
