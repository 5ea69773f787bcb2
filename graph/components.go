package graph

import "sort"

// Components finds the connected components of g by breadth-first search.
// Each component lists its vertex ids in ascending order; components are
// ordered by their smallest id. Isolated vertices form singleton components.
//
// Time:   O(V log V + E).
// Memory: O(V).
func (g *Graph) Components() [][]int {
	seen := make(map[int]bool, len(g.adj))
	var comps [][]int

	for _, start := range g.Vertices() {
		if seen[start] {
			continue
		}
		queue := []int{start}
		seen[start] = true
		var comp []int

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			comp = append(comp, u)
			nb, _ := g.Neighbors(u)
			for _, v := range nb {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	return comps
}

// ComponentCount returns the number of connected components.
// Complexity: O(V + E).
func (g *Graph) ComponentCount() int {
	return len(g.Components())
}

// CycleRank returns the number of independent cycles (first Betti number)
// E − V + C. A forest has rank 0.
// Complexity: O(V + E).
func (g *Graph) CycleRank() int {
	if len(g.adj) == 0 {
		return 0
	}
	return g.edges - len(g.adj) + g.ComponentCount()
}

// Leaves returns vertices of degree exactly one, ascending. Removing a leaf
// never disconnects its component.
// Complexity: O(V log V).
func (g *Graph) Leaves() []int {
	var out []int
	for _, id := range g.Vertices() {
		if len(g.adj[id]) == 1 {
			out = append(out, id)
		}
	}
	return out
}
