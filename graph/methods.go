package graph

import "sort"

// AddVertex inserts a vertex if missing (idempotent).
//
// Errors:
//   - ErrNegativeVertex: if id < 0.
//
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(id int) error {
	if id < 0 {
		return ErrNegativeVertex
	}
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make(map[int]struct{})
	}
	return nil
}

// AddEdge connects a and b, adding missing endpoints.
//
// Errors:
//   - ErrNegativeVertex: either id < 0.
//   - ErrLoopNotAllowed: a == b.
//   - ErrMultiEdgeNotAllowed: the pair is already connected.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(a, b int) error {
	if a == b {
		return ErrLoopNotAllowed
	}
	if err := g.AddVertex(a); err != nil {
		return err
	}
	if err := g.AddVertex(b); err != nil {
		return err
	}
	if _, dup := g.adj[a][b]; dup {
		return ErrMultiEdgeNotAllowed
	}
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
	g.edges++
	return nil
}

// HasVertex reports whether id is present.
func (g *Graph) HasVertex(id int) bool {
	_, ok := g.adj[id]
	return ok
}

// HasEdge reports whether a and b are connected.
func (g *Graph) HasEdge(a, b int) bool {
	nb, ok := g.adj[a]
	if !ok {
		return false
	}
	_, ok = nb[b]
	return ok
}

// VertexCount returns |V|.
func (g *Graph) VertexCount() int { return len(g.adj) }

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int { return g.edges }

// Degree returns the number of neighbours of id.
//
// Errors:
//   - ErrVertexNotFound: id is not a vertex.
func (g *Graph) Degree(id int) (int, error) {
	nb, ok := g.adj[id]
	if !ok {
		return 0, ErrVertexNotFound
	}
	return len(nb), nil
}

// Vertices returns all vertex ids in ascending order.
// Complexity: O(V log V).
func (g *Graph) Vertices() []int {
	out := make([]int, 0, len(g.adj))
	for id := range g.adj {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Neighbors returns the neighbours of id in ascending order.
//
// Errors:
//   - ErrVertexNotFound: id is not a vertex.
//
// Complexity: O(d log d).
func (g *Graph) Neighbors(id int) ([]int, error) {
	nb, ok := g.adj[id]
	if !ok {
		return nil, ErrVertexNotFound
	}
	out := make([]int, 0, len(nb))
	for v := range nb {
		out = append(out, v)
	}
	sort.Ints(out)
	return out, nil
}

// Edges returns every edge once, sorted by (U, V).
// Complexity: O(E log E).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for u, nb := range g.adj {
		for v := range nb {
			if u < v {
				out = append(out, Edge{U: u, V: v})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].U != out[j].U {
			return out[i].U < out[j].U
		}
		return out[i].V < out[j].V
	})
	return out
}

// Clone returns a deep copy of g.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	c := &Graph{adj: make(map[int]map[int]struct{}, len(g.adj)), edges: g.edges}
	for u, nb := range g.adj {
		cp := make(map[int]struct{}, len(nb))
		for v := range nb {
			cp[v] = struct{}{}
		}
		c.adj[u] = cp
	}
	return c
}
