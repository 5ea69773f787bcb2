package graph

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrNegativeVertex indicates a vertex id below zero.
	ErrNegativeVertex = errors.New("graph: vertex id must be non-negative")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("graph: vertex not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("graph: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted.
	ErrMultiEdgeNotAllowed = errors.New("graph: multi-edges not allowed")
)

// Edge is an unordered vertex pair stored with U < V.
type Edge struct {
	U, V int
}

// NewEdge returns the canonical Edge for the pair (a, b).
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{U: a, V: b}
}

// Graph is an undirected, unweighted simple graph over integer ids.
//
// A Graph is not safe for concurrent mutation; it is built once from a grid
// and then only read.
type Graph struct {
	// adj[id] is the neighbour set of id. Presence of the key marks a vertex.
	adj   map[int]map[int]struct{}
	edges int
}

// New creates an empty Graph.
// Complexity: O(1).
func New() *Graph {
	return &Graph{adj: make(map[int]map[int]struct{})}
}
