// Package graph provides the small undirected graph used as the
// intersection view of a crossword grid.
//
// What:
//
//   - Vertices are small non-negative integer ids (grid slot ids).
//   - Edges are unordered id pairs; self-loops and parallel edges are rejected.
//   - Components partitions vertices into connected groups (BFS).
//   - CycleRank returns the first Betti number E − V + C.
//   - Leaves lists vertices of degree ≤ 1 inside components of size > 1.
//
// Why:
//
//   - Crossing words reference each other only through id pairs held in this
//     separate structure, so a grid clone never has to rewire pointers.
//
// Determinism:
//
//   - Vertices, Neighbors, Components and Leaves return ascending ids;
//     components are ordered by their smallest vertex.
//
// Complexity:
//
//   - AddVertex/AddEdge/HasEdge: O(1) amortized.
//   - Components, CycleRank: O(V + E).
//
// Errors:
//
//   - ErrNegativeVertex: vertex id below zero.
//   - ErrLoopNotAllowed: edge from a vertex to itself.
//   - ErrMultiEdgeNotAllowed: second edge between the same pair.
//   - ErrVertexNotFound: query on an unknown vertex.
package graph
