package graph_test

import (
	"fmt"

	"github.com/katalvlaran/crossgrid/graph"
)

// ExampleGraph_CycleRank shows the intersection graph of four words where
// two across words are both crossed by two down words.
//
//	0 ─ 2
//	│   │
//	3 ─ 1
func ExampleGraph_CycleRank() {
	g := graph.New()
	_ = g.AddEdge(0, 2)
	_ = g.AddEdge(0, 3)
	_ = g.AddEdge(1, 2)
	_ = g.AddEdge(1, 3)
	_ = g.AddVertex(4)

	fmt.Println("components:", g.Components())
	fmt.Println("cycle rank:", g.CycleRank())

	// Output:
	// components: [[0 1 2 3] [4]]
	// cycle rank: 1
}
