// Command crossgrid lays out crossword grids from a word list.
//
// Usage:
//
//	crossgrid generate words.txt --config run.yaml --format styled
//	crossgrid config --max-rounds 40
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd(&app{}).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
