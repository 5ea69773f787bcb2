// File: options.go
// Role: Functional options and the adjacency rule selector.
// Options panic on meaningless inputs; grid operations never panic.

package grid

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Adjacency selects how strictly parallel neighbours are policed.
type Adjacency uint8

const (
	// AdjacencyStrict requires every pair of orthogonally adjacent letters to
	// belong to one word running through both. This is the classic crossword
	// rule: no incidental two-letter runs.
	AdjacencyStrict Adjacency = iota

	// AdjacencySharedCrossing also allows a word to run alongside a parallel
	// word on the neighbouring line, provided some perpendicular word already
	// crosses both of them. End caps and the colinear rule still apply.
	AdjacencySharedCrossing
)

func (a Adjacency) String() string {
	if a == AdjacencySharedCrossing {
		return "shared-crossing"
	}
	return "strict"
}

// MarshalText implements encoding.TextMarshaler.
func (a Adjacency) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Adjacency) UnmarshalText(b []byte) error {
	v, err := ParseAdjacency(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAdjacency accepts "strict" (or empty) and "shared-crossing".
func ParseAdjacency(s string) (Adjacency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return AdjacencyStrict, nil
	case "shared-crossing", "shared_crossing", "shared":
		return AdjacencySharedCrossing, nil
	}
	return AdjacencyStrict, fmt.Errorf("grid: unknown adjacency rule %q", s)
}

// Option customizes a new Grid.
type Option func(*config)

// config is shared read-only by a grid and all grids derived from it.
type config struct {
	log       *zap.Logger
	maxRows   int
	maxCols   int
	blocked   []Coord
	adjacency Adjacency
}

func defaultConfig() *config {
	return &config{log: zap.NewNop(), adjacency: AdjacencyStrict}
}

// WithLogger routes structured warnings to l. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("grid: WithLogger(nil)")
	}
	return func(c *config) { c.log = l }
}

// WithMaxSize caps the bounding rectangle of letters. Zero leaves a
// dimension unbounded. Panics on negative values.
func WithMaxSize(rows, cols int) Option {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("grid: WithMaxSize(%d, %d)", rows, cols))
	}
	return func(c *config) {
		c.maxRows = rows
		c.maxCols = cols
	}
}

// WithBlocked marks cells as permanently unusable.
func WithBlocked(cells ...Coord) Option {
	return func(c *config) { c.blocked = append(c.blocked, cells...) }
}

// WithAdjacency selects the adjacency rule.
func WithAdjacency(a Adjacency) Option {
	if a != AdjacencyStrict && a != AdjacencySharedCrossing {
		panic(fmt.Sprintf("grid: WithAdjacency(%d)", a))
	}
	return func(c *config) { c.adjacency = a }
}
