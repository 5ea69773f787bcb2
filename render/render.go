// Package render turns a grid into text, a styled terminal view or a
// structured Layout for export.
//
// All views cover the bounding rectangle of letters. Any cell without a
// letter is shown as a block, which also closes off every word end.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/crossgrid/grid"
)

// Block is the text for a non-letter cell.
const Block = '#'

// Text renders the letters of g row by row with Block for every other cell.
// An empty grid renders as "".
func Text(g *grid.Grid) string {
	return strings.Join(lines(g, false), "\n")
}

// Framed is Text surrounded by a ring of blocks, so word ends on the edge
// of the bounding rectangle are closed off too.
func Framed(g *grid.Grid) string {
	return strings.Join(lines(g, true), "\n")
}

func lines(g *grid.Grid, frame bool) []string {
	b := g.Bounds()
	if b.Empty() {
		return nil
	}
	if frame {
		b = grid.Rect{Min: b.Min.Add(-1, -1), Max: b.Max.Add(1, 1)}
	}
	out := make([]string, 0, b.Rows())
	line := make([]byte, b.Cols())
	for r := b.Min.Row; r <= b.Max.Row; r++ {
		for c := b.Min.Col; c <= b.Max.Col; c++ {
			line[c-b.Min.Col] = Block
			if l := g.Cell(grid.Coord{Row: r, Col: c}).Letter; l != 0 {
				line[c-b.Min.Col] = l
			}
		}
		out = append(out, string(line))
	}
	return out
}

var (
	letterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("255")).
			Padding(0, 1)
	crossStyle = letterStyle.
			Background(lipgloss.Color("229")).
			Bold(true)
	blockStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Padding(0, 1)
)

// Styled renders g for a terminal: letters on light cells, intersections
// highlighted, blocks dark.
func Styled(g *grid.Grid) string {
	b := g.Bounds()
	if b.Empty() {
		return ""
	}
	out := make([]string, 0, b.Rows())
	for r := b.Min.Row; r <= b.Max.Row; r++ {
		cells := make([]string, 0, b.Cols())
		for c := b.Min.Col; c <= b.Max.Col; c++ {
			cell := g.Cell(grid.Coord{Row: r, Col: c})
			switch {
			case cell.Letter == 0:
				cells = append(cells, blockStyle.Render(" "))
			case cell.IsIntersection():
				cells = append(cells, crossStyle.Render(string(cell.Letter)))
			default:
				cells = append(cells, letterStyle.Render(string(cell.Letter)))
			}
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}
