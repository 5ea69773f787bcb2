package render

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/crossgrid/grid"
	"github.com/katalvlaran/crossgrid/score"
	"github.com/katalvlaran/crossgrid/wordbank"
)

// Entry is one numbered word of a layout. Start is relative to the top-left
// corner of the layout.
type Entry struct {
	Number int                `json:"number" yaml:"number"`
	Text   string             `json:"text" yaml:"text"`
	Clue   string             `json:"clue,omitempty" yaml:"clue,omitempty"`
	Dir    wordbank.Direction `json:"direction" yaml:"direction"`
	Start  grid.Coord         `json:"start" yaml:"start"`
	Len    int                `json:"length" yaml:"length"`
}

// Layout is the renderer-neutral description of a finished grid.
type Layout struct {
	RunID string          `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Rows  int             `json:"rows" yaml:"rows"`
	Cols  int             `json:"cols" yaml:"cols"`
	Cells []string        `json:"cells" yaml:"cells"` // one string per row, Block for non-letters
	Words []Entry         `json:"words" yaml:"words"`
	Score score.Breakdown `json:"score" yaml:"score"`
}

// Export describes g with clue numbers assigned in reading order: each cell
// where at least one word starts gets the next number, shared by an across
// and a down word starting there. Entries are sorted by number, across
// first.
func Export(g *grid.Grid, bd score.Breakdown) Layout {
	rows, cols := g.Dimensions()
	l := Layout{Rows: rows, Cols: cols, Cells: cellLines(g), Score: bd}
	if rows == 0 {
		return l
	}
	origin := g.Bounds().Min

	ps := g.Placements()
	slices.SortFunc(ps, func(a, b grid.Placement) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Dir, b.Dir)
	})

	n := 0
	var last grid.Coord
	for i, p := range ps {
		if i == 0 || p.Start != last {
			n++
			last = p.Start
		}
		w := g.Bank().Word(p.Word)
		l.Words = append(l.Words, Entry{
			Number: n,
			Text:   w.Text,
			Clue:   w.Clue,
			Dir:    p.Dir,
			Start:  grid.Coord{Row: p.Start.Row - origin.Row, Col: p.Start.Col - origin.Col},
			Len:    p.Len,
		})
	}
	return l
}

func cellLines(g *grid.Grid) []string {
	r := lines(g, false)
	if r == nil {
		return []string{}
	}
	return r
}

// JSON encodes l with two-space indentation.
func (l Layout) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: json: %w", err)
	}
	return append(data, '\n'), nil
}

// YAML encodes l.
func (l Layout) YAML() ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("render: yaml: %w", err)
	}
	return data, nil
}

// Clues lists the entries under ACROSS and DOWN headings. Words without a
// clue show their text in brackets.
func (l Layout) Clues() string {
	var b strings.Builder
	for _, d := range []wordbank.Direction{wordbank.Across, wordbank.Down} {
		header := false
		for _, e := range l.Words {
			if e.Dir != d {
				continue
			}
			if !header {
				if b.Len() > 0 {
					b.WriteByte('\n')
				}
				b.WriteString(strings.ToUpper(d.String()))
				b.WriteByte('\n')
				header = true
			}
			clue := e.Clue
			if clue == "" {
				clue = "[" + e.Text + "]"
			}
			fmt.Fprintf(&b, "%3d. %s (%d)\n", e.Number, clue, e.Len)
		}
	}
	return b.String()
}
