// File: parse.go
// Role: Building a grid from a layout drawn as text.
// Determinism:
//   - Words are allocated slots in reading order of their first letter,
//     across before down.

package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/crossgrid/wordbank"
)

// ErrMalformedLayout is returned by Parse for text that does not describe a
// crossword layout.
var ErrMalformedLayout = errors.New("grid: malformed layout")

// Parse builds a grid over bank from a layout drawn one row per line, the
// first line at row 0 and the first column at column 0. Letters (either
// case) fill cells; a space, '.' or '#' leaves a cell empty.
//
// Every maximal run of two or more letters across or down is a placed
// word and must be in bank, so parallel words drawn side by side also
// spell the words running through them. Any two touching letters belong to
// a common word and the result satisfies both adjacency rules. opts apply
// as for New.
//
// Errors:
//   - ErrMalformedLayout: an unexpected character, or a letter that is part
//     of no word.
//   - *PlacementError of kind ErrUnknownWord, ErrDuplicateWord,
//     ErrOutOfBounds or ErrLetterConflict for a run the bank or the options
//     do not allow.
//
// Complexity: O(C) for C characters of text.
func Parse(bank *wordbank.Bank, text string, opts ...Option) (*Grid, error) {
	g := New(bank, opts...)
	lines := strings.Split(strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n"), "\n")

	letters := make(map[Coord]byte)
	width := 0
	for r, line := range lines {
		width = max(width, len(line))
		for c := 0; c < len(line); c++ {
			ch := line[c]
			switch {
			case ch == ' ' || ch == '.' || ch == '#':
			case 'a' <= ch && ch <= 'z':
				letters[Coord{Row: r, Col: c}] = ch - 'a' + 'A'
			case 'A' <= ch && ch <= 'Z':
				letters[Coord{Row: r, Col: c}] = ch
			default:
				return nil, fmt.Errorf("%w: line %d column %d: unexpected %q", ErrMalformedLayout, r+1, c+1, ch)
			}
		}
	}

	ng := g.clone()
	for r := range lines {
		for c := 0; c < width; c++ {
			start := Coord{Row: r, Col: c}
			if letters[start] == 0 {
				continue
			}
			for _, d := range []wordbank.Direction{wordbank.Across, wordbank.Down} {
				dr, dc := d.Step()
				if letters[start.Add(-dr, -dc)] != 0 || letters[start.Add(dr, dc)] == 0 {
					continue
				}
				var run []byte
				for at := start; letters[at] != 0; at = at.Add(dr, dc) {
					run = append(run, letters[at])
				}
				if err := ng.parsed(string(run), start, d); err != nil {
					return nil, err
				}
			}
		}
	}

	for at := range letters {
		if st := ng.get(at); st.owner(wordbank.Across) == NoSlot && st.owner(wordbank.Down) == NoSlot {
			return nil, fmt.Errorf("%w: letter %c at %s is part of no word", ErrMalformedLayout, st.letter, at)
		}
	}
	ng.freeze()
	return ng, nil
}

// parsed adds one run read by Parse to the writable grid g.
func (g *Grid) parsed(text string, at Coord, dir wordbank.Direction) error {
	fail := func(kind error, id wordbank.ID, reason string) error {
		return &PlacementError{Kind: kind, Word: id, Text: text, At: at, Dir: dir, Reason: reason}
	}
	id, ok := g.bank.Lookup(text)
	if !ok {
		return fail(ErrUnknownWord, -1, "not in the word bank")
	}
	if g.IsPlaced(id) {
		return fail(ErrDuplicateWord, id, "")
	}
	w := g.bank.Word(id)
	if !w.Required.Allows(dir) {
		return fail(ErrOutOfBounds, id, "word must run "+w.Required.String())
	}
	p := Placement{Slot: NoSlot, Word: id, Start: at, Dir: dir, Len: w.Len()}
	if reason := g.checkSize(p); reason != "" {
		return fail(ErrOutOfBounds, id, reason)
	}
	if reason := g.checkLetters(p, w.Text); reason != "" {
		return fail(ErrLetterConflict, id, reason)
	}
	p.Slot = g.allocSlot()
	g.slots[p.Slot] = slot{word: id, start: at, dir: dir, len: p.Len, used: true}
	g.byWord[id] = p.Slot
	g.write(p, w.Text)
	g.bounds = g.bounds.Union(p.Span())
	return nil
}
