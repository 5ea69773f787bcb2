package grid

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/crossgrid/wordbank"
)

// Sentinel errors. Every *PlacementError matches ErrInvalidPlacement and its
// own Kind under errors.Is.
var (
	// ErrInvalidPlacement is the umbrella for all rejected placements.
	ErrInvalidPlacement = errors.New("grid: invalid placement")

	// ErrOutOfBounds indicates a direction constraint or maximum size violation.
	ErrOutOfBounds = errors.New("grid: placement out of bounds")

	// ErrLetterConflict indicates a covered cell holding another letter or a block.
	ErrLetterConflict = errors.New("grid: letter conflict")

	// ErrIllegalAdjacency indicates the word would touch letters it does not cross.
	ErrIllegalAdjacency = errors.New("grid: illegal adjacency")

	// ErrDuplicateWord indicates the word is already placed.
	ErrDuplicateWord = errors.New("grid: word already placed")

	// ErrUnknownWord indicates a word id outside the bank.
	ErrUnknownWord = errors.New("grid: unknown word")

	// ErrNotPlaced is returned by Remove for a word that is not on the grid.
	ErrNotPlaced = errors.New("grid: word not placed")
)

// PlacementError describes a rejected placement.
type PlacementError struct {
	Kind   error
	Word   wordbank.ID
	Text   string
	At     Coord
	Dir    wordbank.Direction
	Reason string
}

func (e *PlacementError) Error() string {
	msg := fmt.Sprintf("%v: %q %s at %s", e.Kind, e.Text, e.Dir, e.At)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap returns the kind sentinel.
func (e *PlacementError) Unwrap() error { return e.Kind }

// Is matches ErrInvalidPlacement.
func (e *PlacementError) Is(target error) bool { return target == ErrInvalidPlacement }
