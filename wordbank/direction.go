package wordbank

import (
	"fmt"
	"strings"
)

// Direction is a word orientation. As a placement it is Across or Down; as a
// word constraint Either means "no requirement".
type Direction uint8

const (
	// Either leaves the orientation free. It is only valid as a constraint.
	Either Direction = iota
	// Across runs left to right along a row.
	Across
	// Down runs top to bottom along a column.
	Down
)

// Perpendicular returns the crossing orientation. Either maps to Either.
func (d Direction) Perpendicular() Direction {
	switch d {
	case Across:
		return Down
	case Down:
		return Across
	default:
		return Either
	}
}

// Allows reports whether a word constrained to d may be placed as x.
func (d Direction) Allows(x Direction) bool {
	return d == Either || d == x
}

// Step returns the (row, col) increment of one letter in direction d.
func (d Direction) Step() (dr, dc int) {
	if d == Down {
		return 1, 0
	}
	return 0, 1
}

func (d Direction) String() string {
	switch d {
	case Across:
		return "across"
	case Down:
		return "down"
	default:
		return "either"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDirection accepts across/a, down/d and either/empty, case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "either", "any":
		return Either, nil
	case "across", "a":
		return Across, nil
	case "down", "d":
		return Down, nil
	}
	return Either, fmt.Errorf("%w: unknown direction %q", ErrInput, s)
}
