package domain

import "fmt"

// Direction is the head movement applied after a write.
type Direction string

const (
	Right Direction = "R"
	Left  Direction = "L"
	Stay  Direction = "S"
)

// Valid reports whether d is one of the three movement codes.
func (d Direction) Valid() bool {
	switch d {
	case Right, Left, Stay:
		return true
	}
	return false
}

// Delta returns the head offset for the direction.
func (d Direction) Delta() int {
	switch d {
	case Right:
		return 1
	case Left:
		return -1
	}
	return 0
}

// ParseDirection converts a textual direction code into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q (use 'R', 'L' or 'S')", ErrInvalidDirection, s)
	}
	return d, nil
}
