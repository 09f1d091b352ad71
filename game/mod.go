package game

import (
	"errors"
	"fmt"
	"math"
)

// Cell is the content of a single board position. The zero value is Empty.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// Win and Lose are the flattened scores of a decided position. One unit of headroom is kept on
// each side so that negation and comparison against math.MinInt/math.MaxInt never overflow.
const (
	Win  = math.MaxInt - 1
	Lose = math.MinInt + 1
)

var (
	ErrInvalidPlayer     = errors.New("invalid player")
	ErrInvalidDimensions = errors.New("invalid board dimensions")
)

// Opponent returns the other player identity. Empty has no opponent and is returned unchanged.
func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// IsPlayer reports whether c is one of the two token identities.
func (c Cell) IsPlayer() bool {
	return c == X || c == O
}

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// ParsePlayer maps "X" or "O" (first rune only, case-sensitive) to a player identity.
func ParsePlayer(s string) (Cell, error) {
	if s == "" {
		return Empty, fmt.Errorf("%w: empty", ErrInvalidPlayer)
	}
	c := cellFromByte(s[0])
	if c == Empty {
		return Empty, fmt.Errorf("%w: %q", ErrInvalidPlayer, s)
	}
	return c, nil
}

func cellFromByte(b byte) Cell {
	switch b {
	case 'X':
		return X
	case 'O':
		return O
	default:
		return Empty
	}
}

// Dimensions are the extents of a board: Length along x, Width along y, Height along z (the
// stacking axis).
type Dimensions struct {
	Length int
	Width  int
	Height int
}

// StandardDimensions is the 4x7x6 board.
var StandardDimensions = Dimensions{Length: 4, Width: 7, Height: 6}

func (d Dimensions) Validate() error {
	if d.Length <= 0 || d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, d.Length, d.Width, d.Height)
	}
	return nil
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%dx%d", d.Length, d.Width, d.Height)
}
