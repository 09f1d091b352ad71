package game

import "fmt"

// Board is a gravity-fed 3D grid. Every (x, y) column is a stack along z: occupied cells are
// contiguous from z=0 upwards. PlaceToken and RemoveToken are the only mutators during play and
// both preserve that shape.
//
// A Board is not safe for concurrent use. Parallel searches work on clones.
type Board struct {
	dims  Dimensions
	cells []Cell // indexed by (x*Width+y)*Height + z
}

// NewBoard creates an empty board. It panics if dims are not all positive.
func NewBoard(dims Dimensions) *Board {
	if err := dims.Validate(); err != nil {
		panic(err.Error())
	}
	return &Board{
		dims:  dims,
		cells: make([]Cell, dims.Length*dims.Width*dims.Height),
	}
}

// NewStandardBoard creates an empty 4x7x6 board.
func NewStandardBoard() *Board {
	return NewBoard(StandardDimensions)
}

func (b *Board) Dimensions() Dimensions { return b.dims }

// Length is the extent along x.
func (b *Board) Length() int { return b.dims.Length }

// Width is the extent along y.
func (b *Board) Width() int { return b.dims.Width }

// Reset clears every cell.
func (b *Board) Reset() {
	clear(b.cells)
}

// PlaceToken drops player's token into column (x, y). It returns false and leaves the board
// untouched if the column is full. Out-of-range coordinates and a player other than X or O panic.
func (b *Board) PlaceToken(player Cell, x, y int) bool {
	if !player.IsPlayer() {
		panic(fmt.Sprintf("cannot place token for %q", player))
	}
	col := b.column(x, y)
	for z := range col {
		if col[z] == Empty {
			col[z] = player
			return true
		}
	}
	return false
}

// RemoveToken clears the topmost token of column (x, y). An empty column is left as is.
func (b *Board) RemoveToken(x, y int) {
	col := b.column(x, y)
	for z := len(col) - 1; z >= 0; z-- {
		if col[z] != Empty {
			col[z] = Empty
			return
		}
	}
}

// MovePossible reports whether some column still has room. Only the top cell of each column is
// inspected, which is exact as long as columns are contiguous stacks.
func (b *Board) MovePossible() bool {
	h := b.dims.Height
	for i := h - 1; i < len(b.cells); i += h {
		if b.cells[i] == Empty {
			return true
		}
	}
	return false
}

// CanPlace reports whether column (x, y) has room.
func (b *Board) CanPlace(x, y int) bool {
	col := b.column(x, y)
	return col[len(col)-1] == Empty
}

// ColumnHeight is the number of tokens stacked in column (x, y).
func (b *Board) ColumnHeight(x, y int) int {
	col := b.column(x, y)
	n := 0
	for n < len(col) && col[n] != Empty {
		n++
	}
	return n
}

// LegalMoves lists the columns with room, in x-then-y order.
func (b *Board) LegalMoves() []Move {
	moves := []Move{}
	for x := 0; x < b.dims.Length; x++ {
		for y := 0; y < b.dims.Width; y++ {
			if b.CanPlace(x, y) {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	return moves
}

// At returns the cell at (x, y, z). Out-of-range coordinates panic.
func (b *Board) At(x, y, z int) Cell {
	if z < 0 || z >= b.dims.Height {
		panic(fmt.Sprintf("layer %d out of range for %s board", z, b.dims))
	}
	return b.column(x, y)[z]
}

// Count returns the number of cells holding c.
func (b *Board) Count(c Cell) int {
	n := 0
	for _, cell := range b.cells {
		if cell == c {
			n++
		}
	}
	return n
}

func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{dims: b.dims, cells: cells}
}

// Equal reports whether both boards have the same dimensions and contents.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.dims != other.dims {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (b *Board) column(x, y int) []Cell {
	if x < 0 || x >= b.dims.Length || y < 0 || y >= b.dims.Width {
		panic(fmt.Sprintf("column (%d,%d) out of range for %s board", x, y, b.dims))
	}
	start := (x*b.dims.Width + y) * b.dims.Height
	return b.cells[start : start+b.dims.Height]
}

// set writes a cell directly, bypassing gravity. Used by the snapshot loader, which hydrates
// layers in file order.
func (b *Board) set(x, y, z int, c Cell) {
	b.cells[b.index(x, y, z)] = c
}
