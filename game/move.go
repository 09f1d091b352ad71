package game

import "fmt"

// Move is a column of the board, addressed by its (x, y) position. The z coordinate follows
// from gravity.
type Move struct {
	X int
	Y int
}

func (m Move) String() string {
	return fmt.Sprintf("{%d,%d}", m.X, m.Y)
}
