// meta/meta.go
package meta

// DefaultSnapshot is the board file loaded when no path is given.
const DefaultSnapshot = "data.txt"

// DefaultDepth is the minimax search depth in plies.
const DefaultDepth = 3

// DefaultPlayer is the maximizing player.
const DefaultPlayer = "X"

// DefaultGoroutines keeps the search sequential.
const DefaultGoroutines = 1

const DefaultLogLevel = "info"

// Board extents: x, y, and the stacking axis z.
const (
	DefaultLength = 4
	DefaultWidth  = 7
	DefaultHeight = 6
)
