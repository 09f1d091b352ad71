package game

import "fmt"

// LineLength is the number of aligned tokens that wins the game.
const LineLength = 4

// Outcome tags an evaluation as decided or not.
type Outcome int

const (
	Undecided Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "undecided"
	}
}

// Evaluation is a static assessment from one player's perspective. Score is only meaningful
// when Outcome is Undecided.
type Evaluation struct {
	Outcome Outcome
	Score   int
}

// Int flattens the evaluation onto the integer scale used by the searcher, mapping decided
// outcomes to the Win/Lose sentinels.
func (e Evaluation) Int() int {
	switch e.Outcome {
	case Won:
		return Win
	case Lost:
		return Lose
	default:
		return e.Score
	}
}

// Direction is a step vector with components in {-1, 0, 1}.
type Direction struct {
	DX, DY, DZ int
}

// Directions holds the 26 non-zero step vectors in dx, dy, dz order. Each undirected line
// appears twice, once per orientation.
var Directions = func() []Direction {
	dirs := make([]Direction, 0, 26)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				dirs = append(dirs, Direction{DX: dx, DY: dy, DZ: dz})
			}
		}
	}
	return dirs
}()

// lineWeights[k] is 5^k, the value of an uncontested line holding k own tokens.
var lineWeights = [LineLength + 1]int{1, 5, 25, 125, 625}

// Evaluate scores the board from player's perspective: Win or Lose if some line of four is
// complete, otherwise the heuristic sum over all lines. See Assess.
func (b *Board) Evaluate(player Cell) int {
	return b.Assess(player).Int()
}

// Assess scans every line of four that starts at some cell and runs in one of the 26
// directions without leaving the board. The scan runs in x, y, z, direction order and stops at
// the first complete line: an opponent line means Lost, an own line means Won. Otherwise each
// line free of opponent tokens contributes 5^k for its k own tokens, and contested lines
// contribute nothing. Every line is visited from both ends, so the sum is halved.
func (b *Board) Assess(player Cell) Evaluation {
	if !player.IsPlayer() {
		panic(fmt.Sprintf("cannot evaluate board for %q", player))
	}

	total := 0
	for x := 0; x < b.dims.Length; x++ {
		for y := 0; y < b.dims.Width; y++ {
			for z := 0; z < b.dims.Height; z++ {
				for _, d := range Directions {
					outcome, score, ok := b.lineScore(player, x, y, z, d)
					if !ok {
						continue
					}
					if outcome != Undecided {
						return Evaluation{Outcome: outcome}
					}
					total += score
				}
			}
		}
	}
	return Evaluation{Outcome: Undecided, Score: total / 2}
}

// lineScore evaluates the line of four starting at (x, y, z) in direction d. ok is false if
// the far end of the line falls off the board.
func (b *Board) lineScore(player Cell, x, y, z int, d Direction) (outcome Outcome, score int, ok bool) {
	last := LineLength - 1
	if !b.inBounds(x+last*d.DX, y+last*d.DY, z+last*d.DZ) {
		return Undecided, 0, false
	}

	enemy := player.Opponent()
	self, other := 0, 0
	for i := 0; i < LineLength; i++ {
		switch b.cells[b.index(x+i*d.DX, y+i*d.DY, z+i*d.DZ)] {
		case player:
			self++
		case enemy:
			other++
		}
	}

	switch {
	case other == LineLength:
		return Lost, 0, true
	case self == LineLength:
		return Won, 0, true
	case other == 0:
		return Undecided, lineWeights[self], true
	default:
		return Undecided, 0, true
	}
}

func (b *Board) inBounds(x, y, z int) bool {
	return x >= 0 && x < b.dims.Length &&
		y >= 0 && y < b.dims.Width &&
		z >= 0 && z < b.dims.Height
}

func (b *Board) index(x, y, z int) int {
	return (x*b.dims.Width+y)*b.dims.Height + z
}
