package game

import "golang.org/x/exp/rand"

// PlayRandomMoves plays up to n uniformly random legal moves, alternating players starting with
// first. It stops early if the board fills up or a move completes a line. It returns the player
// to move next.
func (b *Board) PlayRandomMoves(rng *rand.Rand, n int, first Cell) Cell {
	player := first
	for i := 0; i < n; i++ {
		moves := b.LegalMoves()
		if len(moves) == 0 {
			break
		}
		m := moves[rng.Intn(len(moves))]
		b.PlaceToken(player, m.X, m.Y)
		player = player.Opponent()
		if b.Assess(X).Outcome != Undecided {
			break
		}
	}
	return player
}
