package searcher

import (
	"connect3d/experiments/metrics"
	"connect3d/game"
	"context"
	"errors"
)

var ErrNoMove = errors.New("no move found")

type Searcher interface {
	// Search recommends a move for the board. The board is restored before Search returns.
	Search(ctx context.Context, board *game.Board) (Result, error)
}

// Result is the outcome of one top-level search. Found is false when the root never recorded a
// move: zero depth, a full board, or a position that is already decided. Score is then the
// static evaluation of the root.
type Result struct {
	Move    game.Move
	Score   int
	Found   bool
	Metrics metrics.SearchMetric
}

// BestMove returns the recommended move, or ErrNoMove.
func (r Result) BestMove() (game.Move, error) {
	if !r.Found {
		return game.Move{}, ErrNoMove
	}
	return r.Move, nil
}

// Outcome maps the score back onto the tagged form.
func (r Result) Outcome() game.Outcome {
	switch r.Score {
	case game.Win:
		return game.Won
	case game.Lose:
		return game.Lost
	default:
		return game.Undecided
	}
}
