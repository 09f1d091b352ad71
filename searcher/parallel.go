package searcher

import (
	"connect3d/experiments/metrics"
	"connect3d/game"
	"context"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// searchParallel searches every root move on its own clone of the board with a full window, so
// each child value is exact. Picking the first strict maximum in x-then-y order then gives the
// same move and score as the sequential search, whose root records exactly that child.
func (m *Minimax) searchParallel(ctx context.Context, board *game.Board, collector metrics.Collector) (Result, error) {
	// Root terminal checks, same order as minimax
	collector.AddNode()
	rootScore := board.Evaluate(m.maxPlayer)
	if m.maxDepth == 0 || !board.MovePossible() || rootScore == game.Win || rootScore == game.Lose {
		collector.AddLeaf()
		return Result{Score: rootScore}, nil
	}

	moves := board.LegalMoves()
	scores := make([]int, len(moves))
	opponent := m.maxPlayer.Opponent()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.goroutines)
	for i, move := range moves {
		g.Go(func() error {
			b := board.Clone()
			b.PlaceToken(m.maxPlayer, move.X, move.Y)
			s := m.newSearch(gctx, b, collector)
			scores[i] = s.minimax(1, opponent, math.MinInt, math.MaxInt)
			if s.stopped {
				return gctx.Err()
			}
			log.Debug().Msgf("root move %s scored %d", move, scores[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		return Result{}, err
	}

	result := Result{Score: math.MinInt}
	for i, move := range moves {
		if scores[i] > result.Score {
			result = Result{Move: move, Score: scores[i], Found: true}
		}
	}
	return result, nil
}
