package engine

import (
	"connect3d/experiments/metrics"
	"connect3d/game"
	"connect3d/searcher"
	"context"
)

// Agent is a searcher bound to the player whose moves it recommends.
type Agent interface {
	searcher.Searcher
	MaxPlayer() game.Cell
}

type Runner interface {
	// Run plays until one side completes a line or the board is full. Winner is Empty for a draw.
	Run(ctx context.Context) (winner game.Cell, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
