package engine

import (
	"connect3d/game"
	"connect3d/searcher"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newAgents(depthX, depthO int) []Agent {
	return []Agent{
		searcher.NewMinimax(depthX, game.X, searcher.WithMetrics()),
		searcher.NewMinimax(depthO, game.O, searcher.WithMetrics()),
	}
}

func TestLocalEngineInit(t *testing.T) {
	t.Run("requires one agent per player", func(t *testing.T) {
		board := game.NewStandardBoard()
		require.Panics(t, func() {
			LocalEngine(board, []Agent{searcher.NewMinimax(1, game.X)})
		})
		require.Panics(t, func() {
			LocalEngine(board, []Agent{searcher.NewMinimax(1, game.X), searcher.NewMinimax(2, game.X)})
		})
	})

	t.Run("maps agents to players", func(t *testing.T) {
		e := LocalEngine(game.NewStandardBoard(), newAgents(1, 2))
		require.Equal(t, game.X, e.Agents[game.X].MaxPlayer())
		require.Equal(t, game.O, e.Agents[game.O].MaxPlayer())
		require.Equal(t, game.X, e.starting)
	})
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("plays a game to the end", func(t *testing.T) {
		board := game.NewBoard(game.Dimensions{Length: 4, Width: 4, Height: 4})
		e := LocalEngine(board, newAgents(2, 1), WithRandomOpening(2, 17))

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, winner, gameMetric.Winner)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.NotEmpty(t, gameMetric.ID)
		require.Equal(t, 2+len(moveMetrics), board.Count(game.X)+board.Count(game.O),
			"Board should hold the opening moves and every agent move")
		if winner == game.Empty {
			require.False(t, board.MovePossible(), "A draw needs a full board")
		} else {
			require.Equal(t, winner, Winner(board))
		}
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			require.Greater(t, mm.Nodes, int64(0), "Agents were built with metrics")
		}
	})

	t.Run("players alternate from the starting player", func(t *testing.T) {
		board := game.NewBoard(game.Dimensions{Length: 4, Width: 4, Height: 4})
		e := LocalEngine(board, newAgents(1, 1), WithStartingPlayer(game.O))

		_, _, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.NotEmpty(t, moveMetrics)
		for i, mm := range moveMetrics {
			want := game.O
			if i%2 == 1 {
				want = game.X
			}
			require.Equal(t, want, mm.Player, "step %d", mm.Step)
		}
	})

	t.Run("falls back to the first legal move without a recommendation", func(t *testing.T) {
		board := game.NewBoard(game.Dimensions{Length: 1, Width: 2, Height: 2})
		e := LocalEngine(board, newAgents(0, 0))

		winner, _, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.Empty, winner, "No line fits on this board")
		require.Len(t, moveMetrics, 4)
		require.Equal(t, game.Move{X: 0, Y: 0}, moveMetrics[0].Move)
		require.Equal(t, game.Move{X: 0, Y: 0}, moveMetrics[1].Move)
		require.Equal(t, game.Move{X: 0, Y: 1}, moveMetrics[2].Move)
		require.False(t, board.MovePossible())
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := LocalEngine(game.NewStandardBoard(), newAgents(2, 2))

		_, _, _, err := e.Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestWinner(t *testing.T) {
	board := game.NewStandardBoard()
	require.Equal(t, game.Empty, Winner(board))

	for i := 0; i < 4; i++ {
		board.PlaceToken(game.O, 0, 0)
	}
	require.Equal(t, game.O, Winner(board))
}
