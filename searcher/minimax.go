package searcher

import (
	"connect3d/experiments/metrics"
	"connect3d/game"
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// Minimax is a depth-limited minimax search with alpha-beta pruning. Its parameters are fixed at
// construction, so one Minimax may serve any number of searches.
type Minimax struct {
	maxDepth    int
	maxPlayer   game.Cell
	goroutines  int
	withMetrics bool
}

// NewMinimax panics if maxDepth is negative or maxPlayer is not X or O.
func NewMinimax(maxDepth int, maxPlayer game.Cell, options ...Option) *Minimax {
	if maxDepth < 0 {
		panic(fmt.Sprintf("negative search depth %d", maxDepth))
	}
	if !maxPlayer.IsPlayer() {
		panic(fmt.Sprintf("invalid maximizing player %q", maxPlayer))
	}

	m := &Minimax{ // Default values
		maxDepth:   maxDepth,
		maxPlayer:  maxPlayer,
		goroutines: 1,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) MaxDepth() int { return m.maxDepth }

func (m *Minimax) MaxPlayer() game.Cell { return m.maxPlayer }

// Search runs minimax from the board with alpha=MinInt and beta=MaxInt. Moves are tried in
// x-then-y order and only a strictly better score replaces the current best, so ties go to the
// smallest (x, y). The board is mutated in place and restored on return, including when ctx is
// cancelled, in which case ctx.Err() is returned.
func (m *Minimax) Search(ctx context.Context, board *game.Board) (Result, error) {
	collector := metrics.NewDummyCollector()
	if m.withMetrics {
		collector = metrics.NewCollector()
	}
	collector.Start(m.maxDepth, m.goroutines)

	var (
		result Result
		err    error
	)
	if m.goroutines > 1 {
		result, err = m.searchParallel(ctx, board, collector)
	} else {
		result, err = m.searchSequential(ctx, board, collector)
	}
	if err != nil {
		return Result{}, err
	}
	result.Metrics = collector.Complete()

	log.Debug().
		Int("depth", m.maxDepth).
		Str("player", m.maxPlayer.String()).
		Bool("found", result.Found).
		Str("move", result.Move.String()).
		Int("score", result.Score).
		Msg("search completed")
	return result, nil
}

func (m *Minimax) searchSequential(ctx context.Context, board *game.Board, collector metrics.Collector) (Result, error) {
	s := m.newSearch(ctx, board, collector)
	score := s.minimax(0, m.maxPlayer, math.MinInt, math.MaxInt)
	if s.stopped {
		return Result{}, ctx.Err()
	}
	if !s.found {
		return Result{Score: score}, nil
	}
	return Result{Move: s.best, Score: s.bestScore, Found: true}, nil
}

func (m *Minimax) newSearch(ctx context.Context, board *game.Board, collector metrics.Collector) *search {
	return &search{
		board:     board,
		maxDepth:  m.maxDepth,
		maxPlayer: m.maxPlayer,
		done:      ctx.Done(),
		metrics:   collector,
	}
}

// search is the state of one make/unmake traversal over a single board.
type search struct {
	board     *game.Board
	maxDepth  int
	maxPlayer game.Cell
	done      <-chan struct{}
	stopped   bool
	metrics   metrics.Collector

	// Recorded at the root only
	best      game.Move
	bestScore int
	found     bool
}

// minimax returns the value of the board for maxPlayer with current to move. Every PlaceToken is
// paired with a RemoveToken before the next candidate, on every path.
func (s *search) minimax(depth int, current game.Cell, alpha, beta int) int {
	select {
	case <-s.done:
		s.stopped = true
		return 0
	default:
	}
	s.metrics.AddNode()

	// Return if max depth is reached, board is full or game has ended
	if depth == s.maxDepth || !s.board.MovePossible() {
		s.metrics.AddLeaf()
		return s.board.Evaluate(s.maxPlayer)
	}
	gameEnd := s.board.Evaluate(s.maxPlayer)
	if gameEnd == game.Win || gameEnd == game.Lose {
		s.metrics.AddLeaf()
		return gameEnd
	}

	maximizing := current == s.maxPlayer
	bestValue := beta
	if maximizing {
		bestValue = alpha
	}
	other := current.Opponent()

outer:
	for x := 0; x < s.board.Length(); x++ {
		for y := 0; y < s.board.Width(); y++ {
			if !s.board.PlaceToken(current, x, y) {
				continue // Column is full
			}

			if maximizing {
				score := s.minimax(depth+1, other, bestValue, beta)
				s.board.RemoveToken(x, y)
				if s.stopped {
					break outer
				}
				if score > bestValue {
					bestValue = score
					if depth == 0 {
						s.best = game.Move{X: x, Y: y}
						s.bestScore = score
						s.found = true
					}
					if bestValue >= beta {
						s.metrics.AddCutoff()
						break outer
					}
				}
			} else {
				score := s.minimax(depth+1, other, alpha, bestValue)
				s.board.RemoveToken(x, y)
				if s.stopped {
					break outer
				}
				if score < bestValue {
					bestValue = score
					if bestValue <= alpha {
						s.metrics.AddCutoff()
						break outer
					}
				}
			}
		}
	}

	return bestValue
}
