package engine

import (
	"connect3d/experiments/metrics"
	"connect3d/game"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(e *Engine)

// WithRandomOpening plays the given number of seeded random moves before the agents take over,
// so repeated games between deterministic agents do not all follow the same line.
func WithRandomOpening(plies int, seed uint64) Option {
	return func(e *Engine) {
		if plies > 0 {
			e.openingPlies = plies
			e.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithStartingPlayer sets who moves first. By default X starts.
func WithStartingPlayer(player game.Cell) Option {
	return func(e *Engine) {
		if player.IsPlayer() {
			e.starting = player
		}
	}
}

var _ Runner = (*Engine)(nil)

type Engine struct {
	Board  *game.Board
	Agents map[game.Cell]Agent

	starting     game.Cell
	openingPlies int
	rng          *rand.Rand
}

// LocalEngine pits two agents against each other on board. One agent must maximize for X and
// the other for O.
func LocalEngine(board *game.Board, agents []Agent, options ...Option) *Engine {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	byPlayer := map[game.Cell]Agent{}
	for _, a := range agents {
		byPlayer[a.MaxPlayer()] = a
	}
	if byPlayer[game.X] == nil || byPlayer[game.O] == nil {
		panic("agents must play for X and O")
	}

	e := &Engine{
		Board:    board,
		Agents:   byPlayer,
		starting: game.X,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until a line is completed or the board is full.
func (e *Engine) Run(ctx context.Context) (game.Cell, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		ID:             uuid.NewString(),
		StartingPlayer: e.starting,
		StartTime:      time.Now(),
	}
	log.Info().Str("game", gameMetric.ID).Msgf("player %s is starting", e.starting)

	current := e.starting
	if e.openingPlies > 0 {
		current = e.Board.PlayRandomMoves(e.rng, e.openingPlies, current)
		log.Debug().Str("game", gameMetric.ID).Msgf("played %d random opening moves", e.openingPlies)
	}

	step := 1
	var moveMetrics []metrics.MoveMetric
	for e.Board.Assess(game.X).Outcome == game.Undecided && e.Board.MovePossible() {
		result, err := e.Agents[current].Search(ctx, e.Board)
		if err != nil {
			return game.Empty, gameMetric, moveMetrics, fmt.Errorf("search failed at step %d: %w", step, err)
		}

		move, err := result.BestMove()
		if err != nil {
			// Agent has no recommendation (zero depth), fall back to the first legal column
			move = e.Board.LegalMoves()[0]
			log.Warn().Str("game", gameMetric.ID).Msgf("player %s found no move, playing %s", current, move)
		}
		e.Board.PlaceToken(current, move.X, move.Y)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       current,
			Move:         move,
			Score:        result.Score,
			SearchMetric: result.Metrics,
		})
		log.Debug().Str("game", gameMetric.ID).Msgf("step %d: player %s played %s (score %d)", step, current, move, result.Score)

		current = current.Opponent()
		step++
	}

	winner := Winner(e.Board)
	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	if winner == game.Empty {
		log.Info().Str("game", gameMetric.ID).Msgf("game drawn after %d moves", gameMetric.TotalMoves)
	} else {
		log.Info().Str("game", gameMetric.ID).Msgf("player %s won after %d moves", winner, gameMetric.TotalMoves)
	}
	return winner, gameMetric, moveMetrics, nil
}

// Winner returns the player owning a complete line, or Empty.
func Winner(board *game.Board) game.Cell {
	switch board.Assess(game.X).Outcome {
	case game.Won:
		return game.X
	case game.Lost:
		return game.O
	default:
		return game.Empty
	}
}
