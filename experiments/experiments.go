package experiments

import (
	"connect3d/engine"
	"connect3d/experiments/metrics"
	"connect3d/game"
	"connect3d/searcher"
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/rs/zerolog/log"
)

const (
	NumGames     = 10 // Per match up
	OpeningPlies = 4
)

var ErrUnknownExperiment = errors.New("unknown experiment")

type Settings struct {
	Dimensions   game.Dimensions
	Games        int
	OpeningPlies int
	Seed         uint64
	OutDir       string
}

func DefaultSettings() Settings {
	return Settings{
		Dimensions:   game.StandardDimensions,
		Games:        NumGames,
		OpeningPlies: OpeningPlies,
		Seed:         1,
		OutDir:       "experiments",
	}
}

var registry = map[string]func(context.Context, Settings) (string, error){
	"depth":           RunDepthExperiment,
	"parallelization": RunParallelizationExperiment,
}

// Names lists the registered experiments.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named experiment and returns the directory holding its records.
func Run(ctx context.Context, name string, settings Settings) (string, error) {
	run, ok := registry[name]
	if !ok {
		return "", fmt.Errorf("%w: %q (have %v)", ErrUnknownExperiment, name, Names())
	}
	return run(ctx, settings)
}

// RunDepthExperiment pairs a depth-1 baseline against deeper agents.
func RunDepthExperiment(ctx context.Context, settings Settings) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: 1, Goroutines: 1}
	depthConfigs := []metrics.AgentConfig{
		{ID: 1, Depth: 1, Goroutines: 1}, // Baseline equivalent
		{ID: 2, Depth: 2, Goroutines: 1},
		{ID: 3, Depth: 3, Goroutines: 1},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment(ctx, "depth", settings, append(depthConfigs, baseline), matchUps)
}

// RunParallelizationExperiment plays equal-depth agents with a growing number of root workers.
// Both sides of a match up share a config, so games differ only in search time.
func RunParallelizationExperiment(ctx context.Context, settings Settings) (string, error) {
	configs := []metrics.AgentConfig{
		{ID: 1, Depth: 3, Goroutines: 1},
		{ID: 2, Depth: 3, Goroutines: 2},
		{ID: 3, Depth: 3, Goroutines: 4},
		{ID: 4, Depth: 3, Goroutines: 8},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}

	return runExperiment(ctx, "parallelization", settings, configs, matchUps)
}

func runExperiment(ctx context.Context, name string, settings Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	if err := settings.Dimensions.Validate(); err != nil {
		return "", err
	}

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < settings.Games; i++ {
			// Alternate sides so neither agent always moves first
			configX, configO := matchup[0], matchup[1]
			if i%2 == 1 {
				configX, configO = configO, configX
			}

			winner, gameMetric, moveMetrics, err := runGame(ctx, settings, configX, configO, settings.Seed+uint64(count))
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++

			gameRecords = append(gameRecords, metrics.GameRecord{
				AgentX:     configX.ID,
				AgentO:     configO.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       gameMetric.ID,
					MoveMetric: mm,
				})
			}

			winnerID := -1
			if idx := slices.Index([]game.Cell{game.X, game.O}, winner); idx >= 0 {
				winnerID = []int{configX.ID, configO.ID}[idx]
			}
			log.Info().Msgf("completed matchup %d of %d game %d with winner: agent %d", mi+1, len(matchUps), i+1, winnerID)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	// Store experiment metadata
	writer, err := metrics.NewWriter(settings.OutDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame executes a single game between two agents and returns the winner
func runGame(ctx context.Context, settings Settings, configX, configO metrics.AgentConfig, seed uint64) (game.Cell, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := []engine.Agent{
		createMinimax(configX, game.X),
		createMinimax(configO, game.O),
	}
	board := game.NewBoard(settings.Dimensions)
	e := engine.LocalEngine(board, agents, engine.WithRandomOpening(settings.OpeningPlies, seed))

	return e.Run(ctx)
}

func createMinimax(config metrics.AgentConfig, player game.Cell) *searcher.Minimax {
	options := []searcher.Option{searcher.WithMetrics()}
	if config.Goroutines > 1 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	return searcher.NewMinimax(config.Depth, player, options...)
}
