package main

import (
	"connect3d/config"
	"connect3d/experiments"
	"connect3d/game"
	"connect3d/searcher"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Usage: connect3d [flags] [snapshot depth player]
//
// With exactly three positional arguments the board is loaded from snapshot and searched to
// depth plies for player (X or O). Otherwise the configured defaults are used.
func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	if err := run(os.Args[1:], cfg, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("connect3d failed")
	}
}

type options struct {
	snapshot   string
	depth      int
	player     game.Cell
	goroutines int
	timeout    time.Duration
	experiment string
	games      int
	out        string
	dims       game.Dimensions
}

func run(args []string, cfg *config.Config, stdout io.Writer) error {
	fs := flag.NewFlagSet("connect3d", flag.ContinueOnError)
	goroutines := fs.Int("goroutines", cfg.Goroutines, "Number of goroutines splitting the root moves")
	timeout := fs.Duration("timeout", cfg.Timeout, "Abort the search after this long (0 for no limit)")
	logLevel := fs.String("log-level", cfg.LogLevel.String(), "Log level (debug, info, warn, error)")
	experiment := fs.String("experiment", "", fmt.Sprintf("Run an experiment instead of a single search %v", experiments.Names()))
	games := fs.Int("games", experiments.NumGames, "Games per match up in experiment mode")
	out := fs.String("out", experiments.DefaultSettings().OutDir, "Output directory for experiment records")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	setupLogger(level)

	opts := options{
		snapshot:   cfg.Snapshot,
		depth:      cfg.Depth,
		player:     cfg.Player,
		goroutines: *goroutines,
		timeout:    *timeout,
		experiment: *experiment,
		games:      *games,
		out:        *out,
		dims:       cfg.Dimensions,
	}
	if positional := fs.Args(); len(positional) == 3 {
		opts.snapshot = positional[0]
		opts.depth, err = strconv.Atoi(positional[1])
		if err != nil || opts.depth < 0 {
			return fmt.Errorf("invalid depth %q", positional[1])
		}
		opts.player, err = game.ParsePlayer(positional[2])
		if err != nil {
			return err
		}
	} else if len(positional) > 0 {
		log.Warn().Msgf("expected 3 arguments (snapshot depth player), got %d: using defaults", len(positional))
	}

	if opts.experiment != "" {
		return runExperiment(opts)
	}
	return recommend(opts, stdout)
}

func setupLogger(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

func recommend(opts options, stdout io.Writer) error {
	board, err := game.LoadSnapshot(opts.snapshot, opts.dims)
	if err != nil {
		// Not fatal: search the empty board instead
		log.Error().Err(err).Msg("board could not be loaded")
		board = game.NewBoard(opts.dims)
	} else {
		if !board.Contiguous() {
			log.Warn().Msg("snapshot has floating tokens, columns are not gapless stacks")
		}
		fmt.Fprintln(stdout, "Loaded board from file successfully:")
		if err := board.Format(stdout); err != nil {
			return err
		}
	}

	ctx := context.Background()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	fmt.Fprintf(stdout, "Starting minimax with depth %d and max player %s.\n", opts.depth, opts.player)
	start := time.Now()
	m := searcher.NewMinimax(opts.depth, opts.player, searcher.WithGoroutines(opts.goroutines), searcher.WithMetrics())
	result, err := m.Search(ctx, board)
	if err != nil {
		return fmt.Errorf("search aborted: %w", err)
	}
	elapsed := time.Since(start)

	log.Debug().
		Int64("nodes", result.Metrics.Nodes).
		Int64("leaves", result.Metrics.Leaves).
		Int64("cutoffs", result.Metrics.Cutoffs).
		Msg("search statistics")

	if move, err := result.BestMove(); err != nil {
		fmt.Fprintf(stdout, "No move found, board score: %d\n", result.Score)
	} else {
		fmt.Fprintf(stdout, "Recommended move is at %s with score: %d\n", move, result.Score)
	}
	fmt.Fprintf(stdout, "Calculated in %.3f seconds.\n", elapsed.Seconds())
	return nil
}

func runExperiment(opts options) error {
	settings := experiments.DefaultSettings()
	settings.Dimensions = opts.dims
	settings.Games = opts.games
	settings.OutDir = opts.out

	ctx := context.Background()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	dir, err := experiments.Run(ctx, opts.experiment, settings)
	if err != nil {
		return err
	}
	log.Info().Msgf("experiment records written to %s", dir)
	return nil
}
