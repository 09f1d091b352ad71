package experiments

import (
	"connect3d/experiments/metrics"
	"connect3d/game"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func smallSettings(t *testing.T) Settings {
	return Settings{
		Dimensions:   game.Dimensions{Length: 4, Width: 3, Height: 4},
		Games:        2,
		OpeningPlies: 2,
		Seed:         3,
		OutDir:       t.TempDir(),
	}
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return len(rows)
}

func TestRunExperiment(t *testing.T) {
	settings := smallSettings(t)
	configs := []metrics.AgentConfig{{ID: 1, Depth: 1, Goroutines: 1}, {ID: 2, Depth: 2, Goroutines: 2}}
	matchUps := [][]metrics.AgentConfig{{configs[0], configs[1]}}

	dir, err := runExperiment(context.Background(), "test", settings, configs, matchUps)

	require.NoError(t, err)
	require.Equal(t, filepath.Join(settings.OutDir, "test"), filepath.Dir(dir))
	require.Equal(t, 3, countRows(t, filepath.Join(dir, "agent_configs.csv")), "Header plus two configs")
	require.Equal(t, 3, countRows(t, filepath.Join(dir, "game_records.csv")), "Header plus two games")
	require.Greater(t, countRows(t, filepath.Join(dir, "move_records.csv")), 2)
}

func TestRun(t *testing.T) {
	t.Run("unknown experiment", func(t *testing.T) {
		_, err := Run(context.Background(), "nope", smallSettings(t))
		require.ErrorIs(t, err, ErrUnknownExperiment)
	})

	t.Run("registered names", func(t *testing.T) {
		require.Equal(t, []string{"depth", "parallelization"}, Names())
	})

	t.Run("invalid dimensions", func(t *testing.T) {
		settings := smallSettings(t)
		settings.Dimensions = game.Dimensions{}
		_, err := Run(context.Background(), "depth", settings)
		require.ErrorIs(t, err, game.ErrInvalidDimensions)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Run(ctx, "depth", smallSettings(t))
		require.ErrorIs(t, err, context.Canceled)
	})
}
