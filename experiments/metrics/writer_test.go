package metrics

import (
	"connect3d/game"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "depth")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())
	require.Equal(t, filepath.Join(root, "depth"), filepath.Dir(w.Dir()))

	t.Run("agent configs", func(t *testing.T) {
		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Depth: 3, Goroutines: 4}}))

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Equal(t, [][]string{{"id", "depth", "goroutines"}, {"1", "3", "4"}}, rows)
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		records := []GameRecord{
			{AgentX: 1, AgentO: 2, GameMetric: GameMetric{ID: "a", StartingPlayer: game.X, Winner: game.O, StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 9}},
			{AgentX: 2, AgentO: 1, GameMetric: GameMetric{ID: "b", StartingPlayer: game.X, Winner: game.Empty}},
		}
		require.NoError(t, w.WriteGameRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"a", "1", "2", "X", "O", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "9"}, rows[1])
		require.Equal(t, "draw", rows[2][4], "Empty winner is a draw")
	})

	t.Run("move records", func(t *testing.T) {
		records := []MoveRecord{{
			Game: "a",
			MoveMetric: MoveMetric{
				Step: 1, Player: game.O, Move: game.Move{X: 2, Y: 5}, Score: -7,
				SearchMetric: SearchMetric{Depth: 3, Goroutines: 1, Nodes: 100, Leaves: 80, Cutoffs: 5},
			},
		}}
		require.NoError(t, w.WriteMoveRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"a", "1", "O", "2", "5", "-7", "3", "1", "0s", "100", "80", "5"}, rows[1])
	})
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(4, 2)
	c.AddNode()
	c.AddNode()
	c.AddLeaf()
	c.AddCutoff()

	m := c.Complete()
	require.Equal(t, 4, m.Depth)
	require.Equal(t, 2, m.Goroutines)
	require.Equal(t, int64(2), m.Nodes)
	require.Equal(t, int64(1), m.Leaves)
	require.Equal(t, int64(1), m.Cutoffs)

	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete())
}
