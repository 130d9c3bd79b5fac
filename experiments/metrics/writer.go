package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer persists experiment results as CSV files under a timestamped
// directory.
type Writer struct {
	baseDir string
}

func NewWriter(experiment string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", experiment, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	return w.writeFile("agent_configs.csv",
		[]string{"id", "game", "depth", "pruning"},
		len(configs),
		func(i int) []string {
			c := configs[i]
			return []string{
				strconv.Itoa(c.ID),
				c.Game,
				strconv.Itoa(c.Depth),
				strconv.FormatBool(c.Pruning),
			}
		})
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	return w.writeFile("game_records.csv",
		[]string{"id", "agent1", "agent2", "winner", "moves", "start_time", "duration"},
		len(records),
		func(i int) []string {
			r := records[i]
			return []string{
				strconv.Itoa(r.ID),
				strconv.Itoa(r.Agent1),
				strconv.Itoa(r.Agent2),
				r.Winner,
				strconv.Itoa(r.Moves),
				r.StartTime.Format(time.RFC3339),
				r.Duration.String(),
			}
		})
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	return w.writeFile("move_records.csv",
		[]string{"game", "step", "player", "move", "nodes", "duration"},
		len(records),
		func(i int) []string {
			r := records[i]
			return []string{
				strconv.Itoa(r.Game),
				strconv.Itoa(r.Step),
				r.Player,
				r.Move,
				strconv.FormatInt(r.Nodes, 10),
				r.Duration.String(),
			}
		})
}

func (w *Writer) writeFile(name string, header []string, rows int, row func(i int) []string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for i := 0; i < rows; i++ {
		if err := writer.Write(row(i)); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	return nil
}
