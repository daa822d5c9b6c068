package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing the first side
	Agent2 int // AgentConfig.ID playing the second side
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Setup is written next to the records so a run can be repeated.
type Setup struct {
	RunID       string       `yaml:"run_id"`
	Name        string       `yaml:"name"`
	Game        string       `yaml:"game"`
	Experiment  string       `yaml:"experiment"`
	Games       int          `yaml:"games"`
	Parallelism int          `yaml:"parallelism"`
	MaxTurns    int          `yaml:"max_turns"`
	Seed        uint64       `yaml:"seed"`
	Agents      []AgentSetup `yaml:"agents"`
	StartTime   time.Time    `yaml:"start_time"`
}

type AgentSetup struct {
	ID       int    `yaml:"id"`
	Depth    int    `yaml:"depth,omitempty"`
	Duration string `yaml:"duration,omitempty"`
	Random   bool   `yaml:"random,omitempty"`
}

func NewAgentSetup(config AgentConfig) AgentSetup {
	s := AgentSetup{ID: config.ID, Depth: config.Depth, Random: config.Random}
	if config.Duration > 0 {
		s.Duration = config.Duration.String()
	}
	return s
}

type Writer struct {
	runID   string
	baseDir string
}

// NewWriter creates <outputDir>/<name>/<run id> for the files of one run.
func NewWriter(outputDir, name string) (*Writer, error) {
	runID := uuid.NewString()
	baseDir := filepath.Join(outputDir, name, runID)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		runID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	setup.RunID = w.runID
	out, err := yaml.Marshal(setup)
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	err = os.WriteFile(filepath.Join(w.baseDir, "setup.yaml"), out, 0644)
	if err != nil {
		return fmt.Errorf("failed to write setup file: %w", err)
	}
	return nil
}

// writeCSV writes header and rows to name inside the run directory.
func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Depth),
			config.Duration.String(),
			strconv.FormatBool(config.Random),
		})
	}
	return w.writeCSV("agent_configs.csv", []string{"id", "depth", "duration", "random"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingPlayer,
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			strconv.Itoa(record.Depth),
			strconv.FormatInt(record.Nodes, 10),
			strconv.FormatInt(record.Evaluations, 10),
			strconv.FormatInt(record.Cutoffs, 10),
			strconv.FormatFloat(record.Value, 'g', -1, 64),
			strconv.FormatBool(record.TimedOut),
			record.Duration.String(),
		})
	}
	header := []string{"game", "step", "player", "move", "depth", "nodes", "evaluations", "cutoffs", "value", "timed_out", "duration"}
	return w.writeCSV("move_records.csv", header, rows)
}
