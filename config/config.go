package config

import (
	"errors"
	"fmt"
	"strings"

	"gametree/experiments/metrics"
	"gametree/meta"
	"gametree/searcher"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var (
	Games       = []string{"tictactoe", "goban", "chess"}
	Experiments = []string{"baseline", "round-robin", "single"}
)

type Goban struct {
	Size int     `mapstructure:"size"`
	Komi float64 `mapstructure:"komi"`
}

type Config struct {
	Name        string                `mapstructure:"name"`
	Game        string                `mapstructure:"game"`
	Experiment  string                `mapstructure:"experiment"`
	Games       int                   `mapstructure:"games"`
	Parallelism int                   `mapstructure:"parallelism"`
	MaxTurns    int                   `mapstructure:"max_turns"`
	Seed        uint64                `mapstructure:"seed"`
	LogLevel    string                `mapstructure:"log_level"`
	OutputDir   string                `mapstructure:"output_dir"`
	Goban       Goban                 `mapstructure:"goban"`
	Agents      []metrics.AgentConfig `mapstructure:"agents"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game", meta.GAME)
	v.SetDefault("experiment", meta.EXPERIMENT)
	v.SetDefault("games", meta.GAMES)
	v.SetDefault("parallelism", meta.PARALLELISM)
	v.SetDefault("max_turns", meta.MAX_TURNS)
	v.SetDefault("seed", 0)
	v.SetDefault("log_level", meta.LOG_LEVEL)
	v.SetDefault("output_dir", meta.OUTPUT_DIR)
	v.SetDefault("goban.size", meta.GOBAN_SIZE)
	v.SetDefault("goban.komi", meta.GOBAN_KOMI)
	v.SetDefault("agents", []map[string]any{
		{"id": 0, "random": true},
		{"id": 1, "depth": meta.SEARCH_DEPTH},
	})
}

// Load reads the configuration from defaults, then the YAML file at path (if
// any), then GAMETREE_ environment variables, and validates the result.
func (c *Config) Load(path string) error {
	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.SetEnvPrefix("GAMETREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	if c.Name == "" {
		c.Name = c.Game + "-" + c.Experiment
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	var errs []error
	if !lo.Contains(Games, c.Game) {
		errs = append(errs, fmt.Errorf("unknown game %q, want one of %v", c.Game, Games))
	}
	if !lo.Contains(Experiments, c.Experiment) {
		errs = append(errs, fmt.Errorf("unknown experiment %q, want one of %v", c.Experiment, Experiments))
	}
	if c.Games < 1 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", c.Games))
	}
	if c.Parallelism < 1 {
		errs = append(errs, fmt.Errorf("parallelism must be positive, got %d", c.Parallelism))
	}
	if c.Game == "goban" && c.Goban.Size < 2 {
		errs = append(errs, fmt.Errorf("goban size must be at least 2, got %d", c.Goban.Size))
	}
	if len(c.Agents) < 2 {
		errs = append(errs, fmt.Errorf("need at least two agents, got %d", len(c.Agents)))
	}
	ids := lo.Map(c.Agents, func(a metrics.AgentConfig, _ int) int { return a.ID })
	if dup := lo.FindDuplicates(ids); len(dup) > 0 {
		errs = append(errs, fmt.Errorf("duplicate agent ids %v", dup))
	}
	for _, a := range c.Agents {
		if a.Random {
			continue
		}
		if a.Depth < 0 || a.Depth > searcher.MaxDepth {
			errs = append(errs, fmt.Errorf("agent %d: depth must be within [0, %d], got %d", a.ID, searcher.MaxDepth, a.Depth))
		}
		if a.Duration < 0 {
			errs = append(errs, fmt.Errorf("agent %d: negative duration %v", a.ID, a.Duration))
		}
		if a.Depth == 0 && a.Duration == 0 {
			errs = append(errs, fmt.Errorf("agent %d: a search agent needs a depth or a duration", a.ID))
		}
	}
	return errors.Join(errs...)
}
