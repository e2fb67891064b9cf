package config

import (
	"os"
	"strconv"

	"multiagent/game"
	"multiagent/searcher"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of a game session or experiment. Values are read from
// defaults, then an optional YAML file, then MULTIAGENT_* environment variables.
type Config struct {
	Agent            string  `yaml:"agent"` // minimax, expectimax or reflex
	Evaluation       string  `yaml:"evaluation"`
	Depth            int     `yaml:"depth"`
	TieBreak         string  `yaml:"tie_break"`
	StuckAsTerminal  bool    `yaml:"stuck_as_terminal"`
	Layout           string  `yaml:"layout"`
	Ghosts           string  `yaml:"ghosts"` // random or directional
	ChaseProbability float64 `yaml:"chase_probability"`
	Games            int     `yaml:"games"`
	Parallel         int     `yaml:"parallel"`
	MaxMoves         int     `yaml:"max_moves"`
	Seed             uint64  `yaml:"seed"`
	OutputDir        string  `yaml:"output_dir"`
}

const (
	AgentMinimax    = "minimax"
	AgentExpectimax = "expectimax"
	AgentReflex     = "reflex"

	GhostsRandom      = "random"
	GhostsDirectional = "directional"
)

// Default returns the configuration used when nothing else is specified.
func Default() Config {
	return Config{
		Agent:            AgentMinimax,
		Evaluation:       searcher.DefaultEvaluation,
		Depth:            searcher.DefaultDepth,
		TieBreak:         searcher.FirstFound.String(),
		Layout:           "small",
		Ghosts:           GhostsRandom,
		ChaseProbability: 0.8,
		Games:            1,
		Parallel:         1,
		MaxMoves:         500,
		Seed:             1,
		OutputDir:        "experiments",
	}
}

// Load reads configuration from defaults, the YAML file at path (skipped when
// path is empty) and environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Agent = envOrDefault("MULTIAGENT_AGENT", c.Agent)
	c.Evaluation = envOrDefault("MULTIAGENT_EVAL", c.Evaluation)
	c.TieBreak = envOrDefault("MULTIAGENT_TIE_BREAK", c.TieBreak)
	c.Layout = envOrDefault("MULTIAGENT_LAYOUT", c.Layout)
	c.Ghosts = envOrDefault("MULTIAGENT_GHOSTS", c.Ghosts)
	c.OutputDir = envOrDefault("MULTIAGENT_OUTPUT_DIR", c.OutputDir)

	var err error
	if c.Depth, err = envInt("MULTIAGENT_DEPTH", c.Depth); err != nil {
		return err
	}
	if c.Games, err = envInt("MULTIAGENT_GAMES", c.Games); err != nil {
		return err
	}
	if c.Parallel, err = envInt("MULTIAGENT_PARALLEL", c.Parallel); err != nil {
		return err
	}
	if c.MaxMoves, err = envInt("MULTIAGENT_MAX_MOVES", c.MaxMoves); err != nil {
		return err
	}
	if v := os.Getenv("MULTIAGENT_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse MULTIAGENT_SEED %q", v)
		}
		c.Seed = seed
	}
	return nil
}

// Validate checks every field and returns the first problem found.
func (c Config) Validate() error {
	switch c.Agent {
	case AgentMinimax, AgentExpectimax, AgentReflex:
	default:
		return invalid("agent", c.Agent, "expected minimax, expectimax or reflex")
	}
	if c.Depth < 0 {
		return invalid("depth", c.Depth, "must not be negative")
	}
	if _, err := game.LookupEvaluation(c.Evaluation); err != nil {
		return invalid("evaluation", c.Evaluation, err.Error())
	}
	if _, err := searcher.ParseTieBreak(c.TieBreak); err != nil {
		return errors.WithStack(err)
	}
	if _, err := game.LoadLayout(c.Layout); err != nil {
		return invalid("layout", c.Layout, err.Error())
	}
	switch c.Ghosts {
	case GhostsRandom, GhostsDirectional:
	default:
		return invalid("ghosts", c.Ghosts, "expected random or directional")
	}
	if c.ChaseProbability < 0 || c.ChaseProbability > 1 {
		return invalid("chase_probability", c.ChaseProbability, "must be between 0 and 1")
	}
	if c.Games < 1 {
		return invalid("games", c.Games, "must be at least 1")
	}
	if c.Parallel < 1 {
		return invalid("parallel", c.Parallel, "must be at least 1")
	}
	if c.MaxMoves < 1 {
		return invalid("max_moves", c.MaxMoves, "must be at least 1")
	}
	return nil
}

// SearchMode returns the search mode of a minimax or expectimax agent.
func (c Config) SearchMode() (searcher.Mode, error) {
	return searcher.ParseMode(c.Agent)
}

func invalid(field string, value any, reason string) error {
	return errors.WithStack(&searcher.ConfigurationError{Field: field, Value: value, Reason: reason})
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, errors.Wrapf(err, "parse %s %q", key, v)
	}
	return n, nil
}
