package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"multiagent/config"
	"multiagent/experiments"
	"multiagent/logger"

	"github.com/rs/zerolog/log"
)

// cliFlags holds the command line values that override the configuration.
type cliFlags struct {
	agent      string
	depth      int
	evaluation string
	layout     string
	ghosts     string
	games      int
	seed       uint64
}

func main() {
	var fl cliFlags
	configPath := flag.String("config", "", "YAML config file")
	flag.StringVar(&fl.agent, "agent", "", "player agent (minimax, expectimax, reflex)")
	flag.IntVar(&fl.depth, "depth", 0, "search depth in full rounds")
	flag.StringVar(&fl.evaluation, "eval", "", "evaluation function (score, maze)")
	flag.StringVar(&fl.layout, "layout", "", "maze layout")
	flag.StringVar(&fl.ghosts, "ghosts", "", "ghost agents (random, directional)")
	flag.IntVar(&fl.games, "games", 0, "number of games")
	flag.Uint64Var(&fl.seed, "seed", 0, "random seed")
	experiment := flag.String("experiment", "", "compare minimax and expectimax at these comma-separated depths")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	closeLog := logger.Init(*debug)
	defer closeLog()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	applyFlags(&cfg, fl, set)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *experiment != "" {
		runExperiment(ctx, cfg, *experiment)
		return
	}
	runGames(ctx, cfg)
}

// applyFlags overrides configuration values with the flags named in set.
func applyFlags(cfg *config.Config, fl cliFlags, set map[string]bool) {
	if set["agent"] {
		cfg.Agent = fl.agent
	}
	if set["depth"] {
		cfg.Depth = fl.depth
	}
	if set["eval"] {
		cfg.Evaluation = fl.evaluation
	}
	if set["layout"] {
		cfg.Layout = fl.layout
	}
	if set["ghosts"] {
		cfg.Ghosts = fl.ghosts
	}
	if set["games"] {
		cfg.Games = fl.games
	}
	if set["seed"] {
		cfg.Seed = fl.seed
	}
}

func runGames(ctx context.Context, cfg config.Config) {
	wins := 0
	for i := 0; i < cfg.Games; i++ {
		gameMetric, _, err := experiments.PlayGame(ctx, cfg, cfg.Seed+uint64(i))
		if err != nil {
			log.Fatal().Err(err).Msgf("game %d failed", i+1)
		}
		if gameMetric.Win {
			wins++
		}
		fmt.Printf("Game %d: %s with score %g after %d moves\n", i+1, gameMetric.Outcome(), gameMetric.Score, gameMetric.TotalMoves)
	}
	fmt.Printf("Won %d of %d games\n", wins, cfg.Games)
}

func runExperiment(ctx context.Context, cfg config.Config, depthList string) {
	depths, err := parseDepths(depthList)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid experiment depths")
	}

	configs := experiments.SearchModeConfigs(depths, cfg.Evaluation)
	summaries, err := experiments.Run(ctx, "search_modes", cfg, configs)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	for i, s := range summaries {
		c := configs[i]
		fmt.Printf("%-10s depth %d: win rate %.2f, score %.1f ± %.1f, %.1f moves\n",
			c.Agent, c.Depth, s.WinRate, s.MeanScore, s.StdScore, s.MeanMoves)
	}
}

func parseDepths(list string) ([]int, error) {
	var depths []int
	for _, field := range strings.Split(list, ",") {
		depth, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("depth %q: %w", field, err)
		}
		if depth < 0 {
			return nil, fmt.Errorf("depth %d must not be negative", depth)
		}
		depths = append(depths, depth)
	}
	return depths, nil
}
