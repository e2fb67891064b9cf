package experiments

import (
	"context"

	"multiagent/config"
	"multiagent/engine"
	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// PlayGame plays one game of cfg's layout with the configured team.
func PlayGame(ctx context.Context, cfg config.Config, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	layout, err := game.LoadLayout(cfg.Layout)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	state := game.NewMaze(layout)
	team, err := agent.NewTeam(cfg, state.NumAgents(), seed)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	e, err := engine.NewLocalEngine(layout.Name, state, team, cfg.MaxMoves)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	return e.Run(ctx)
}

// SearchModeConfigs pairs a minimax and an expectimax agent at every depth.
func SearchModeConfigs(depths []int, evaluation string) []metrics.AgentConfig {
	configs := make([]metrics.AgentConfig, 0, 2*len(depths))
	for _, depth := range depths {
		for _, name := range []string{config.AgentMinimax, config.AgentExpectimax} {
			configs = append(configs, metrics.AgentConfig{
				ID:         len(configs) + 1,
				Agent:      name,
				Depth:      depth,
				Evaluation: evaluation,
			})
		}
	}
	return configs
}

// Run plays base.Games games for every agent config, up to base.Parallel at a
// time, and stores the records under base.OutputDir/name when it is set.
func Run(ctx context.Context, name string, base config.Config, configs []metrics.AgentConfig) ([]metrics.Summary, error) {
	log.Info().Msgf("starting %s experiment...", name)

	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	summaries := make([]metrics.Summary, 0, len(configs))

	for ci, agentConfig := range configs {
		cfg := base
		cfg.Agent = agentConfig.Agent
		cfg.Depth = agentConfig.Depth
		cfg.Evaluation = agentConfig.Evaluation
		if err := cfg.Validate(); err != nil {
			return nil, errors.Wrapf(err, "agent config %d", agentConfig.ID)
		}

		log.Info().Msgf("starting agent config %d of %d: %+v", ci+1, len(configs), agentConfig)

		games, moves, err := playSeries(ctx, cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "agent config %d", agentConfig.ID)
		}

		for i, g := range games {
			id := len(gameRecords) + 1
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         id,
				Agent:      agentConfig.ID,
				Seed:       cfg.Seed + uint64(i),
				GameMetric: g,
			})
			for _, mm := range moves[i] {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: id, MoveMetric: mm})
			}
		}

		summary := summarize(agentConfig.ID, games)
		summaries = append(summaries, summary)
		log.Info().Msgf("completed agent config %d of %d: win rate %.2f, mean score %.1f",
			ci+1, len(configs), summary.WinRate, summary.MeanScore)
	}

	log.Info().Msgf("completed %s experiment", name)

	if base.OutputDir == "" {
		return summaries, nil
	}
	if err := store(base.OutputDir, name, configs, gameRecords, moveRecords, summaries); err != nil {
		return summaries, err
	}
	return summaries, nil
}

// playSeries plays cfg.Games games with consecutive seeds. Results are indexed
// by game so the output order does not depend on scheduling.
func playSeries(ctx context.Context, cfg config.Config) ([]metrics.GameMetric, [][]metrics.MoveMetric, error) {
	games := make([]metrics.GameMetric, cfg.Games)
	moves := make([][]metrics.MoveMetric, cfg.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)
	for i := 0; i < cfg.Games; i++ {
		g.Go(func() error {
			gameMetric, moveMetrics, err := PlayGame(ctx, cfg, cfg.Seed+uint64(i))
			if err != nil {
				return errors.Wrapf(err, "game %d", i+1)
			}
			games[i] = gameMetric
			moves[i] = moveMetrics
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return games, moves, nil
}

func summarize(agentID int, games []metrics.GameMetric) metrics.Summary {
	summary := metrics.Summary{Agent: agentID, Games: len(games)}
	if len(games) == 0 {
		return summary
	}

	scores := make([]float64, len(games))
	moves := make([]float64, len(games))
	for i, g := range games {
		scores[i] = g.Score
		moves[i] = float64(g.TotalMoves)
		if g.Win {
			summary.Wins++
		}
		if g.Lose {
			summary.Losses++
		}
	}

	summary.WinRate = float64(summary.Wins) / float64(len(games))
	summary.MeanMoves = stat.Mean(moves, nil)
	if len(games) > 1 {
		summary.MeanScore, summary.StdScore = stat.MeanStdDev(scores, nil)
	} else {
		summary.MeanScore = scores[0]
	}
	return summary
}

func store(dir, name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord, summaries []metrics.Summary) error {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return errors.Wrap(err, "failed to create experiment writer")
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return errors.Wrap(err, "failed to store agent configs")
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return errors.Wrap(err, "failed to store game records")
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return errors.Wrap(err, "failed to store move records")
	}
	if err := writer.WriteSummaries(summaries); err != nil {
		return errors.Wrap(err, "failed to store summaries")
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return nil
}
