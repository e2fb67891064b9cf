package agent

import (
	"multiagent/config"
	"multiagent/game"
	"multiagent/searcher"

	"golang.org/x/exp/rand"
)

// NewTeam builds one agent per index of a game with numAgents agents: the
// configured player at index 0 followed by ghosts. Every agent draws from its own
// random source derived from seed, so games with equal seeds replay identically.
func NewTeam(cfg config.Config, numAgents int, seed uint64) ([]Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	evaluate, err := game.LookupEvaluation(cfg.Evaluation)
	if err != nil {
		return nil, err
	}

	team := make([]Agent, numAgents)
	rngFor := func(index int) *rand.Rand {
		return rand.New(rand.NewSource(seed*1000 + uint64(index)))
	}

	if cfg.Agent == config.AgentReflex {
		team[0] = NewReflexAgent(evaluate, rngFor(0))
	} else {
		s, err := NewSearcher(cfg)
		if err != nil {
			return nil, err
		}
		team[0] = NewSearchAgent(s, cfg.Depth)
	}

	for i := 1; i < numAgents; i++ {
		if cfg.Ghosts == config.GhostsDirectional {
			team[i] = NewDirectionalAgent(rngFor(i), cfg.ChaseProbability)
		} else {
			team[i] = NewRandomAgent(rngFor(i))
		}
	}
	return team, nil
}

// NewSearcher builds the searcher of a minimax or expectimax configuration.
func NewSearcher(cfg config.Config) (*searcher.Searcher, error) {
	mode, err := cfg.SearchMode()
	if err != nil {
		return nil, err
	}
	evaluate, err := game.LookupEvaluation(cfg.Evaluation)
	if err != nil {
		return nil, err
	}
	tieBreak, err := searcher.ParseTieBreak(cfg.TieBreak)
	if err != nil {
		return nil, err
	}

	options := []searcher.Option{
		searcher.WithMode(mode),
		searcher.WithEvaluationFn(evaluate),
		searcher.WithTieBreak(tieBreak),
		searcher.WithMetrics(),
	}
	if cfg.StuckAsTerminal {
		options = append(options, searcher.WithStuckAsTerminal())
	}
	return searcher.New(options...), nil
}
