package agent

import (
	"fmt"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/searcher"
)

type searchAgent struct {
	searcher *searcher.Searcher
	depth    int
}

// NewSearchAgent returns the maximizing agent (index 0) driven by minimax or
// expectimax search looking depth full rounds ahead.
func NewSearchAgent(s *searcher.Searcher, depth int) Agent {
	return searchAgent{searcher: s, depth: depth}
}

func (a searchAgent) FindMove(state game.State, index int) (game.Action, metrics.SearchMetric, error) {
	if index != 0 {
		return game.NoAction, metrics.SearchMetric{}, fmt.Errorf("search agent plays agent 0, not agent %d", index)
	}
	result, metric, err := a.searcher.Search(state, a.depth)
	if err != nil {
		return game.NoAction, metric, err
	}
	return result.Action, metric, nil
}
