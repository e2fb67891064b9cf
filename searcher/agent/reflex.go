package agent

import (
	"fmt"
	"math"

	"multiagent/experiments/metrics"
	"multiagent/game"

	"golang.org/x/exp/rand"
)

type reflexAgent struct {
	evaluate game.Evaluate
	rng      *rand.Rand
}

// NewReflexAgent returns an agent that looks a single ply ahead and picks uniformly
// at random among the actions whose successors evaluate best.
func NewReflexAgent(evaluate game.Evaluate, rng *rand.Rand) Agent {
	return reflexAgent{evaluate: evaluate, rng: rng}
}

func (a reflexAgent) FindMove(state game.State, index int) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions(index)
	if len(actions) == 0 {
		return game.NoAction, metrics.SearchMetric{}, fmt.Errorf("agent %d has no legal actions", index)
	}

	bestScore := math.Inf(-1)
	var best []game.Action
	for _, action := range actions {
		score := a.evaluate(state.Successor(index, action))
		switch {
		case score > bestScore:
			bestScore = score
			best = append(best[:0], action)
		case score == bestScore:
			best = append(best, action)
		}
	}
	if len(best) == 0 { // Every successor evaluated to NaN
		best = actions
	}
	return best[a.rng.Intn(len(best))], metrics.SearchMetric{}, nil
}
