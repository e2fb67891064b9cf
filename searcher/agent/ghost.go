package agent

import (
	"fmt"

	"multiagent/experiments/metrics"
	"multiagent/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent choosing uniformly among its legal actions, the
// opponent model expectimax assumes.
func NewRandomAgent(rng *rand.Rand) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindMove(state game.State, index int) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions(index)
	if len(actions) == 0 {
		return game.NoAction, metrics.SearchMetric{}, fmt.Errorf("agent %d has no legal actions", index)
	}
	return actions[a.rng.Intn(len(actions))], metrics.SearchMetric{}, nil
}

type directionalAgent struct {
	rng   *rand.Rand
	chase float64
}

// NewDirectionalAgent returns a ghost that moves towards the player with
// probability chase and randomly otherwise. Outside mazes it always moves randomly.
func NewDirectionalAgent(rng *rand.Rand, chase float64) Agent {
	return directionalAgent{rng: rng, chase: chase}
}

func (a directionalAgent) FindMove(state game.State, index int) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions(index)
	if len(actions) == 0 {
		return game.NoAction, metrics.SearchMetric{}, fmt.Errorf("agent %d has no legal actions", index)
	}

	maze, ok := state.(*game.Maze)
	if !ok || index == 0 || a.rng.Float64() >= a.chase {
		return actions[a.rng.Intn(len(actions))], metrics.SearchMetric{}, nil
	}

	var best []game.Action
	bestStep := 0
	for _, action := range actions {
		step := maze.GhostStep(index-1, action)
		switch {
		case len(best) == 0 || step < bestStep:
			bestStep = step
			best = []game.Action{action}
		case step == bestStep:
			best = append(best, action)
		}
	}
	return best[a.rng.Intn(len(best))], metrics.SearchMetric{}, nil
}
