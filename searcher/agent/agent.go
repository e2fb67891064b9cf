package agent

import (
	"multiagent/experiments/metrics"
	"multiagent/game"
)

type Agent interface {
	// FindMove returns the action for the agent at index in state and the search
	// metrics (if collected) behind the decision
	FindMove(state game.State, index int) (game.Action, metrics.SearchMetric, error)
}
