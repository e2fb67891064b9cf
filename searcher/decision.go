package searcher

import (
	"math"

	"multiagent/game"
)

// decision is a node whose agent commits to one action: the maximizer (agent 0)
// or a minimizing opponent.
type decision struct {
	best   Result
	seen   bool
	better func(value float64, action game.Action, best Result) bool
}

func newMaxNode(tieBreak TieBreak) *decision {
	return &decision{
		best:   Result{Value: math.Inf(-1), Action: game.NoAction},
		better: tieBreak.greater,
	}
}

func newMinNode(tieBreak TieBreak) *decision {
	return &decision{
		best:   Result{Value: math.Inf(1), Action: game.NoAction},
		better: tieBreak.less,
	}
}

func (d *decision) Add(value float64, action game.Action) {
	// The first child is always taken so a node with legal actions reports one
	if !d.seen || d.better(value, action, d.best) {
		d.best = Result{Value: value, Action: action}
		d.seen = true
	}
}

func (d *decision) Result() Result {
	return d.best
}
