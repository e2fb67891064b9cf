package searcher

import "multiagent/game"

// chance is an opponent node modelled as picking each legal action with equal
// probability. Its value is the plain mean of its children and it commits to no action.
type chance struct {
	sum    float64
	visits int
}

func newChanceNode() *chance {
	return &chance{}
}

func (c *chance) Add(value float64, _ game.Action) {
	c.sum += value
	c.visits++
}

func (c *chance) Result() Result {
	if c.visits == 0 { // Prevent division by zero
		panic("cannot average a chance node without children")
	}
	return Result{Value: c.sum / float64(c.visits), Action: game.NoAction}
}
