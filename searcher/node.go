package searcher

import (
	"multiagent/game"

	"github.com/pkg/errors"
)

// Node aggregates the values of a node's children into the node's own result.
// Each node role (maximizer, minimizer, chance) is one implementation.
type Node interface {
	Add(value float64, action game.Action)
	Result() Result
}

// isCutoff reports whether recursion stops at state. Only the current state is
// inspected, the guard never looks one ply further.
func isCutoff(state game.State, depth int) bool {
	return state.IsWin() || state.IsLose() || depth == 0
}

// dispatch is the round controller. agent may be one past the last agent index
// and is reduced modulo the agent count before use. Depth is decremented once the
// last agent of a round has moved, so it affects the recursion below this node.
func (r *run) dispatch(state game.State, agent int, depth int) (Result, error) {
	if isCutoff(state, depth) {
		return r.evaluateLeaf(state, !state.IsWin() && !state.IsLose()), nil
	}

	numAgents := state.NumAgents()
	if numAgents < 1 {
		return Result{}, errors.WithStack(
			&ConfigurationError{Field: "agents", Value: numAgents, Reason: "state must have at least one agent"})
	}
	agent %= numAgents

	if agent == numAgents-1 { // End of round
		depth--
	}

	if agent == 0 {
		return r.expand(state, agent, depth, newMaxNode(r.tieBreak))
	}
	return r.expand(state, agent, depth, r.opponentNode())
}

func (r *run) opponentNode() Node {
	if r.mode == Expectimax {
		return newChanceNode()
	}
	return newMinNode(r.tieBreak)
}

// expand recurses into every legal action of agent and folds the child values into node.
func (r *run) expand(state game.State, agent int, depth int, node Node) (Result, error) {
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		if r.stuckAsTerminal {
			return r.evaluateLeaf(state, false), nil
		}
		return Result{}, errors.WithStack(&InvalidStateError{Agent: agent, Depth: depth})
	}

	r.metrics.AddNode()
	for _, action := range actions {
		successor := state.Successor(agent, action)
		child, err := r.dispatch(successor, agent+1, depth)
		if err != nil {
			return Result{}, err
		}
		node.Add(child.Value, action)
	}
	return node.Result(), nil
}

func (r *run) evaluateLeaf(state game.State, cutoff bool) Result {
	r.metrics.AddEvaluation(cutoff)
	return Result{Value: r.evaluate(state), Action: game.Stop}
}
