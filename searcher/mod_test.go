package searcher

import (
	"testing"

	"multiagent/experiments/metrics"
	"multiagent/game"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var modes = []Mode{Minimax, Expectimax}

func TestSearchScenarios(t *testing.T) {
	t.Run("single agent picks the best successor", func(t *testing.T) {
		tree := withAgents(labelled([]game.Action{"A", "B"}, leaf(3), leaf(5)), 1)

		for _, mode := range modes {
			got, _, err := New(WithMode(mode)).Search(tree, 1)

			require.NoError(t, err)
			require.Equal(t, Result{Value: 5, Action: "B"}, got, "%s should choose B", mode)
		}
	})

	// Under A the opponent can reach {2, 8}, under B only {4, 4}
	opponentTree := func() *mockTree {
		return withAgents(labelled([]game.Action{"A", "B"},
			branch(leaf(2), leaf(8)),
			branch(leaf(4), leaf(4)),
		), 2)
	}

	t.Run("minimax assumes the worst reply", func(t *testing.T) {
		got, _, err := New(WithMode(Minimax)).Search(opponentTree(), 1)

		require.NoError(t, err)
		require.Equal(t, Result{Value: 4, Action: "B"}, got)
	})

	t.Run("expectimax averages over replies", func(t *testing.T) {
		got, _, err := New(WithMode(Expectimax)).Search(opponentTree(), 1)

		require.NoError(t, err)
		require.Equal(t, Result{Value: 5, Action: "A"}, got)
	})

	t.Run("choosing the action only", func(t *testing.T) {
		action, err := New(WithMode(Expectimax)).ChooseAction(opponentTree(), 1)

		require.NoError(t, err)
		require.Equal(t, game.Action("A"), action)
	})
}

func TestSearchDepthZero(t *testing.T) {
	for _, mode := range modes {
		for _, agents := range []int{1, 2, 5} {
			// No legal actions at all, which would be invalid if searched
			state := &mockTree{agents: agents, value: 12.5}

			got, _, err := New(WithMode(mode)).Search(state, 0)

			require.NoError(t, err)
			require.Equal(t, Result{Value: 12.5, Action: game.Stop}, got,
				"%s with %d agents should return the input evaluation", mode, agents)
		}
	}
}

func TestSearchForcedLine(t *testing.T) {
	for _, mode := range modes {
		for agents := 1; agents <= 4; agents++ {
			for depth := 1; depth <= 3; depth++ {
				state := plyCounter{agents: agents, actions: []game.Action{"only"}}

				got, _, err := New(WithMode(mode)).Search(state, depth)

				require.NoError(t, err)
				require.Equal(t, float64(agents*depth), got.Value,
					"%s with %d agents at depth %d should follow the forced line to the cutoff", mode, agents, depth)
				require.Equal(t, game.Action("only"), got.Action)
			}
		}
	}
}

func TestSearchRoundAccounting(t *testing.T) {
	t.Run("three agents and two rounds explore six plies", func(t *testing.T) {
		state := plyCounter{agents: 3, actions: []game.Action{"x", "y"}}
		deepest := 0
		evaluate := func(s game.State) float64 {
			ply := s.(plyCounter).ply
			deepest = max(deepest, ply)
			return float64(ply)
		}

		got, metric, err := New(WithEvaluationFn(evaluate), WithMetrics()).Search(state, 2)

		require.NoError(t, err)
		require.Equal(t, 6.0, got.Value)
		require.Equal(t, 6, deepest, "Every cutoff should happen after exactly 6 plies")
		require.Equal(t, 64, metric.Evaluations, "Should evaluate 2^6 leaves")
		require.Equal(t, 64, metric.Cutoffs, "Every leaf should be a depth cutoff")
		require.Equal(t, 63, metric.Nodes, "Should expand every inner node of a binary tree of height 6")
		require.Equal(t, "minimax", metric.Mode)
		require.Equal(t, 2, metric.Depth)
	})

	t.Run("metrics are empty unless enabled", func(t *testing.T) {
		state := plyCounter{agents: 2, actions: []game.Action{"x"}}

		_, metric, err := New().Search(state, 1)

		require.NoError(t, err)
		require.Equal(t, metrics.SearchMetric{}, metric)
	})
}

func TestSearchBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		// Two agents and two rounds give four levels
		tree := withAgents(randomTree(rng, 4), 2)

		for _, mode := range modes {
			s := New(WithMode(mode))
			r := &run{Searcher: s, metrics: metrics.NewDummyCollector()}

			root, _, err := s.Search(tree, 2)
			require.NoError(t, err)

			for _, child := range tree.children {
				childValue, err := r.dispatch(child, 1, 2)
				require.NoError(t, err)
				require.GreaterOrEqual(t, root.Value, childValue.Value, "Maximizer should bound its children from above")

				if mode != Minimax {
					continue
				}
				for _, grandChild := range child.children {
					grandChildValue, err := r.dispatch(grandChild, 2, 1)
					require.NoError(t, err)
					require.LessOrEqual(t, childValue.Value, grandChildValue.Value, "Minimizer should bound its children from below")
				}
			}
		}
	}
}

func TestSearchTerminalStates(t *testing.T) {
	t.Run("win at the root", func(t *testing.T) {
		state := withAgents(branch(leaf(100)), 2)
		state.win = true
		state.value = 50

		got, _, err := New().Search(state, 3)

		require.NoError(t, err)
		require.Equal(t, Result{Value: 50, Action: game.Stop}, got, "Should not search past a win")
	})

	t.Run("loss below the root", func(t *testing.T) {
		lost := branch(leaf(100))
		lost.lose = true
		lost.value = -500
		won := leaf(1)
		won.win = true
		state := withAgents(branch(lost, won), 1)

		got, _, err := New().Search(state, 3)

		require.NoError(t, err)
		require.Equal(t, Result{Value: 1, Action: "b"}, got)
	})
}

func TestSearchErrors(t *testing.T) {
	t.Run("negative depth", func(t *testing.T) {
		_, _, err := New().Search(plyCounter{agents: 1}, -1)

		require.ErrorIs(t, err, ErrConfiguration)
		var configErr *ConfigurationError
		require.True(t, errors.As(err, &configErr))
		require.Equal(t, "depth", configErr.Field)
	})

	t.Run("stuck opponent", func(t *testing.T) {
		stuck := branch()
		stuck.value = 3
		state := withAgents(branch(stuck), 2)

		for _, mode := range modes {
			_, _, err := New(WithMode(mode)).Search(state, 1)

			require.ErrorIs(t, err, ErrInvalidState, "%s should fail on a stuck agent", mode)
			var stateErr *InvalidStateError
			require.True(t, errors.As(err, &stateErr))
			require.Equal(t, 1, stateErr.Agent)
		}
	})

	t.Run("stuck opponent evaluated as terminal", func(t *testing.T) {
		stuck := branch()
		stuck.value = 3
		state := withAgents(branch(stuck), 2)

		got, _, err := New(WithStuckAsTerminal()).Search(state, 1)

		require.NoError(t, err)
		require.Equal(t, Result{Value: 3, Action: "a"}, got)
	})

	t.Run("stuck maximizer at the root", func(t *testing.T) {
		state := withAgents(branch(), 2)

		for _, mode := range modes {
			_, _, err := New(WithMode(mode)).Search(state, 1)

			require.ErrorIs(t, err, ErrInvalidState, "%s should fail on a stuck root", mode)
			var stateErr *InvalidStateError
			require.True(t, errors.As(err, &stateErr))
			require.Equal(t, 0, stateErr.Agent)
			require.Equal(t, 1, stateErr.Depth)
		}
	})

	t.Run("stuck opponent evaluated as terminal next to a chance node", func(t *testing.T) {
		stuck := branch()
		stuck.value = 3
		state := withAgents(branch(branch(leaf(2), leaf(6)), stuck), 2)

		expectimax, _, err := New(WithMode(Expectimax), WithStuckAsTerminal()).Search(state, 1)
		require.NoError(t, err)
		require.Equal(t, Result{Value: 4, Action: "a"}, expectimax, "The chance node averages 2 and 6")

		minimax, _, err := New(WithMode(Minimax), WithStuckAsTerminal()).Search(state, 1)
		require.NoError(t, err)
		require.Equal(t, Result{Value: 3, Action: "b"}, minimax, "The min node of 2 and 6 is worse than the stuck state")
	})

	t.Run("evaluation panics propagate", func(t *testing.T) {
		evaluate := func(game.State) float64 { panic("broken heuristic") }
		s := New(WithEvaluationFn(evaluate))

		require.PanicsWithValue(t, "broken heuristic", func() {
			_, _, _ = s.Search(plyCounter{agents: 1, actions: []game.Action{"x"}}, 1)
		})
	})
}

func TestSearchOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s := New()

		require.Equal(t, Minimax, s.Mode())
		require.Equal(t, FirstFound, s.tieBreak)
		require.False(t, s.stuckAsTerminal)
	})

	t.Run("ignoring invalid values", func(t *testing.T) {
		s := New(WithMode(Mode(9)), WithEvaluationFn(nil))

		require.Equal(t, Minimax, s.Mode())
		require.NotNil(t, s.evaluate)
	})

	t.Run("custom evaluation", func(t *testing.T) {
		tree := withAgents(branch(leaf(3), leaf(5)), 1)
		negate := func(s game.State) float64 { return -s.Score() }

		got, _, err := New(WithEvaluationFn(negate)).Search(tree, 1)

		require.NoError(t, err)
		require.Equal(t, Result{Value: -3, Action: "a"}, got)
	})

	t.Run("tie break by action", func(t *testing.T) {
		tree := withAgents(branch(leaf(5), leaf(5)), 1)

		first, _, err := New().Search(tree, 1)
		require.NoError(t, err)
		byAction, _, err := New(WithTieBreak(ByAction)).Search(tree, 1)
		require.NoError(t, err)

		require.Equal(t, game.Action("a"), first.Action)
		require.Equal(t, game.Action("b"), byAction.Action)
	})
}
