package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustMaze(t *testing.T, text string) *Maze {
	t.Helper()
	l, err := ParseLayout("test", text)
	require.NoError(t, err)
	return NewMaze(l)
}

func TestMazeLegalActions(t *testing.T) {
	t.Run("player can stop", func(t *testing.T) {
		m := mustMaze(t, "%%%%%\n%.P %\n%%%%%")

		require.Equal(t, []Action{East, West, Stop}, m.LegalActions(0))
	})

	t.Run("ghost cannot stop or reverse", func(t *testing.T) {
		m := mustMaze(t, "%%%%%%\n%P   %\n%  G %\n%%%%%%")
		require.Equal(t, []Action{North, East, West}, m.LegalActions(1))

		moved := m.Successor(1, West).(*Maze)

		require.Equal(t, []Action{North, West}, moved.LegalActions(1), "Ghost should not turn back east")
	})

	t.Run("ghost reverses at a dead end", func(t *testing.T) {
		m := mustMaze(t, "%%%%%%\n%P G %\n%%%%%%")

		moved := m.Successor(1, East).(*Maze)

		require.Equal(t, []Action{West}, moved.LegalActions(1), "The only way out is back")
	})

	t.Run("unknown agents and terminal states have no actions", func(t *testing.T) {
		m := mustMaze(t, "%%%%\n%P.%\n%%%%")

		require.Empty(t, m.LegalActions(3))
		require.Empty(t, m.LegalActions(-1))
		require.Empty(t, m.Successor(0, East).LegalActions(0))
	})
}

func TestMazeSuccessor(t *testing.T) {
	t.Run("eating food", func(t *testing.T) {
		m := mustMaze(t, "%%%%%\n%P..%\n%%%%%")

		next := m.Successor(0, East).(*Maze)

		require.Equal(t, FoodReward-TimePenalty, next.Score())
		require.Equal(t, 1, next.FoodLeft())
		require.False(t, next.IsWin())
		require.Equal(t, 2, m.FoodLeft(), "Parent state should not change")
		require.Equal(t, 0.0, m.Score())
	})

	t.Run("clearing the board wins", func(t *testing.T) {
		m := mustMaze(t, "%%%%\n%P.%\n%%%%")

		next := m.Successor(0, East)

		require.True(t, next.IsWin())
		require.Equal(t, FoodReward-TimePenalty+WinReward, next.Score())
	})

	t.Run("walking into a ghost loses", func(t *testing.T) {
		m := mustMaze(t, "%%%%%\n%PG.%\n%%%%%")

		next := m.Successor(0, East)

		require.True(t, next.IsLose())
		require.Equal(t, -TimePenalty-LosePenalty, next.Score())
	})

	t.Run("ghost catching the player loses", func(t *testing.T) {
		m := mustMaze(t, "%%%%%\n%P G%\n%.  %\n%%%%%")
		m = m.Successor(1, West).(*Maze)
		require.False(t, m.IsLose())

		next := m.Successor(1, West)

		require.True(t, next.IsLose())
		require.Equal(t, -LosePenalty, next.Score())
	})

	t.Run("stop keeps the position", func(t *testing.T) {
		m := mustMaze(t, "%%%%%\n%P .%\n%%%%%")

		next := m.Successor(0, Stop).(*Maze)

		require.Equal(t, m.player, next.player)
		require.Equal(t, -TimePenalty, next.Score())
	})

	t.Run("illegal actions panic", func(t *testing.T) {
		m := mustMaze(t, "%%%%%\n%P .%\n%%%%%")

		require.Panics(t, func() { m.Successor(0, North) })
	})

	t.Run("terminal states panic", func(t *testing.T) {
		m := mustMaze(t, "%%%%\n%P.%\n%%%%").Successor(0, East)

		require.Panics(t, func() { m.Successor(0, West) })
	})
}

func TestMazeDistances(t *testing.T) {
	m := mustMaze(t, "%%%%%%\n%P  .%\n%   G%\n%%%%%%")

	require.Equal(t, 3, m.ClosestFood())
	require.Equal(t, 4.0, m.ClosestGhost())
	require.Equal(t, 4, m.GhostDistanceTo(0))
	require.Equal(t, -1, m.GhostStep(0, North))
	require.Equal(t, 2, m.NumAgents())

	empty := mustMaze(t, "%%%\n%P%\n%%%")
	require.Equal(t, -1, empty.ClosestFood())
	require.True(t, empty.ClosestGhost() > 1e300)
}

func TestMazeString(t *testing.T) {
	m := mustMaze(t, "%%%%%\n%P.G%\n%%%%%")

	require.Equal(t, "%%%%%\n%P.G%\n%%%%%\nScore: 0", m.String())
}
