package game

import (
	"fmt"
	"math"
	"strings"
)

const (
	TimePenalty = 1.0
	FoodReward  = 10.0
	WinReward   = 500.0
	LosePenalty = 500.0
)

// Maze represents the dynamic state of a pursuit game on a Layout: the player
// (agent 0) eats food while ghosts (agents 1..n) try to catch it.
// Maze values are immutable; Successor always returns a fresh copy.
type Maze struct {
	layout    *Layout
	player    position
	ghosts    []position
	ghostDirs []Action // Last move per ghost, Stop before the first move
	food      [][]bool
	foodLeft  int
	score     float64
	win       bool
	lose      bool
}

var _ State = (*Maze)(nil)

// NewMaze initializes and returns the starting state of a layout.
func NewMaze(l *Layout) *Maze {
	m := &Maze{
		layout:    l,
		player:    l.player,
		ghosts:    append([]position(nil), l.ghosts...),
		ghostDirs: make([]Action, len(l.ghosts)),
		food:      make([][]bool, l.Height),
		foodLeft:  len(l.food),
	}
	for i := range m.ghostDirs {
		m.ghostDirs[i] = Stop
	}
	for r := range m.food {
		m.food[r] = make([]bool, l.Width)
	}
	for _, p := range l.food {
		m.food[p.row][p.col] = true
	}
	return m
}

func (m *Maze) Copy() *Maze {
	food := make([][]bool, len(m.food))
	for r, row := range m.food {
		food[r] = append([]bool(nil), row...)
	}
	return &Maze{
		layout:    m.layout, // Layouts are immutable
		player:    m.player,
		ghosts:    append([]position(nil), m.ghosts...),
		ghostDirs: append([]Action(nil), m.ghostDirs...),
		food:      food,
		foodLeft:  m.foodLeft,
		score:     m.score,
		win:       m.win,
		lose:      m.lose,
	}
}

func (m *Maze) NumAgents() int {
	return 1 + len(m.ghosts)
}

func (m *Maze) IsWin() bool {
	return m.win
}

func (m *Maze) IsLose() bool {
	return m.lose
}

func (m *Maze) Score() float64 {
	return m.score
}

// LegalActions returns the moves available to an agent. Terminal states have none.
// The player may also Stop; ghosts may not stop and only reverse at dead ends.
func (m *Maze) LegalActions(agent int) []Action {
	if m.win || m.lose || agent < 0 || agent >= m.NumAgents() {
		return nil
	}

	if agent == 0 {
		actions := m.openMoves(m.player)
		return append(actions, Stop)
	}

	ghost := agent - 1
	actions := m.openMoves(m.ghosts[ghost])
	reverse := Reverse(m.ghostDirs[ghost])
	if len(actions) > 1 {
		for i, a := range actions {
			if a == reverse {
				actions = append(actions[:i], actions[i+1:]...)
				break
			}
		}
	}
	return actions
}

func (m *Maze) openMoves(from position) []Action {
	actions := make([]Action, 0, len(compass)+1)
	for _, direction := range compass {
		if !m.layout.isWall(from.step(direction)) {
			actions = append(actions, direction)
		}
	}
	return actions
}

// Successor returns the state after agent plays action. It panics when the state
// is already terminal or the action is illegal, since both are caller bugs.
func (m *Maze) Successor(agent int, action Action) State {
	if m.win || m.lose {
		panic("cannot generate a successor of a terminal state")
	}
	if !m.isLegal(agent, action) {
		panic(fmt.Sprintf("illegal action %q for agent %d", action, agent))
	}

	next := m.Copy()
	if agent == 0 {
		next.movePlayer(action)
	} else {
		next.moveGhost(agent-1, action)
	}
	return next
}

func (m *Maze) isLegal(agent int, action Action) bool {
	for _, a := range m.LegalActions(agent) {
		if a == action {
			return true
		}
	}
	return false
}

func (m *Maze) movePlayer(action Action) {
	m.player = m.player.step(action)
	m.score -= TimePenalty

	if m.food[m.player.row][m.player.col] {
		m.food[m.player.row][m.player.col] = false
		m.foodLeft--
		m.score += FoodReward
		if m.foodLeft == 0 {
			m.win = true
			m.score += WinReward
			return
		}
	}
	m.checkCollisions()
}

func (m *Maze) moveGhost(ghost int, action Action) {
	m.ghosts[ghost] = m.ghosts[ghost].step(action)
	m.ghostDirs[ghost] = action
	m.checkCollisions()
}

func (m *Maze) checkCollisions() {
	for _, g := range m.ghosts {
		if g == m.player {
			m.lose = true
			m.score -= LosePenalty
			return
		}
	}
}

// FoodLeft returns the number of food pellets still on the board.
func (m *Maze) FoodLeft() int {
	return m.foodLeft
}

// ClosestFood returns the Manhattan distance from the player to the nearest food,
// or -1 when no food is left.
func (m *Maze) ClosestFood() int {
	closest := -1
	for r, row := range m.food {
		for c, ok := range row {
			if !ok {
				continue
			}
			if d := manhattan(m.player, position{r, c}); closest < 0 || d < closest {
				closest = d
			}
		}
	}
	return closest
}

// ClosestGhost returns the Manhattan distance from the player to the nearest ghost,
// or +Inf when the maze has no ghosts.
func (m *Maze) ClosestGhost() float64 {
	closest := math.Inf(1)
	for _, g := range m.ghosts {
		closest = math.Min(closest, float64(manhattan(m.player, g)))
	}
	return closest
}

// GhostDistanceTo returns the Manhattan distance from ghost (0-based) to the player.
func (m *Maze) GhostDistanceTo(ghost int) int {
	return manhattan(m.ghosts[ghost], m.player)
}

// GhostStep returns how much a ghost move changes its distance to the player.
// Negative values close in.
func (m *Maze) GhostStep(ghost int, action Action) int {
	from := m.ghosts[ghost]
	return manhattan(from.step(action), m.player) - manhattan(from, m.player)
}

func (m *Maze) String() string {
	var sb strings.Builder
	for r := 0; r < m.layout.Height; r++ {
		for c := 0; c < m.layout.Width; c++ {
			p := position{r, c}
			switch {
			case m.layout.walls[r][c]:
				sb.WriteByte(wallCell)
			case m.isGhost(p):
				sb.WriteByte(ghostCell)
			case p == m.player:
				sb.WriteByte(playerCell)
			case m.food[r][c]:
				sb.WriteByte(foodCell)
			default:
				sb.WriteByte(emptyCell)
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Score: %g", m.score)
	return sb.String()
}

func (m *Maze) isGhost(p position) bool {
	for _, g := range m.ghosts {
		if g == p {
			return true
		}
	}
	return false
}
