package game

const (
	North Action = "North"
	South Action = "South"
	East  Action = "East"
	West  Action = "West"
)

// Compass moves in the order they are generated by LegalActions.
var compass = []Action{North, South, East, West}

type position struct {
	row, col int
}

// step returns the position reached by moving one cell towards direction.
// Stop (and any unknown action) leaves the position unchanged.
func (p position) step(direction Action) position {
	switch direction {
	case North:
		return position{p.row - 1, p.col}
	case South:
		return position{p.row + 1, p.col}
	case East:
		return position{p.row, p.col + 1}
	case West:
		return position{p.row, p.col - 1}
	}
	return p
}

func manhattan(a, b position) int {
	return abs(a.row-b.row) + abs(a.col-b.col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Reverse returns the opposite compass direction, or Stop for anything else.
func Reverse(direction Action) Action {
	switch direction {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return Stop
}
