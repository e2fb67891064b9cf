package game

import (
	"fmt"
	"sort"
	"strings"
)

const (
	wallCell   = '%'
	foodCell   = '.'
	playerCell = 'P'
	ghostCell  = 'G'
	emptyCell  = ' '
)

// Layout is the static part of a maze: walls plus the starting positions of food,
// the player and the ghosts. Layouts are never mutated after parsing.
type Layout struct {
	Name   string
	Height int
	Width  int
	walls  [][]bool
	food   []position
	player position
	ghosts []position
}

// ParseLayout reads a maze from its text form. Rows must all be the same width,
// exactly one player is required, and ghosts are numbered in reading order.
func ParseLayout(name, text string) (*Layout, error) {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("layout %q: empty", name)
	}

	l := &Layout{
		Name:   name,
		Height: len(lines),
		Width:  len(lines[0]),
		walls:  make([][]bool, len(lines)),
	}
	players := 0
	for r, line := range lines {
		if len(line) != l.Width {
			return nil, fmt.Errorf("layout %q: row %d has width %d, expected %d", name, r, len(line), l.Width)
		}
		l.walls[r] = make([]bool, l.Width)
		for c, cell := range line {
			p := position{r, c}
			switch cell {
			case wallCell:
				l.walls[r][c] = true
			case foodCell:
				l.food = append(l.food, p)
			case playerCell:
				l.player = p
				players++
			case ghostCell:
				l.ghosts = append(l.ghosts, p)
			case emptyCell:
			default:
				return nil, fmt.Errorf("layout %q: unknown cell %q at row %d col %d", name, cell, r, c)
			}
		}
	}
	if players != 1 {
		return nil, fmt.Errorf("layout %q: expected exactly one player, found %d", name, players)
	}
	return l, nil
}

// NumGhosts returns the number of ghosts placed on the layout.
func (l *Layout) NumGhosts() int {
	return len(l.ghosts)
}

func (l *Layout) isWall(p position) bool {
	if p.row < 0 || p.row >= l.Height || p.col < 0 || p.col >= l.Width {
		return true
	}
	return l.walls[p.row][p.col]
}

var builtinLayouts = map[string]string{
	"small": `
%%%%%%%%
%P  . G%
% %% % %
%.    .%
%%%%%%%%`,
	"medium": `
%%%%%%%%%%%%
%P.......G %
%.%%.%%.%%.%
%.. ... ...%
%.%%.%%.%%.%
%G.........%
%%%%%%%%%%%%`,
	"trapped": `
%%%%%%%%
% P   G%
%%%%%%%%`,
	"open": `
%%%%%%%
%P . .%
%  G  %
%. . .%
%%%%%%%`,
}

// LoadLayout returns a built-in layout by name.
func LoadLayout(name string) (*Layout, error) {
	text, ok := builtinLayouts[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout %q (available: %s)", name, strings.Join(LayoutNames(), ", "))
	}
	return ParseLayout(name, text)
}

// LayoutNames lists the built-in layouts in alphabetical order.
func LayoutNames() []string {
	names := make([]string, 0, len(builtinLayouts))
	for name := range builtinLayouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
