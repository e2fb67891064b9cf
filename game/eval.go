package game

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// EvaluateScore returns the game score unchanged. It is the default evaluation
// function for search agents.
func EvaluateScore(s State) float64 {
	return s.Score()
}

// EvaluateMaze adds food proximity and ghost danger to the score of a maze state.
// Non-maze states fall back to their score.
func EvaluateMaze(s State) float64 {
	m, ok := s.(*Maze)
	if !ok || m.win || m.lose {
		return s.Score()
	}

	value := m.score
	if food := m.ClosestFood(); food >= 0 {
		value += 1.0 / float64(food+1)
	}
	value -= 2.0 * float64(m.foodLeft)

	// Only adjacent ghosts are a threat worth weighting heavily
	if ghost := m.ClosestGhost(); ghost <= 1 {
		value -= 200.0
	} else if !math.IsInf(ghost, 1) {
		value -= 1.0 / ghost
	}
	return value
}

var evaluations = map[string]Evaluate{
	"score": EvaluateScore,
	"maze":  EvaluateMaze,
}

// LookupEvaluation returns a registered evaluation function by name.
func LookupEvaluation(name string) (Evaluate, error) {
	evaluate, ok := evaluations[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluation function %q (available: %s)", name, strings.Join(EvaluationNames(), ", "))
	}
	return evaluate, nil
}

// EvaluationNames lists the registered evaluation functions in alphabetical order.
func EvaluationNames() []string {
	names := make([]string, 0, len(evaluations))
	for name := range evaluations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
