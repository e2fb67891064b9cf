package searcher

import "multiagent/game"

// TieBreak decides between children with equal values at decision nodes.
type TieBreak int

const (
	// FirstFound keeps the first child reaching the best value, in the order the
	// game listed its legal actions.
	FirstFound TieBreak = iota
	// ByAction compares (value, action) pairs: on equal values a maximizer prefers
	// the greater action label and a minimizer the smaller one. Reproduces searches
	// that order composite tuples.
	ByAction
)

func (t TieBreak) String() string {
	if t == ByAction {
		return "by-action"
	}
	return "first-found"
}

// ParseTieBreak is the inverse of TieBreak.String.
func ParseTieBreak(name string) (TieBreak, error) {
	switch name {
	case "first-found", "":
		return FirstFound, nil
	case "by-action":
		return ByAction, nil
	}
	return FirstFound, &ConfigurationError{Field: "tie_break", Value: name, Reason: "expected first-found or by-action"}
}

func (t TieBreak) greater(value float64, action game.Action, best Result) bool {
	if value != best.Value || t != ByAction {
		return value > best.Value
	}
	return action > best.Action
}

func (t TieBreak) less(value float64, action game.Action, best Result) bool {
	if value != best.Value || t != ByAction {
		return value < best.Value
	}
	return action < best.Action
}
