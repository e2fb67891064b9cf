package searcher

import (
	"fmt"
	"time"

	"multiagent/experiments/metrics"
	"multiagent/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Mode selects how opponents (agents >= 1) are modelled.
type Mode int

const (
	// Minimax treats every opponent as a worst-case adversary.
	Minimax Mode = iota
	// Expectimax treats every opponent as choosing uniformly at random.
	Expectimax
)

func (m Mode) String() string {
	switch m {
	case Minimax:
		return "minimax"
	case Expectimax:
		return "expectimax"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode is the inverse of Mode.String.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "minimax":
		return Minimax, nil
	case "expectimax":
		return Expectimax, nil
	}
	return 0, &ConfigurationError{Field: "mode", Value: name, Reason: "expected minimax or expectimax"}
}

// Result is the value of a searched node and the action that achieves it.
// Action is game.Stop at terminal or cutoff nodes and game.NoAction at chance nodes.
type Result struct {
	Value  float64
	Action game.Action
}

type Option func(s *Searcher)

// Searcher runs exhaustive depth-limited search for agent 0. A Searcher holds
// only configuration, so one value can serve several goroutines.
type Searcher struct {
	mode            Mode
	evaluate        game.Evaluate
	tieBreak        TieBreak
	stuckAsTerminal bool
	withMetrics     bool
}

func WithMode(mode Mode) Option {
	return func(s *Searcher) {
		if mode == Minimax || mode == Expectimax {
			s.mode = mode
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithTieBreak(tieBreak TieBreak) Option {
	return func(s *Searcher) {
		s.tieBreak = tieBreak
	}
}

// WithStuckAsTerminal evaluates non-terminal states whose agent has no legal
// actions instead of failing with an InvalidStateError.
func WithStuckAsTerminal() Option {
	return func(s *Searcher) {
		s.stuckAsTerminal = true
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.withMetrics = true
	}
}

func New(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		mode:     Minimax,
		evaluate: game.EvaluateScore,
		tieBreak: FirstFound,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Searcher) Mode() Mode {
	return s.mode
}

// ChooseAction returns the best action for agent 0 looking depth full rounds ahead.
func (s *Searcher) ChooseAction(state game.State, depth int) (game.Action, error) {
	result, _, err := s.Search(state, depth)
	if err != nil {
		return game.NoAction, err
	}
	return result.Action, nil
}

// Search evaluates state for agent 0 with a budget of depth full rounds, where a
// round is one ply for every agent. Depth 0 returns the static evaluation of state.
func (s *Searcher) Search(state game.State, depth int) (Result, metrics.SearchMetric, error) {
	if depth < 0 {
		return Result{}, metrics.SearchMetric{}, errors.WithStack(
			&ConfigurationError{Field: "depth", Value: depth, Reason: "must not be negative"})
	}

	collector := metrics.NewDummyCollector()
	if s.withMetrics {
		collector = metrics.NewCollector()
	}
	collector.Start(s.mode.String(), depth)

	r := &run{Searcher: s, metrics: collector}
	result, err := r.dispatch(state, 0, depth)
	metric := collector.Complete()
	if err != nil {
		return Result{}, metric, errors.Wrapf(err, "%s search at depth %d", s.mode, depth)
	}

	log.Debug().
		Str("mode", s.mode.String()).
		Int("depth", depth).
		Float64("value", result.Value).
		Str("action", string(result.Action)).
		Int("nodes", metric.Nodes).
		Int("evaluations", metric.Evaluations).
		Dur("elapsed", metric.Duration.Round(time.Microsecond)).
		Msg("search complete")
	return result, metric, nil
}

// run carries the state of one top-level search.
type run struct {
	*Searcher
	metrics metrics.Collector
}
