package engine

import (
	"context"
	"fmt"
	"time"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// LocalEngine plays a game in-process, asking every agent for a move in turn order.
type LocalEngine struct {
	Name     string
	State    game.State
	Agents   []agent.Agent
	MaxMoves int
}

var _ Engine = (*LocalEngine)(nil)

func NewLocalEngine(name string, state game.State, agents []agent.Agent, maxMoves int) (*LocalEngine, error) {
	if len(agents) != state.NumAgents() {
		return nil, fmt.Errorf("game has %d agents but %d were provided", state.NumAgents(), len(agents))
	}
	if maxMoves <= 0 || maxMoves > MaxMoves {
		maxMoves = MaxMoves
	}
	return &LocalEngine{
		Name:     name,
		State:    state,
		Agents:   agents,
		MaxMoves: maxMoves,
	}, nil
}

// Run executes the game loop until the game is over or the move limit is hit.
// Cancelling ctx stops the game between two moves.
func (e *LocalEngine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{Layout: e.Name, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Str("layout", e.Name).Int("agents", len(e.Agents)).Msg("game started")

	numAgents := len(e.Agents)
	moves := 0
	for !e.State.IsWin() && !e.State.IsLose() && moves < e.MaxMoves {
		if err := ctx.Err(); err != nil {
			return e.complete(gameMetric, moves), moveMetrics, err
		}

		index := moves % numAgents
		action, searchMetric, err := e.Agents[index].FindMove(e.State, index)
		if err != nil {
			return e.complete(gameMetric, moves), moveMetrics, errors.Wrapf(err, "agent %d at move %d", index, moves+1)
		}
		moves++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         moves,
			Agent:        index,
			Action:       string(action),
			SearchMetric: searchMetric,
		})

		log.Debug().Int("step", moves).Int("agent", index).Str("action", string(action)).Msg("move played")
		e.State = e.State.Successor(index, action)
	}

	gameMetric = e.complete(gameMetric, moves)
	log.Info().
		Str("layout", e.Name).
		Str("outcome", gameMetric.Outcome()).
		Float64("score", gameMetric.Score).
		Int("moves", moves).
		Msg("game over")
	return gameMetric, moveMetrics, nil
}

func (e *LocalEngine) complete(gameMetric metrics.GameMetric, moves int) metrics.GameMetric {
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = moves
	gameMetric.Win = e.State.IsWin()
	gameMetric.Lose = e.State.IsLose()
	gameMetric.Score = e.State.Score()
	return gameMetric
}
