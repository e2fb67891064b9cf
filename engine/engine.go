package engine

import (
	"context"

	"multiagent/experiments/metrics"
)

const MaxMoves = 10000

type Engine interface {
	// Run plays a game till a win, a loss or a max number of moves is reached
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
