package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Mode        string
	Depth       int
	Duration    time.Duration
	Nodes       int // Expanded decision and chance nodes
	Evaluations int // Static evaluations, cutoffs included
	Cutoffs     int // Evaluations caused by an exhausted depth budget
}

type MoveMetric struct {
	Step   int
	Agent  int
	Action string
	SearchMetric
}

type GameMetric struct {
	Layout     string
	Win        bool
	Lose       bool
	Score      float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Outcome returns "win", "lose" or "timeout" for games stopped by the move limit.
func (g GameMetric) Outcome() string {
	switch {
	case g.Win:
		return "win"
	case g.Lose:
		return "lose"
	}
	return "timeout"
}

type Collector interface {
	Start(mode string, depth int)
	AddNode()
	AddEvaluation(cutoff bool)
	Complete() SearchMetric
}

type collector struct {
	mode        string
	depth       int
	startTime   time.Time
	nodes       atomic.Int64
	evaluations atomic.Int64
	cutoffs     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(mode string, depth int) {
	m.startTime = time.Now()
	m.mode = mode
	m.depth = depth
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddEvaluation(cutoff bool) {
	m.evaluations.Add(1)
	if cutoff {
		m.cutoffs.Add(1)
	}
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Mode:        m.mode,
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Evaluations: int(m.evaluations.Load()),
		Cutoffs:     int(m.cutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(mode string, depth int) {}
func (m *dummyCollector) AddNode()                     {}
func (m *dummyCollector) AddEvaluation(cutoff bool)    {}
func (m *dummyCollector) Complete() SearchMetric       { return SearchMetric{} }
