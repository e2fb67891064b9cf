package game

// Action identifies a move an agent can take. Games are free to choose their own
// labels as long as they are unique among the legal actions of one agent.
type Action string

const (
	// Stop is reported when a search hits a terminal or cutoff state before any
	// action could be chosen.
	Stop Action = "Stop"
	// NoAction is reported by nodes that do not commit to a move (chance nodes).
	NoAction Action = ""
)

// State should be immutable - Successor always returns a new copy.
// Agent 0 is the maximizer; agents 1..NumAgents()-1 are its opponents.
type State interface {
	LegalActions(agent int) []Action
	Successor(agent int, action Action) State
	NumAgents() int
	IsWin() bool
	IsLose() bool
	Score() float64
}

// Evaluates the game state to a score where higher numbers are better for agent 0.
// Evaluations are only requested at terminal and cutoff states.
type Evaluate func(State) float64
