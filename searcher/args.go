package searcher

// Defaults for search agents

const DefaultDepth = 2 // Full rounds, one ply per agent

const DefaultEvaluation = "score"
