package searcher

// Hyperparameters for MCTS

// DefaultExploration is C in value/visits + C*sqrt(2*ln(N)/visits).
const DefaultExploration = 1.41

// Rollouts are scored from the root player's perspective
const (
	Win  = 1.0
	Draw = 0.0
	Loss = -Win
)
