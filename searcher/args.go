package searcher

// Scoring constants for the minimax agent

// Terminal outcomes are scored far outside the range any heuristic
// evaluation can reach, so a decided game always dominates the search.
const (
	WinScore  = 1000.0
	DrawScore = 0.0
	LossScore = -1000.0
)

// DefaultDepth is the search depth in plies used when none is configured.
const DefaultDepth = 5
