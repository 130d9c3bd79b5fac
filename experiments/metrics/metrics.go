package metrics

import "time"

// AgentConfig identifies one search configuration under experiment.
type AgentConfig struct {
	ID      int
	Game    string // "tictactoe" or "chess"
	Depth   int
	Pruning bool
}

// GameRecord is one finished game of a matchup.
type GameRecord struct {
	ID        int
	Agent1    int // AgentConfig.ID playing first
	Agent2    int // AgentConfig.ID playing second
	Winner    string
	Moves     int
	StartTime time.Time
	Duration  time.Duration
}

// MoveRecord is one move of a recorded game.
type MoveRecord struct {
	Game     int // GameRecord.ID
	Step     int
	Player   string
	Move     string
	Nodes    int64
	Duration time.Duration
}
