package searcher

import (
	"errors"
	"math"

	"minimax/game"

	"github.com/rs/zerolog/log"
)

// ErrNoMoves is returned when the position offers no legal move at all.
// Callers must treat this as a violated precondition, not a pass.
var ErrNoMoves = errors.New("no legal moves in this position")

type Option func(m *Minimax)

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.maxDepth = depth
		}
	}
}

// WithoutPruning disables alpha-beta cutoffs so the full game tree is
// searched to the depth limit. The chosen move and its value are identical
// to the pruned search; only the node count differs.
func WithoutPruning() Option {
	return func(m *Minimax) {
		m.pruning = false
	}
}

// WithMetrics enables per-search statistics. Without it Metrics and Nodes
// report zero values.
func WithMetrics() Option {
	return func(m *Minimax) {
		m.stats = NewMetricsCollector()
	}
}

// Minimax is a depth-limited minimax agent with alpha-beta pruning. It
// operates purely against the game.State contract and never mutates the
// states it explores.
type Minimax struct {
	maxDepth int
	pruning  bool
	stats    Collector
	last     MoveMetrics
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{
		maxDepth: DefaultDepth,
		pruning:  true,
		stats:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FindBestMove returns the move that maximizes player's worst-case outcome
// under alternating play, searched to the configured depth. Among moves of
// equal value the one appearing first in LegalMoves wins.
func (m *Minimax) FindBestMove(state game.State, player game.Player) (game.Move, error) {
	m.stats.Start()

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, ErrNoMoves
	}

	var best game.Move
	bestValue := math.Inf(-1)
	alpha, beta := math.Inf(-1), math.Inf(1)

	for _, move := range moves {
		value := m.minValue(state.Play(move), player, 1, alpha, beta)
		// Strictly greater: ties go to the earlier move.
		if value > bestValue {
			bestValue = value
			best = move
		}
		alpha = math.Max(alpha, bestValue)
	}

	m.last = m.stats.Complete(bestValue)
	log.Debug().
		Int64("nodes", m.last.Nodes).
		Int64("cutoffs", m.last.Cutoffs).
		Float64("value", bestValue).
		Dur("took", m.last.Duration).
		Msg("minimax search complete")

	return best, nil
}

// Metrics returns statistics for the most recent FindBestMove call.
func (m *Minimax) Metrics() MoveMetrics {
	return m.last
}

// Nodes returns the number of nodes explored by the most recent search.
func (m *Minimax) Nodes() int64 {
	return m.last.Nodes
}

func (m *Minimax) maxValue(state game.State, player game.Player, depth int, alpha, beta float64) float64 {
	m.stats.AddNode()

	if game.IsTerminal(state) {
		return terminalScore(state.Winner(), player)
	}
	if depth >= m.maxDepth {
		return state.Evaluate(player)
	}

	value := math.Inf(-1)
	for _, move := range state.LegalMoves() {
		value = math.Max(value, m.minValue(state.Play(move), player, depth+1, alpha, beta))
		if m.pruning {
			if value >= beta {
				m.stats.AddCutoff()
				return value
			}
			alpha = math.Max(alpha, value)
		}
	}
	return value
}

func (m *Minimax) minValue(state game.State, player game.Player, depth int, alpha, beta float64) float64 {
	m.stats.AddNode()

	if game.IsTerminal(state) {
		return terminalScore(state.Winner(), player)
	}
	if depth >= m.maxDepth {
		return state.Evaluate(player)
	}

	value := math.Inf(1)
	for _, move := range state.LegalMoves() {
		value = math.Min(value, m.maxValue(state.Play(move), player, depth+1, alpha, beta))
		if m.pruning {
			if value <= alpha {
				m.stats.AddCutoff()
				return value
			}
			beta = math.Min(beta, value)
		}
	}
	return value
}

func terminalScore(outcome game.Outcome, player game.Player) float64 {
	if outcome == game.Draw {
		return DrawScore
	}
	if winner, ok := outcome.Winner(); ok && winner == player {
		return WinScore
	}
	return LossScore
}
