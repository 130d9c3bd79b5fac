package engine

import (
	"fmt"
	"time"

	"minimax/game"
	"minimax/searcher"
	"minimax/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Agent decides a move for the side to move in the given state.
type Agent interface {
	FindMove(state game.State) (game.Move, error)
}

// MoveRecord captures one move of a finished game for reporting.
type MoveRecord struct {
	Step     int
	Player   game.Player
	Move     string
	Nodes    int64
	Duration time.Duration
}

// DefaultMaxTurns caps runaway games. The simplified chess rules have no
// repetition or 50-move draws, so two agents can shuffle pieces forever.
const DefaultMaxTurns = 500

// Engine drives a local game between two agents until the game is decided
// or the turn cap is hit.
type Engine struct {
	State    game.State
	Records  []MoveRecord
	agents   map[game.Player]Agent
	maxTurns int
}

// NewLocal creates an engine over the initial state with first playing as
// Player1 and second as Player2.
func NewLocal(initial game.State, first, second Agent) *Engine {
	if first == nil || second == nil {
		panic("need two agents")
	}
	return &Engine{
		State: initial,
		agents: map[game.Player]Agent{
			game.Player1: first,
			game.Player2: second,
		},
		maxTurns: DefaultMaxTurns,
	}
}

// WithMaxTurns overrides the turn cap.
func (e *Engine) WithMaxTurns(maxTurns int) *Engine {
	if maxTurns > 0 {
		e.maxTurns = maxTurns
	}
	return e
}

// Run executes the game loop. It returns Ongoing if the turn cap was hit
// before the game was decided.
func (e *Engine) Run() (game.Outcome, error) {
	log.Info().Stringer("player", e.State.Player()).Msg("game starting")

	for turn := 1; !game.IsTerminal(e.State); turn++ {
		if turn > e.maxTurns {
			log.Warn().Int("turns", e.maxTurns).Msg("turn cap reached without a result")
			return game.Ongoing, nil
		}

		player := e.State.Player()
		agent := e.agents[player]

		start := time.Now()
		move, err := agent.FindMove(e.State)
		if err != nil {
			return game.Ongoing, fmt.Errorf("turn %d: %s: %w", turn, player, err)
		}
		if !utils.Contains(e.State.LegalMoves(), move) {
			return game.Ongoing, fmt.Errorf("turn %d: %s played illegal move %s", turn, player, move)
		}

		record := MoveRecord{
			Step:     turn,
			Player:   player,
			Move:     move.String(),
			Duration: time.Since(start),
		}
		if searching, ok := agent.(interface{ Metrics() searcher.MoveMetrics }); ok {
			record.Nodes = searching.Metrics().Nodes
		}
		e.Records = append(e.Records, record)

		e.State = e.State.Play(move)
		log.Debug().Int("turn", turn).Stringer("player", player).Stringer("move", move).Msg("move played")
	}

	outcome := e.State.Winner()
	log.Info().Stringer("winner", outcome).Msg("game over")
	return outcome, nil
}

// SearchAgent plays with a minimax searcher.
type SearchAgent struct {
	Search *searcher.Minimax
}

func (a SearchAgent) FindMove(state game.State) (game.Move, error) {
	return a.Search.FindBestMove(state, state.Player())
}

func (a SearchAgent) Metrics() searcher.MoveMetrics {
	return a.Search.Metrics()
}

// RandomAgent plays a uniformly random legal move. Useful as a baseline in
// experiments.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(state game.State) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, searcher.ErrNoMoves
	}
	return moves[a.rng.Intn(len(moves))], nil
}

// FuncAgent adapts a plain function, e.g. a prompt that collects a move
// from a human.
type FuncAgent func(game.State) (game.Move, error)

func (f FuncAgent) FindMove(state game.State) (game.Move, error) {
	return f(state)
}
