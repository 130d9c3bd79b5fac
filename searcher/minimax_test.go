package searcher

import (
	"fmt"
	"testing"

	"minimax/game"

	"github.com/stretchr/testify/require"
)

// treeMove indexes into a treeState's children.
type treeMove struct {
	id int
}

func (m treeMove) String() string {
	return fmt.Sprintf("m%d", m.id)
}

// treeState is a hand-built game tree for exercising the search in
// isolation from any real rule set.
type treeState struct {
	player   game.Player
	outcome  game.Outcome
	eval     float64
	children []*treeState
}

func (s *treeState) Player() game.Player { return s.player }

func (s *treeState) LegalMoves() []game.Move {
	moves := make([]game.Move, len(s.children))
	for i := range s.children {
		moves[i] = treeMove{id: i}
	}
	return moves
}

func (s *treeState) Play(m game.Move) game.State {
	return s.children[m.(treeMove).id]
}

func (s *treeState) Winner() game.Outcome { return s.outcome }

func (s *treeState) Evaluate(p game.Player) float64 {
	if p == game.Player2 {
		return -s.eval
	}
	return s.eval
}

func (s *treeState) Render() string { return "" }

func leaf(outcome game.Outcome) *treeState {
	return &treeState{player: game.Player2, outcome: outcome}
}

func evalLeaf(eval float64) *treeState {
	return &treeState{player: game.Player2, eval: eval}
}

// ticTacToeAfter plays the given moves from an empty 3x3 board.
func ticTacToeAfter(moves ...game.TicTacToeMove) game.State {
	state := game.State(game.NewTicTacToe(3))
	for _, m := range moves {
		state = state.Play(m)
	}
	return state
}

func TestFindBestMoveErrNoMoves(t *testing.T) {
	m := NewMinimax()
	_, err := m.FindBestMove(&treeState{player: game.Player1}, game.Player1)
	require.ErrorIs(t, err, ErrNoMoves, "a position without moves is a precondition violation")
}

func TestFindBestMoveTakesTheImmediateWin(t *testing.T) {
	// X X .     X to move: completing the top row wins at once.
	// O O .
	// . . .
	state := ticTacToeAfter(
		game.TicTacToeMove{Row: 0, Col: 0}, game.TicTacToeMove{Row: 1, Col: 0},
		game.TicTacToeMove{Row: 0, Col: 1}, game.TicTacToeMove{Row: 1, Col: 1})

	for _, depth := range []int{1, 3, 9} {
		m := NewMinimax(WithDepth(depth), WithMetrics())
		move, err := m.FindBestMove(state, game.Player1)
		require.NoError(t, err)
		require.Equal(t, game.TicTacToeMove{Row: 0, Col: 2}, move,
			"depth %d should find the winning move", depth)
		require.Equal(t, WinScore, m.Metrics().BestValue,
			"a forced win scores the terminal win value")
	}
}

func TestFindBestMoveBlocksTheLoss(t *testing.T) {
	// X X .     O to move: anything but (0,2) loses immediately.
	// . O .
	// . . .
	state := ticTacToeAfter(
		game.TicTacToeMove{Row: 0, Col: 0}, game.TicTacToeMove{Row: 1, Col: 1},
		game.TicTacToeMove{Row: 0, Col: 1})

	m := NewMinimax(WithDepth(2))
	move, err := m.FindBestMove(state, game.Player2)
	require.NoError(t, err)
	require.Equal(t, game.TicTacToeMove{Row: 0, Col: 2}, move)
}

func TestFindBestMoveTieBreaksOnEnumerationOrder(t *testing.T) {
	t.Run("all terminal draws", func(t *testing.T) {
		root := &treeState{
			player:   game.Player1,
			children: []*treeState{leaf(game.Draw), leaf(game.Draw), leaf(game.Draw)},
		}
		m := NewMinimax()
		move, err := m.FindBestMove(root, game.Player1)
		require.NoError(t, err)
		require.Equal(t, treeMove{id: 0}, move, "equal values resolve to the earliest move")
	})

	t.Run("equal heuristic leaves", func(t *testing.T) {
		root := &treeState{
			player:   game.Player1,
			children: []*treeState{evalLeaf(3), evalLeaf(3), evalLeaf(7), evalLeaf(7)},
		}
		m := NewMinimax(WithDepth(1))
		move, err := m.FindBestMove(root, game.Player1)
		require.NoError(t, err)
		require.Equal(t, treeMove{id: 2}, move,
			"the first of the best-valued moves wins the tie")
	})
}

func TestFindBestMoveTerminalScoresDominateHeuristics(t *testing.T) {
	// One branch is an enormous heuristic score, the other a certain win.
	root := &treeState{
		player:   game.Player1,
		children: []*treeState{evalLeaf(999), leaf(game.Win(game.Player1))},
	}
	m := NewMinimax(WithDepth(1))
	move, err := m.FindBestMove(root, game.Player1)
	require.NoError(t, err)
	require.Equal(t, treeMove{id: 1}, move, "a decided win outranks any evaluation")
}

func TestPruningNeverChangesTheChosenMove(t *testing.T) {
	positions := map[string]game.State{
		"empty board": ticTacToeAfter(),
		"after one exchange": ticTacToeAfter(
			game.TicTacToeMove{Row: 1, Col: 1}, game.TicTacToeMove{Row: 0, Col: 0}),
		"midgame": ticTacToeAfter(
			game.TicTacToeMove{Row: 1, Col: 1}, game.TicTacToeMove{Row: 0, Col: 0},
			game.TicTacToeMove{Row: 2, Col: 0}, game.TicTacToeMove{Row: 0, Col: 2}),
	}

	for name, state := range positions {
		t.Run(name, func(t *testing.T) {
			player := state.Player()

			pruned := NewMinimax(WithDepth(4), WithMetrics())
			prunedMove, err := pruned.FindBestMove(state, player)
			require.NoError(t, err)

			brute := NewMinimax(WithDepth(4), WithoutPruning(), WithMetrics())
			bruteMove, err := brute.FindBestMove(state, player)
			require.NoError(t, err)

			require.Equal(t, bruteMove, prunedMove,
				"pruning must not change the selected move")
			require.Equal(t, brute.Metrics().BestValue, pruned.Metrics().BestValue,
				"pruning must not change the value")
			require.LessOrEqual(t, pruned.Nodes(), brute.Nodes(),
				"pruning only ever skips nodes")
		})
	}
}

func TestNodeCounterResetsPerSearch(t *testing.T) {
	state := ticTacToeAfter(game.TicTacToeMove{Row: 1, Col: 1})
	m := NewMinimax(WithDepth(3), WithMetrics())

	_, err := m.FindBestMove(state, game.Player2)
	require.NoError(t, err)
	first := m.Nodes()
	require.Positive(t, first)

	_, err = m.FindBestMove(state, game.Player2)
	require.NoError(t, err)
	require.Equal(t, first, m.Nodes(), "the counter restarts on every call")
}

func TestFindBestMoveIsDeterministic(t *testing.T) {
	state := ticTacToeAfter(game.TicTacToeMove{Row: 0, Col: 1})
	m := NewMinimax(WithDepth(5))

	move, err := m.FindBestMove(state, game.Player2)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := m.FindBestMove(state, game.Player2)
		require.NoError(t, err)
		require.Equal(t, move, again)
	}
}

func TestDepthCutoffUsesTheHeuristic(t *testing.T) {
	// The single line leads to an ongoing position with a known evaluation;
	// at depth 1 the searcher must return exactly that value.
	child := &treeState{
		player:   game.Player2,
		eval:     12,
		children: []*treeState{leaf(game.Win(game.Player2))},
	}
	root := &treeState{player: game.Player1, children: []*treeState{child}}

	m := NewMinimax(WithDepth(1), WithMetrics())
	_, err := m.FindBestMove(root, game.Player1)
	require.NoError(t, err)
	require.Equal(t, 12.0, m.Metrics().BestValue,
		"the cutoff falls back to Evaluate instead of searching deeper")
}

func TestMetricsCollectionIsOptIn(t *testing.T) {
	state := ticTacToeAfter(game.TicTacToeMove{Row: 1, Col: 1})

	t.Run("off by default", func(t *testing.T) {
		m := NewMinimax(WithDepth(3))
		move, err := m.FindBestMove(state, game.Player2)
		require.NoError(t, err)
		require.NotNil(t, move, "the search still picks a move")
		require.Zero(t, m.Nodes(), "no counting without the option")
		require.Zero(t, m.Metrics(), "no statistics without the option")
	})

	t.Run("with the option", func(t *testing.T) {
		m := NewMinimax(WithDepth(3), WithMetrics())
		move, err := m.FindBestMove(state, game.Player2)
		require.NoError(t, err)

		plain, err := NewMinimax(WithDepth(3)).FindBestMove(state, game.Player2)
		require.NoError(t, err)
		require.Equal(t, plain, move, "collection must not affect the choice")
		require.Positive(t, m.Nodes())
		require.Positive(t, m.Metrics().Duration)
	})
}
