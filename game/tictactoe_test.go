package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// playAll applies moves in order, alternating sides implicitly.
func playAll(t *testing.T, state State, moves ...TicTacToeMove) State {
	t.Helper()
	for _, m := range moves {
		require.Contains(t, state.LegalMoves(), Move(m), "move %s should be legal", m)
		state = state.Play(m)
	}
	return state
}

func TestTicTacToeInitialState(t *testing.T) {
	state := NewTicTacToe(3)

	require.Equal(t, Player1, state.Player(), "first player should open the game")
	require.Len(t, state.LegalMoves(), 9, "every cell should be playable")
	require.Equal(t, Ongoing, state.Winner())
	require.False(t, IsTerminal(state))
}

func TestTicTacToeMoveAccounting(t *testing.T) {
	state := State(NewTicTacToe(3))

	occupied := 0
	mover := Player1
	for _, m := range []TicTacToeMove{{1, 1}, {0, 0}, {2, 2}, {0, 2}} {
		state = state.Play(m)
		occupied++
		require.Len(t, state.LegalMoves(), 9-occupied,
			"legal moves plus occupied cells should cover the board")
		require.Equal(t, mover, state.(*TicTacToe).Cell(m.Row, m.Col),
			"the played cell should carry the mover's mark")
		mover = mover.Opponent()
	}
}

func TestTicTacToeTurnParity(t *testing.T) {
	state := State(NewTicTacToe(3))
	require.Equal(t, Player1, state.Player())

	state = state.Play(TicTacToeMove{0, 0})
	require.Equal(t, Player2, state.Player(), "turn should alternate")

	state = state.Play(TicTacToeMove{1, 1})
	require.Equal(t, Player1, state.Player(), "turn should alternate back")
}

func TestTicTacToePlayIsPure(t *testing.T) {
	initial := NewTicTacToe(3)
	move := TicTacToeMove{1, 1}

	first := initial.Play(move)
	second := initial.Play(move)

	require.Equal(t, first, second, "the same move should produce equal successors")
	require.Equal(t, NewTicTacToe(3), initial, "the input state should never change")
	require.Len(t, initial.LegalMoves(), 9)
}

func TestTicTacToeRowWin(t *testing.T) {
	state := playAll(t, NewTicTacToe(3),
		TicTacToeMove{0, 0}, TicTacToeMove{1, 0},
		TicTacToeMove{0, 1}, TicTacToeMove{1, 1},
		TicTacToeMove{0, 2})

	require.Equal(t, Player1Win, state.Winner(), "a full top row should win")
	require.True(t, IsTerminal(state))
}

func TestTicTacToeColumnAndDiagonalWins(t *testing.T) {
	t.Run("column", func(t *testing.T) {
		state := playAll(t, NewTicTacToe(3),
			TicTacToeMove{0, 0}, TicTacToeMove{0, 1},
			TicTacToeMove{1, 0}, TicTacToeMove{1, 1},
			TicTacToeMove{2, 0})
		require.Equal(t, Player1Win, state.Winner())
	})

	t.Run("diagonal for the second player", func(t *testing.T) {
		state := playAll(t, NewTicTacToe(3),
			TicTacToeMove{0, 1}, TicTacToeMove{0, 0},
			TicTacToeMove{0, 2}, TicTacToeMove{1, 1},
			TicTacToeMove{2, 1}, TicTacToeMove{2, 2})
		require.Equal(t, Player2Win, state.Winner())
	})
}

func TestTicTacToeDraw(t *testing.T) {
	// X O X
	// X O O
	// O X X
	state := playAll(t, NewTicTacToe(3),
		TicTacToeMove{0, 0}, TicTacToeMove{0, 1},
		TicTacToeMove{0, 2}, TicTacToeMove{1, 1},
		TicTacToeMove{1, 0}, TicTacToeMove{1, 2},
		TicTacToeMove{2, 1}, TicTacToeMove{2, 0},
		TicTacToeMove{2, 2})

	require.Equal(t, Draw, state.Winner(), "a full board without a line is a draw")
	require.True(t, IsTerminal(state))
	require.Empty(t, state.LegalMoves())
}

func TestTicTacToeEvaluate(t *testing.T) {
	t.Run("empty board is neutral", func(t *testing.T) {
		state := NewTicTacToe(3)
		require.Zero(t, state.Evaluate(Player1))
		require.Zero(t, state.Evaluate(Player2))
	})

	t.Run("center mark scores its four open lines", func(t *testing.T) {
		state := NewTicTacToe(3).Play(TicTacToeMove{1, 1})
		require.Equal(t, 40.0, state.Evaluate(Player1),
			"row, column and both diagonals through the center are open")
		require.Equal(t, -40.0, state.Evaluate(Player2),
			"evaluation should be antisymmetric")
	})

	t.Run("contested lines stop scoring", func(t *testing.T) {
		open := NewTicTacToe(3).Play(TicTacToeMove{1, 1})
		contested := open.Play(TicTacToeMove{0, 0})
		require.Less(t, contested.Evaluate(Player1), open.Evaluate(Player1),
			"an opposing mark should reduce the first player's score")
	})
}

func TestTicTacToeConfigurableSize(t *testing.T) {
	state := NewTicTacToe(4)
	require.Equal(t, 4, state.Size())
	require.Len(t, state.LegalMoves(), 16)

	// Fill the top row for player1 while player2 plays the second row.
	played := playAll(t, state,
		TicTacToeMove{0, 0}, TicTacToeMove{1, 0},
		TicTacToeMove{0, 1}, TicTacToeMove{1, 1},
		TicTacToeMove{0, 2}, TicTacToeMove{1, 2},
		TicTacToeMove{0, 3})
	require.Equal(t, Player1Win, played.Winner(), "a win needs a full-length line")
}
