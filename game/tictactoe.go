package game

import (
	"math"
	"strconv"
	"strings"
)

const DefaultBoardSize = 3

// TicTacToeMove places the mover's mark on an empty cell.
type TicTacToeMove struct {
	Row, Col int
}

func (m TicTacToeMove) String() string {
	return "(" + strconv.Itoa(m.Row) + "," + strconv.Itoa(m.Col) + ")"
}

// TicTacToe is an N×N tic-tac-toe position. Cells hold 0 (empty), 1
// (player1) or -1 (player2). The side to move is derived from mark parity,
// so the board is the whole state.
type TicTacToe struct {
	size  int
	cells []int8
}

// NewTicTacToe returns the empty starting position for a size×size board.
func NewTicTacToe(size int) *TicTacToe {
	if size < 1 {
		panic("board size must be positive")
	}
	return &TicTacToe{
		size:  size,
		cells: make([]int8, size*size),
	}
}

func (t *TicTacToe) Size() int {
	return t.size
}

// Cell returns the mark at (row, col): 0 empty, otherwise the owning player.
func (t *TicTacToe) Cell(row, col int) Player {
	return Player(t.cells[row*t.size+col])
}

func (t *TicTacToe) Player() Player {
	marks := 0
	for _, c := range t.cells {
		if c != 0 {
			marks++
		}
	}
	if marks%2 == 0 {
		return Player1
	}
	return Player2
}

func (t *TicTacToe) LegalMoves() []Move {
	moves := make([]Move, 0, len(t.cells))
	for row := 0; row < t.size; row++ {
		for col := 0; col < t.size; col++ {
			if t.cells[row*t.size+col] == 0 {
				moves = append(moves, TicTacToeMove{Row: row, Col: col})
			}
		}
	}
	return moves
}

func (t *TicTacToe) Play(move Move) State {
	m := move.(TicTacToeMove)
	next := &TicTacToe{
		size:  t.size,
		cells: make([]int8, len(t.cells)),
	}
	copy(next.cells, t.cells)
	next.cells[m.Row*t.size+m.Col] = int8(t.Player())
	return next
}

func (t *TicTacToe) Winner() Outcome {
	n := t.size

	lineWinner := func(sum int) (Player, bool) {
		if sum == n {
			return Player1, true
		}
		if sum == -n {
			return Player2, true
		}
		return 0, false
	}

	// Rows and columns
	for i := 0; i < n; i++ {
		rowSum, colSum := 0, 0
		for j := 0; j < n; j++ {
			rowSum += int(t.cells[i*n+j])
			colSum += int(t.cells[j*n+i])
		}
		if p, ok := lineWinner(rowSum); ok {
			return Win(p)
		}
		if p, ok := lineWinner(colSum); ok {
			return Win(p)
		}
	}

	// Diagonals
	diag, anti := 0, 0
	for i := 0; i < n; i++ {
		diag += int(t.cells[i*n+i])
		anti += int(t.cells[i*n+(n-1-i)])
	}
	if p, ok := lineWinner(diag); ok {
		return Win(p)
	}
	if p, ok := lineWinner(anti); ok {
		return Win(p)
	}

	for _, c := range t.cells {
		if c == 0 {
			return Ongoing
		}
	}
	return Draw
}

// Evaluate scores open lines exponentially: every line the opponent has not
// touched contributes 10^(marks on it) for the player, and symmetrically
// against for lines the player has not touched.
func (t *TicTacToe) Evaluate(p Player) float64 {
	score := 0.0
	n := t.size

	scoreLine := func(mine, theirs int) {
		if theirs == 0 {
			score += math.Pow(10, float64(mine))
		}
		if mine == 0 {
			score -= math.Pow(10, float64(theirs))
		}
	}

	countLine := func(cell func(i int) int8) (mine, theirs int) {
		for i := 0; i < n; i++ {
			switch Player(cell(i)) {
			case p:
				mine++
			case p.Opponent():
				theirs++
			}
		}
		return mine, theirs
	}

	for i := 0; i < n; i++ {
		row := i
		scoreLine(countLine(func(j int) int8 { return t.cells[row*n+j] }))
		col := i
		scoreLine(countLine(func(j int) int8 { return t.cells[j*n+col] }))
	}
	scoreLine(countLine(func(j int) int8 { return t.cells[j*n+j] }))
	scoreLine(countLine(func(j int) int8 { return t.cells[j*n+(n-1-j)] }))

	return score
}

func (t *TicTacToe) Render() string {
	symbols := map[int8]string{0: " ", 1: "X", -1: "O"}
	var b strings.Builder

	b.WriteString("  ")
	for j := 0; j < t.size; j++ {
		if j > 0 {
			b.WriteString(" ")
		}
		b.WriteString(strconv.Itoa(j))
	}
	b.WriteString("\n")

	for i := 0; i < t.size; i++ {
		b.WriteString(strconv.Itoa(i) + " ")
		for j := 0; j < t.size; j++ {
			b.WriteString(symbols[t.cells[i*t.size+j]])
			if j < t.size-1 {
				b.WriteString("|")
			}
		}
		b.WriteString("\n")
		if i < t.size-1 {
			b.WriteString("  " + strings.Repeat("-", 2*t.size-1) + "\n")
		}
	}
	return b.String()
}
