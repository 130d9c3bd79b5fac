package game

import (
	"fmt"
	"strings"
)

// Square addresses a board cell. Row 0 is black's back rank (rank 8), row 7
// is white's back rank (rank 1).
type Square struct {
	Row, Col int
}

func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

// ParseSquare parses algebraic notation like "e2".
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 || text[0] < 'a' || text[0] > 'h' || text[1] < '1' || text[1] > '8' {
		return Square{}, fmt.Errorf("invalid square %q", text)
	}
	return Square{Row: 8 - int(text[1]-'0'), Col: int(text[0] - 'a')}, nil
}

// ChessMove moves the piece on From to To. A king move across more than one
// column is a castle.
type ChessMove struct {
	From, To Square
}

func (m ChessMove) String() string {
	return m.From.String() + m.To.String()
}

// castlingRights records which kings and rooks have ever moved. Flags only
// ever go from false to true.
type castlingRights struct {
	WhiteKingMoved  bool
	BlackKingMoved  bool
	WhiteRooksMoved [2]bool // queenside, kingside
	BlackRooksMoved [2]bool // queenside, kingside
}

// Chess is a simplified chess position. White pieces are the uppercase bytes
// PNBRQK, black pieces the lowercase ones, empty squares '.'. White is
// Player1. The rules are deliberately relaxed: move generation is
// pseudo-legal (no king-safety checks), pawns never promote, and the game is
// decided by capturing the enemy king.
type Chess struct {
	board    [8][8]byte
	turn     Player
	castling castlingRights
	// enPassant is carried in the state but never populated or consulted:
	// two-square pawn advances do not record it and capture generation
	// ignores it.
	enPassant *Square
}

const emptySquare = '.'

var initialBoard = [8][8]byte{
	{'r', 'n', 'b', 'q', 'k', 'b', 'n', 'r'},
	{'p', 'p', 'p', 'p', 'p', 'p', 'p', 'p'},
	{'.', '.', '.', '.', '.', '.', '.', '.'},
	{'.', '.', '.', '.', '.', '.', '.', '.'},
	{'.', '.', '.', '.', '.', '.', '.', '.'},
	{'.', '.', '.', '.', '.', '.', '.', '.'},
	{'P', 'P', 'P', 'P', 'P', 'P', 'P', 'P'},
	{'R', 'N', 'B', 'Q', 'K', 'B', 'N', 'R'},
}

// NewChess returns the standard starting position.
func NewChess() *Chess {
	return &Chess{
		board: initialBoard,
		turn:  Player1,
	}
}

func (c *Chess) Player() Player {
	return c.turn
}

// Piece returns the byte on the given square ('.' if empty).
func (c *Chess) Piece(s Square) byte {
	return c.board[s.Row][s.Col]
}

func isWhitePiece(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isBlackPiece(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// owns reports whether piece b belongs to p.
func owns(p Player, b byte) bool {
	if b == emptySquare {
		return false
	}
	if p == Player1 {
		return isWhitePiece(b)
	}
	return isBlackPiece(b)
}

func onBoard(row, col int) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

func lower(b byte) byte {
	if isWhitePiece(b) {
		return b + 'a' - 'A'
	}
	return b
}

func (c *Chess) LegalMoves() []Move {
	var moves []Move
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if owns(c.turn, c.board[row][col]) {
				moves = append(moves, c.pieceMoves(row, col)...)
			}
		}
	}
	return moves
}

func (c *Chess) pieceMoves(row, col int) []Move {
	switch lower(c.board[row][col]) {
	case 'p':
		return c.pawnMoves(row, col)
	case 'n':
		return c.knightMoves(row, col)
	case 'b':
		return c.rayMoves(row, col, diagonalDirs[:])
	case 'r':
		return c.rayMoves(row, col, orthogonalDirs[:])
	case 'q':
		moves := c.rayMoves(row, col, diagonalDirs[:])
		return append(moves, c.rayMoves(row, col, orthogonalDirs[:])...)
	case 'k':
		return c.kingMoves(row, col)
	}
	return nil
}

var (
	diagonalDirs   = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	orthogonalDirs = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	knightOffsets  = [8][2]int{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
	kingOffsets = [8][2]int{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
)

func (c *Chess) pawnMoves(row, col int) []Move {
	var moves []Move
	from := Square{row, col}

	// White pawns move up the board, black pawns down.
	dir := -1
	startRow := 6
	if c.turn == Player2 {
		dir = 1
		startRow = 1
	}

	// Forward one, then two from the starting rank.
	if next := row + dir; onBoard(next, col) && c.board[next][col] == emptySquare {
		moves = append(moves, ChessMove{from, Square{next, col}})
		if row == startRow {
			if jump := row + 2*dir; onBoard(jump, col) && c.board[jump][col] == emptySquare {
				moves = append(moves, ChessMove{from, Square{jump, col}})
			}
		}
	}

	// Diagonal captures onto occupied enemy squares only. No en-passant.
	for _, dc := range [2]int{-1, 1} {
		r, cl := row+dir, col+dc
		if onBoard(r, cl) && owns(c.turn.Opponent(), c.board[r][cl]) {
			moves = append(moves, ChessMove{from, Square{r, cl}})
		}
	}
	return moves
}

func (c *Chess) knightMoves(row, col int) []Move {
	var moves []Move
	from := Square{row, col}
	for _, d := range knightOffsets {
		r, cl := row+d[0], col+d[1]
		if onBoard(r, cl) && !owns(c.turn, c.board[r][cl]) {
			moves = append(moves, ChessMove{from, Square{r, cl}})
		}
	}
	return moves
}

func (c *Chess) rayMoves(row, col int, dirs [][2]int) []Move {
	var moves []Move
	from := Square{row, col}
	for _, d := range dirs {
		for i := 1; i < 8; i++ {
			r, cl := row+i*d[0], col+i*d[1]
			if !onBoard(r, cl) {
				break
			}
			target := c.board[r][cl]
			if target == emptySquare {
				moves = append(moves, ChessMove{from, Square{r, cl}})
				continue
			}
			if owns(c.turn.Opponent(), target) {
				moves = append(moves, ChessMove{from, Square{r, cl}})
			}
			break
		}
	}
	return moves
}

func (c *Chess) kingMoves(row, col int) []Move {
	var moves []Move
	from := Square{row, col}
	for _, d := range kingOffsets {
		r, cl := row+d[0], col+d[1]
		if onBoard(r, cl) && !owns(c.turn, c.board[r][cl]) {
			moves = append(moves, ChessMove{from, Square{r, cl}})
		}
	}

	// Castling: the king and the relevant rook must be unmoved and the
	// squares between them empty. The squares are not checked for attacks,
	// consistent with pseudo-legal generation. Offsets are fixed to the
	// standard 8x8 back rank.
	kingMoved := c.castling.WhiteKingMoved
	rooksMoved := c.castling.WhiteRooksMoved
	backRank := 7
	if c.turn == Player2 {
		kingMoved = c.castling.BlackKingMoved
		rooksMoved = c.castling.BlackRooksMoved
		backRank = 0
	}
	if kingMoved {
		return moves
	}

	if !rooksMoved[1] && c.board[backRank][5] == emptySquare && c.board[backRank][6] == emptySquare {
		moves = append(moves, ChessMove{from, Square{backRank, 6}})
	}
	if !rooksMoved[0] && c.board[backRank][1] == emptySquare &&
		c.board[backRank][2] == emptySquare && c.board[backRank][3] == emptySquare {
		moves = append(moves, ChessMove{from, Square{backRank, 2}})
	}
	return moves
}

func (c *Chess) Play(move Move) State {
	m := move.(ChessMove)

	next := &Chess{
		board:    c.board,
		turn:     -c.turn,
		castling: c.castling,
	}

	piece := next.board[m.From.Row][m.From.Col]

	// Castling rights: set once a king moves or a rook leaves its original
	// square, never reset.
	switch piece {
	case 'K':
		next.castling.WhiteKingMoved = true
	case 'k':
		next.castling.BlackKingMoved = true
	case 'R':
		if m.From.Row == 7 {
			if m.From.Col == 0 {
				next.castling.WhiteRooksMoved[0] = true
			} else if m.From.Col == 7 {
				next.castling.WhiteRooksMoved[1] = true
			}
		}
	case 'r':
		if m.From.Row == 0 {
			if m.From.Col == 0 {
				next.castling.BlackRooksMoved[0] = true
			} else if m.From.Col == 7 {
				next.castling.BlackRooksMoved[1] = true
			}
		}
	}

	// A king moving more than one column is a castle: relocate the rook in
	// the same transition.
	if lower(piece) == 'k' && abs(m.From.Col-m.To.Col) > 1 {
		rank := m.From.Row
		if m.To.Col == 6 {
			next.board[rank][5] = next.board[rank][7]
			next.board[rank][7] = emptySquare
		} else if m.To.Col == 2 {
			next.board[rank][3] = next.board[rank][0]
			next.board[rank][0] = emptySquare
		}
	}

	// Captures simply overwrite the destination.
	next.board[m.To.Row][m.To.Col] = piece
	next.board[m.From.Row][m.From.Col] = emptySquare

	return next
}

func (c *Chess) Winner() Outcome {
	whiteKing, blackKing := false, false
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			switch c.board[row][col] {
			case 'K':
				whiteKing = true
			case 'k':
				blackKing = true
			}
		}
	}

	// King capture stands in for checkmate.
	if !whiteKing {
		return Player2Win
	}
	if !blackKing {
		return Player1Win
	}

	// No pseudo-legal moves at all is a draw. With a king on the board this
	// is rarely reachable since unsafe king steps are not filtered out.
	if len(c.LegalMoves()) == 0 {
		return Draw
	}
	return Ongoing
}

// Evaluate is a material count from p's perspective.
func (c *Chess) Evaluate(p Player) float64 {
	score := 0.0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := c.board[row][col]
			if piece == emptySquare {
				continue
			}
			value := pieceValues[lower(piece)]
			if isWhitePiece(piece) {
				score += value
			} else {
				score -= value
			}
		}
	}
	if p == Player2 {
		score = -score
	}
	return score
}

func (c *Chess) Render() string {
	var b strings.Builder
	side := "White"
	if c.turn == Player2 {
		side = "Black"
	}
	fmt.Fprintf(&b, "Current player: %s\n", side)
	b.WriteString("  a b c d e f g h\n")
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "%d ", 8-i)
		for j := 0; j < 8; j++ {
			b.WriteByte(c.board[i][j])
			if j < 7 {
				b.WriteByte(' ')
			}
		}
		fmt.Fprintf(&b, " %d\n", 8-i)
	}
	b.WriteString("  a b c d e f g h\n")
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
