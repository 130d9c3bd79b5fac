package game

// Player identifies one of the two sides. The first mover is 1 and the
// second is -1 so that switching turns is a negation and evaluation signs
// compose naturally.
type Player int

const (
	Player1 Player = 1
	Player2 Player = -1
)

func (p Player) Opponent() Player {
	return -p
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return "none"
}

// Outcome is the result of a finished (or ongoing) game.
type Outcome int

const (
	Ongoing Outcome = iota
	Draw
	Player1Win
	Player2Win
)

// Win returns the outcome in which p is the winner.
func Win(p Player) Outcome {
	if p == Player1 {
		return Player1Win
	}
	return Player2Win
}

// Winner reports which player won, if any.
func (o Outcome) Winner() (Player, bool) {
	switch o {
	case Player1Win:
		return Player1, true
	case Player2Win:
		return Player2, true
	}
	return 0, false
}

func (o Outcome) String() string {
	switch o {
	case Draw:
		return "draw"
	case Player1Win:
		return "player1"
	case Player2Win:
		return "player2"
	}
	return "ongoing"
}

// Move is a single action by the side to move. Concrete move types are plain
// comparable structs; String produces the human-readable form drivers print.
type Move interface {
	String() string
}

// State should be immutable - operations on State always return a new copy.
// Every game variant implements this contract and the search agent depends
// on nothing else.
type State interface {
	// Player returns the side to move.
	Player() Player
	// LegalMoves enumerates every legal move in board-scan order. The
	// order is significant: it fixes search tie-breaks and move listings.
	LegalMoves() []Move
	// Play returns the successor state with the move applied. The receiver
	// is never mutated. The move must come from LegalMoves; behavior for
	// any other move is undefined.
	Play(Move) State
	// Winner reports the game result, Ongoing if undecided.
	Winner() Outcome
	// Evaluate returns a heuristic score from p's perspective (positive is
	// good for p). Only meaningful on non-terminal states.
	Evaluate(p Player) float64
	// Render returns a human-readable board dump for display.
	Render() string
}

// IsTerminal reports whether the game is over in s.
func IsTerminal(s State) bool {
	return s.Winner() != Ongoing
}
