package game

// Material values used by the chess evaluation, in pawns. The king carries a
// large value so that positions where one was captured dominate everything
// else the heuristic can express.
var pieceValues = map[byte]float64{
	'p': 1,
	'n': 3,
	'b': 3,
	'r': 5,
	'q': 9,
	'k': 100,
}

// PieceValue returns the material value of the given piece byte (either
// case), 0 for anything else.
func PieceValue(piece byte) float64 {
	return pieceValues[lower(piece)]
}
