package main

const (
	winScore = 10000

	// Above this many discs on the board, raw material outweighs position.
	endgameDiscCount = 50
)

// Per-cell positional weights, symmetric under the board's rotations and
// reflections. Corners dominate; the X- and C-squares touching them are
// liabilities while the corner is still up for grabs.
var cellWeights = [BoardSize][BoardSize]int{
	{100, -20, 10, 5, 5, 10, -20, 100},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{10, -2, 1, 1, 1, 1, -2, 10},
	{5, -2, 1, 0, 0, 1, -2, 5},
	{5, -2, 1, 0, 0, 1, -2, 5},
	{10, -2, 1, 1, 1, 1, -2, 10},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{100, -20, 10, 5, 5, 10, -20, 100},
}

var corners = [4][2]int{
	{0, 0},
	{BoardSize - 1, 0},
	{0, BoardSize - 1},
	{BoardSize - 1, BoardSize - 1},
}

// EvaluateState scores a position from perspective's point of view; higher
// is better for perspective. Finished games collapse to +-winScore (or 0 on
// a draw) before any heuristic term is considered.
func EvaluateState(state GameState, rules Rules, perspective PlayerColor) int {
	switch state.Status {
	case StatusDraw:
		return 0
	case StatusBlackWon:
		if perspective == PlayerBlack {
			return winScore
		}
		return -winScore
	case StatusWhiteWon:
		if perspective == PlayerWhite {
			return winScore
		}
		return -winScore
	}

	opponent := otherPlayer(perspective)
	own := CellFromPlayer(perspective)
	opp := CellFromPlayer(opponent)

	ownDiscs := state.Board.Count(own)
	oppDiscs := state.Board.Count(opp)
	discWeight := 1
	if ownDiscs+oppDiscs > endgameDiscCount {
		discWeight = 10
	}
	score := (ownDiscs - oppDiscs) * discWeight

	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			switch state.Board.At(x, y) {
			case own:
				score += cellWeights[y][x]
			case opp:
				score -= cellWeights[y][x]
			}
		}
	}

	// Mobility is recomputed with full scans for both sides; the state's
	// ValidMoves cache only covers the actual side to move.
	ownMobility := len(rules.FindValidMoves(state.Board, perspective))
	oppMobility := len(rules.FindValidMoves(state.Board, opponent))
	score += 5 * (ownMobility - oppMobility)

	for _, corner := range corners {
		switch state.Board.At(corner[0], corner[1]) {
		case own:
			score += 50
		case opp:
			score -= 50
		}
	}

	// Border discs, one pass per border line. A corner sits on two lines
	// and is counted on both, on top of the corner term above; that double
	// count is part of the tuned weighting.
	for i := 0; i < BoardSize; i++ {
		score += borderValue(state.Board, i, 0, own, opp)
		score += borderValue(state.Board, i, BoardSize-1, own, opp)
		score += borderValue(state.Board, 0, i, own, opp)
		score += borderValue(state.Board, BoardSize-1, i, own, opp)
	}

	return score
}

func borderValue(board Board, x, y int, own, opp Cell) int {
	switch board.At(x, y) {
	case own:
		return 2
	case opp:
		return -2
	}
	return 0
}
