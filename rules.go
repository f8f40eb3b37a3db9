package main

// The eight compass directions. Both legality checks and flip computation
// walk this same table, so the two can never disagree on a sandwich.
var directions = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Rules implements the fixed adjacency-sandwich capture rule on the
// fixed 8x8 board. It carries no settings: rule variants are out of scope.
type Rules struct{}

func NewRules() Rules {
	return Rules{}
}

// IsLegal reports whether player may place a disc on move's cell: the cell
// must be empty and at least one direction must hold a run of one or more
// opponent discs terminated by an in-bounds disc of player's own color.
func (r Rules) IsLegal(board Board, move Move, player PlayerColor) (bool, string) {
	if !move.IsValid() {
		return false, "out of bounds"
	}
	if !board.IsEmpty(move.X, move.Y) {
		return false, "occupied"
	}
	own := CellFromPlayer(player)
	opponent := CellFromPlayer(otherPlayer(player))
	for i := 0; i < 8; i++ {
		dx := directions[i][0]
		dy := directions[i][1]
		x := move.X + dx
		y := move.Y + dy
		run := 0
		for board.InBounds(x, y) && board.At(x, y) == opponent {
			run++
			x += dx
			y += dy
		}
		if run > 0 && board.InBounds(x, y) && board.At(x, y) == own {
			return true, ""
		}
	}
	return false, "no discs flipped"
}

// FindValidMoves scans the board in row-major order (y outer, x inner) and
// returns every legal move for player. Callers rely on this order: it is
// the search enumeration order and the tie-break order for equal scores.
func (r Rules) FindValidMoves(board Board, player PlayerColor) []Move {
	moves := []Move{}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			move := Move{X: x, Y: y}
			if ok, _ := r.IsLegal(board, move, player); ok {
				moves = append(moves, move)
			}
		}
	}
	return moves
}

// FindFlips returns the discs flipped by player placing on move's cell:
// per direction, the maximal run of opponent discs kept only when an own
// disc terminates it. Runs from different directions never overlap.
func (r Rules) FindFlips(board Board, move Move, player PlayerColor) []Move {
	own := CellFromPlayer(player)
	opponent := CellFromPlayer(otherPlayer(player))
	flips := make([]Move, 0, 8)
	for i := 0; i < 8; i++ {
		dx := directions[i][0]
		dy := directions[i][1]
		start := len(flips)
		x := move.X + dx
		y := move.Y + dy
		for board.InBounds(x, y) && board.At(x, y) == opponent {
			flips = append(flips, Move{X: x, Y: y})
			x += dx
			y += dy
		}
		if len(flips) > start && board.InBounds(x, y) && board.At(x, y) == own {
			continue
		}
		flips = flips[:start]
	}
	return flips
}

// HasAnyMove is FindValidMoves with an early exit, for termination checks.
func (r Rules) HasAnyMove(board Board, player PlayerColor) bool {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if ok, _ := r.IsLegal(board, Move{X: x, Y: y}, player); ok {
				return true
			}
		}
	}
	return false
}
