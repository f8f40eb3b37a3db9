package main

type Cell int

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

const BoardSize = 8

// Board is a fixed 8x8 grid stored flat, index y*8+x (x = column, y = row).
type Board struct {
	cells [BoardSize * BoardSize]Cell
}

// NewBoard returns a board in the Othello starting position: the center
// 2x2 block holds two discs of each color on opposite diagonals.
func NewBoard() Board {
	b := Board{}
	b.Reset()
	return b
}

func (b *Board) Reset() {
	b.cells = [BoardSize * BoardSize]Cell{}
	mid := BoardSize / 2
	b.Set(mid-1, mid-1, CellWhite)
	b.Set(mid, mid-1, CellBlack)
	b.Set(mid-1, mid, CellBlack)
	b.Set(mid, mid, CellWhite)
}

func (b Board) At(x, y int) Cell {
	return b.cells[index(x, y)]
}

func (b *Board) Set(x, y int, value Cell) {
	b.cells[index(x, y)] = value
}

func (b Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < BoardSize && y < BoardSize
}

func (b Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.At(x, y) == CellEmpty
}

func (b Board) Count(cell Cell) int {
	count := 0
	for _, c := range b.cells {
		if c == cell {
			count++
		}
	}
	return count
}

func (b Board) CountEmpty() int {
	return b.Count(CellEmpty)
}

// Clone returns an independent copy; the cell array is a value, so the
// copy shares no storage with the receiver.
func (b Board) Clone() Board {
	return b
}

func index(x, y int) int {
	return y*BoardSize + x
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	default:
		return "Empty"
	}
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerBlack {
		return CellBlack
	}
	return CellWhite
}
