package main

type PlayerColor int

type GameStatus int

const (
	PlayerBlack PlayerColor = iota
	PlayerWhite
)

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusBlackWon
	StatusWhiteWon
	StatusDraw
)

type GameState struct {
	Board       Board
	ToMove      PlayerColor
	Status      GameStatus
	HasLastMove bool
	LastMove    Move
	LastFlipped []Move
	// ValidMoves always holds FindValidMoves(Board, ToMove); every
	// mutation path refreshes it before returning.
	ValidMoves  []Move
	LastMessage string
}

func DefaultGameState(rules Rules) GameState {
	state := GameState{}
	state.Reset(rules)
	return state
}

func (s *GameState) Reset(rules Rules) {
	s.Board = NewBoard()
	s.ToMove = PlayerBlack
	s.Status = StatusNotStarted
	s.HasLastMove = false
	s.LastMove = Move{X: -1, Y: -1}
	s.LastFlipped = nil
	s.LastMessage = ""
	s.RefreshValidMoves(rules)
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.LastFlipped = append([]Move(nil), s.LastFlipped...)
	clone.ValidMoves = append([]Move(nil), s.ValidMoves...)
	return clone
}

func (s GameState) IsOver() bool {
	switch s.Status {
	case StatusBlackWon, StatusWhiteWon, StatusDraw:
		return true
	}
	return false
}

// Winner reports the winning player; ok is false while the game is
// running or when it ended in a draw.
func (s GameState) Winner() (PlayerColor, bool) {
	switch s.Status {
	case StatusBlackWon:
		return PlayerBlack, true
	case StatusWhiteWon:
		return PlayerWhite, true
	}
	return PlayerBlack, false
}

// Score counts discs of each color over the whole board.
func (s GameState) Score() (black, white int) {
	return s.Board.Count(CellBlack), s.Board.Count(CellWhite)
}

func (s *GameState) RefreshValidMoves(rules Rules) {
	if s.IsOver() {
		s.ValidMoves = nil
		return
	}
	s.ValidMoves = rules.FindValidMoves(s.Board, s.ToMove)
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

func (p PlayerColor) String() string {
	if p == PlayerBlack {
		return "Black"
	}
	return "White"
}
