package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newRunningGame(t *testing.T, settings GameSettings) *Game {
	t.Helper()
	game := NewGame(settings)
	game.Start()
	return &game
}

func bothHuman() GameSettings {
	return GameSettings{BlackType: PlayerHuman, WhiteType: PlayerHuman}
}

func TestOpeningMove(t *testing.T) {
	game := newRunningGame(t, bothHuman())

	applied, errMsg := game.TryApplyMove(Move{X: 3, Y: 2})
	if !applied {
		t.Fatalf("opening move rejected: %s", errMsg)
	}

	state := game.State()
	if state.Board.At(3, 2) != CellBlack {
		t.Fatalf("placed disc missing at (3,2)")
	}
	if state.Board.At(3, 3) != CellBlack {
		t.Fatalf("disc at (3,3) was not flipped")
	}
	black, white := state.Score()
	if black != 4 || white != 1 {
		t.Fatalf("expected score 4-1, got %d-%d", black, white)
	}
	if state.ToMove != PlayerWhite {
		t.Fatalf("expected white to move, got %v", state.ToMove)
	}
	if diff := cmp.Diff(state.ValidMoves, NewRules().FindValidMoves(state.Board, PlayerWhite)); diff != "" {
		t.Fatalf("valid moves cache out of sync:\n%s", diff)
	}
	if diff := cmp.Diff(state.LastFlipped, []Move{{X: 3, Y: 3}}); diff != "" {
		t.Fatalf("unexpected flip list:\n%s", diff)
	}
}

func TestIllegalMoveLeavesStateUntouched(t *testing.T) {
	game := newRunningGame(t, bothHuman())
	before := game.State()

	applied, errMsg := game.TryApplyMove(Move{X: 3, Y: 3})
	if applied {
		t.Fatalf("move onto an occupied cell was accepted")
	}
	if errMsg == "" {
		t.Fatalf("rejection carried no reason")
	}

	after := game.State()
	after.LastMessage = before.LastMessage
	if diff := cmp.Diff(before, after, cmp.AllowUnexported(Board{})); diff != "" {
		t.Fatalf("state changed on rejected move:\n%s", diff)
	}
	if game.History().Size() != 0 {
		t.Fatalf("rejected move was recorded in history")
	}
}

// Sets up a sparse position where black can capture in two separate
// pockets while white's lone disc never anchors a capture line.
func forcedPassGame(t *testing.T) *Game {
	t.Helper()
	game := newRunningGame(t, bothHuman())
	game.state.Board = Board{}
	game.state.Board.Set(0, 0, CellBlack)
	game.state.Board.Set(1, 0, CellWhite)
	game.state.Board.Set(7, 7, CellBlack)
	game.state.Board.Set(6, 6, CellWhite)
	game.state.ToMove = PlayerBlack
	game.state.RefreshValidMoves(game.rules)
	return game
}

func TestForcedPassKeepsMoverOnTurn(t *testing.T) {
	game := forcedPassGame(t)

	applied, errMsg := game.TryApplyMove(Move{X: 2, Y: 0})
	if !applied {
		t.Fatalf("move rejected: %s", errMsg)
	}

	state := game.State()
	if state.Status != StatusRunning {
		t.Fatalf("game ended early, status %v", state.Status)
	}
	if state.ToMove != PlayerBlack {
		t.Fatalf("turn should stay with black after white's forced pass, got %v", state.ToMove)
	}
	if diff := cmp.Diff(state.ValidMoves, []Move{{X: 5, Y: 5}}); diff != "" {
		t.Fatalf("unexpected valid moves after pass:\n%s", diff)
	}
}

func TestGameEndsWhenNeitherSideCanMove(t *testing.T) {
	game := forcedPassGame(t)

	if applied, errMsg := game.TryApplyMove(Move{X: 2, Y: 0}); !applied {
		t.Fatalf("first move rejected: %s", errMsg)
	}
	if applied, errMsg := game.TryApplyMove(Move{X: 5, Y: 5}); !applied {
		t.Fatalf("second move rejected: %s", errMsg)
	}

	state := game.State()
	if state.Status != StatusBlackWon {
		t.Fatalf("expected black to win, status %v", state.Status)
	}
	if len(state.ValidMoves) != 0 {
		t.Fatalf("finished game still offers moves: %v", state.ValidMoves)
	}
	winner, ok := state.Winner()
	if !ok || winner != PlayerBlack {
		t.Fatalf("winner reported %v ok=%v", winner, ok)
	}
	black, white := state.Score()
	if white != 0 || black != 6 {
		t.Fatalf("expected 6-0, got %d-%d", black, white)
	}
}

func TestMoveAfterGameOverIsRejected(t *testing.T) {
	game := forcedPassGame(t)
	game.TryApplyMove(Move{X: 2, Y: 0})
	game.TryApplyMove(Move{X: 5, Y: 5})

	if applied, _ := game.TryApplyMove(Move{X: 4, Y: 4}); applied {
		t.Fatalf("move accepted on a finished game")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	rules := NewRules()
	state := DefaultGameState(rules)
	clone := state.Clone()

	state.Board.Set(0, 0, CellBlack)
	state.ValidMoves[0] = Move{X: 7, Y: 7}

	if clone.Board.At(0, 0) != CellEmpty {
		t.Fatalf("clone shares board storage with the original")
	}
	if clone.ValidMoves[0] == (Move{X: 7, Y: 7}) {
		t.Fatalf("clone shares the valid move slice with the original")
	}
}

func TestTickAppliesPendingHumanMove(t *testing.T) {
	game := newRunningGame(t, bothHuman())

	if game.Tick() {
		t.Fatalf("tick applied a move with none pending")
	}
	if !game.SubmitHumanMove(Move{X: 3, Y: 2}) {
		t.Fatalf("human move submission rejected")
	}
	if !game.Tick() {
		t.Fatalf("tick did not apply the pending move")
	}
	if game.History().Size() != 1 {
		t.Fatalf("expected one history entry, got %d", game.History().Size())
	}
	entry := game.History().All()[0]
	if entry.IsAi || entry.Player != PlayerBlack || entry.Move != (Move{X: 3, Y: 2}) {
		t.Fatalf("unexpected history entry %+v", entry)
	}
}

func TestHistoryRecordsFlips(t *testing.T) {
	game := newRunningGame(t, bothHuman())
	game.TryApplyMove(Move{X: 3, Y: 2})

	entries := game.History().All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if diff := cmp.Diff(entries[0].Flipped, []Move{{X: 3, Y: 3}}); diff != "" {
		t.Fatalf("history flips wrong:\n%s", diff)
	}
}

func TestResetRestoresStartingPosition(t *testing.T) {
	game := newRunningGame(t, bothHuman())
	game.TryApplyMove(Move{X: 3, Y: 2})
	game.Reset(bothHuman())

	state := game.State()
	if state.Status != StatusNotStarted {
		t.Fatalf("expected fresh game, status %v", state.Status)
	}
	black, white := state.Score()
	if black != 2 || white != 2 {
		t.Fatalf("expected 2-2 start, got %d-%d", black, white)
	}
	if game.History().Size() != 0 {
		t.Fatalf("history survived reset")
	}
	if state.ToMove != PlayerBlack {
		t.Fatalf("black moves first, got %v", state.ToMove)
	}
}
