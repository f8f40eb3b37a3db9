package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSettingsDTORoundTrip(t *testing.T) {
	cases := []struct {
		dto  GameSettingsDTO
		want GameSettings
	}{
		{GameSettingsDTO{Mode: "ai_vs_ai"}, GameSettings{BlackType: PlayerAI, WhiteType: PlayerAI}},
		{GameSettingsDTO{Mode: "human_vs_human"}, GameSettings{BlackType: PlayerHuman, WhiteType: PlayerHuman}},
		{GameSettingsDTO{Mode: "ai_vs_human", HumanPlayer: 1}, GameSettings{BlackType: PlayerHuman, WhiteType: PlayerAI}},
		{GameSettingsDTO{Mode: "ai_vs_human", HumanPlayer: 2}, GameSettings{BlackType: PlayerAI, WhiteType: PlayerHuman}},
	}
	for _, tc := range cases {
		got := settingsFromDTO(tc.dto, DefaultGameSettings())
		if got != tc.want {
			t.Fatalf("mode %q: expected %+v, got %+v", tc.dto.Mode, tc.want, got)
		}
		back := controllerSettingsDTO(got)
		if back.Mode != tc.dto.Mode {
			t.Fatalf("mode %q did not round-trip, got %q", tc.dto.Mode, back.Mode)
		}
	}
}

func TestUnknownModeKeepsCurrentSettings(t *testing.T) {
	base := GameSettings{BlackType: PlayerAI, WhiteType: PlayerHuman}
	if got := settingsFromDTO(GameSettingsDTO{Mode: ""}, base); got != base {
		t.Fatalf("blank mode changed settings: %+v", got)
	}
}

func TestBoardToSlice(t *testing.T) {
	board := NewBoard()
	rows := boardToSlice(board)
	if len(rows) != BoardSize || len(rows[0]) != BoardSize {
		t.Fatalf("unexpected dimensions %dx%d", len(rows), len(rows[0]))
	}
	if rows[3][3] != 2 || rows[3][4] != 1 || rows[4][3] != 1 || rows[4][4] != 2 {
		t.Fatalf("center cells wrong: %v %v", rows[3], rows[4])
	}
	if rows[0][0] != 0 {
		t.Fatalf("corner should be empty, got %d", rows[0][0])
	}
}

func TestChangesFromEntryIncludesPlacementAndFlips(t *testing.T) {
	entry := HistoryEntry{
		Move:    Move{X: 3, Y: 2},
		Player:  PlayerBlack,
		Flipped: []Move{{X: 3, Y: 3}},
	}
	want := []cellChange{
		{X: 3, Y: 2, Value: 1},
		{X: 3, Y: 3, Value: 1},
	}
	if diff := cmp.Diff(want, changesFromEntry(entry)); diff != "" {
		t.Fatalf("changes mismatch:\n%s", diff)
	}
}

func TestControllerStatusSnapshot(t *testing.T) {
	controller := NewGameController(GameSettings{BlackType: PlayerHuman, WhiteType: PlayerHuman})
	controller.StartGame(controller.Settings())
	controller.ApplyHumanMove(Move{X: 3, Y: 2})

	status := controllerStatus(controller)
	if status.GameID != controller.ID() {
		t.Fatalf("status carries wrong game ID")
	}
	if status.BlackScore != 4 || status.WhiteScore != 1 {
		t.Fatalf("expected 4-1, got %d-%d", status.BlackScore, status.WhiteScore)
	}
	if status.NextPlayer != 2 {
		t.Fatalf("expected white (2) to move, got %d", status.NextPlayer)
	}
	if status.Status != "running" || status.Winner != 0 {
		t.Fatalf("unexpected status %q winner %d", status.Status, status.Winner)
	}
	if len(status.History) != 1 || status.History[0].Player != 1 {
		t.Fatalf("history snapshot wrong: %+v", status.History)
	}
	if len(status.ValidMoves) == 0 {
		t.Fatalf("status lost the valid move list")
	}
}

func TestStatusStrings(t *testing.T) {
	cases := map[GameStatus]string{
		StatusNotStarted: "not_started",
		StatusRunning:    "running",
		StatusBlackWon:   "black_won",
		StatusWhiteWon:   "white_won",
		StatusDraw:       "draw",
	}
	for status, want := range cases {
		if got := statusToString(status); got != want {
			t.Fatalf("status %d: expected %q, got %q", status, want, got)
		}
	}
}
