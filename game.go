package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Game struct {
	id          string
	settings    GameSettings
	rules       Rules
	state       GameState
	history     MoveHistory
	blackPlayer IPlayer
	whitePlayer IPlayer
	turnStart   time.Time
	logger      zerolog.Logger
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.id = uuid.NewString()
	g.logger = log.With().Str("game_id", g.id).Logger()
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.stopAIPlayers()
	g.settings = settings
	g.rules = NewRules()
	g.state.Reset(g.rules)
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	g.logMatchup()
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) ValidMoves() []Move {
	return append([]Move(nil), g.state.ValidMoves...)
}

func (g *Game) Score() (black, white int) {
	return g.state.Score()
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// TryApplyMove places a disc for the side to move. It fails without any
// mutation when the game is not running or the move is illegal; invalid
// attempts are routine (UI hover probes) and must stay cheap.
//
// After a successful placement the turn advances in a fixed order: the
// opponent moves if able; otherwise the mover goes again (the opponent is
// forced to pass); when neither side has a move the game ends and the
// winner is whoever holds strictly more discs.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	player := g.currentPlayer()
	isAiMove := player != nil && !player.IsHuman()
	ok, reason := g.rules.IsLegal(g.state.Board, move, g.state.ToMove)
	if !ok {
		g.state.LastMessage = "Illegal move: " + reason
		return false, g.state.LastMessage
	}
	g.state.LastMessage = ""
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	mover := g.state.ToMove
	cell := CellFromPlayer(mover)
	flips := g.rules.FindFlips(g.state.Board, move, mover)
	g.state.Board.Set(move.X, move.Y, cell)
	for _, flip := range flips {
		g.state.Board.Set(flip.X, flip.Y, cell)
	}
	g.state.LastMove = move
	g.state.HasLastMove = true
	g.state.LastFlipped = append([]Move(nil), flips...)

	entry := HistoryEntry{
		Move:      move,
		Player:    mover,
		Flipped:   append([]Move(nil), flips...),
		ElapsedMs: elapsedMs,
		IsAi:      isAiMove,
		Depth:     move.Depth,
	}
	g.history.Push(entry)
	g.logMovePlayed(entry)

	opponent := otherPlayer(mover)
	opponentMoves := g.rules.FindValidMoves(g.state.Board, opponent)
	if len(opponentMoves) > 0 {
		g.state.ToMove = opponent
		g.state.ValidMoves = opponentMoves
		g.turnStart = time.Now()
		return true, ""
	}
	moverMoves := g.rules.FindValidMoves(g.state.Board, mover)
	if len(moverMoves) > 0 {
		// Forced pass: the mover keeps the turn.
		g.state.ToMove = mover
		g.state.ValidMoves = moverMoves
		g.logPass(opponent)
		g.turnStart = time.Now()
		return true, ""
	}
	g.state.ValidMoves = nil
	black, white := g.state.Score()
	switch {
	case black > white:
		g.state.Status = StatusBlackWon
	case white > black:
		g.state.Status = StatusWhiteWon
	default:
		g.state.Status = StatusDraw
	}
	g.logGameOver(black, white)
	return true, ""
}

// Tick advances the game by at most one move: a pending human move is
// applied, a ready AI move is applied, an idle AI is set thinking.
// Returns whether a move was applied.
func (g *Game) Tick() bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}
	if player.IsHuman() {
		human, ok := player.(*HumanPlayer)
		if ok && human.HasPendingMove() {
			move := human.TakePendingMove()
			applied, _ := g.TryApplyMove(move)
			return applied
		}
		return false
	}
	ai, ok := player.(*AIPlayer)
	if ok {
		if ai.HasMoveReady() {
			move, hasMove := ai.TakeMove()
			if !hasMove {
				// The searched position had no legal move. The engine's
				// turn advance never leaves a moveless side on turn, so
				// this result is stale; drop it and rethink next tick.
				return false
			}
			applied, _ := g.TryApplyMove(move)
			return applied
		}
		if !ai.IsThinking() {
			ai.StartThinking(g.state.Clone(), g.rules)
		}
		return false
	}
	move, hasMove := player.ChooseMove(g.state.Clone(), g.rules)
	if !hasMove {
		return false
	}
	applied, _ := g.TryApplyMove(move)
	return applied
}

func (g *Game) SubmitHumanMove(move Move) bool {
	player := g.currentPlayer()
	if player == nil || !player.IsHuman() {
		return false
	}
	human, ok := player.(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	ai, ok := g.currentPlayer().(*AIPlayer)
	return ok && ai.IsThinking()
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) playerForColor(color PlayerColor) IPlayer {
	if color == PlayerBlack {
		return g.blackPlayer
	}
	return g.whitePlayer
}

func (g *Game) createPlayers() {
	if g.settings.BlackType == PlayerHuman {
		g.blackPlayer = NewHumanPlayer()
	} else {
		g.blackPlayer = NewAIPlayer()
	}
	if g.settings.WhiteType == PlayerHuman {
		g.whitePlayer = NewHumanPlayer()
	} else {
		g.whitePlayer = NewAIPlayer()
	}
}

func (g *Game) stopAIPlayers() {
	if ai, ok := g.blackPlayer.(*AIPlayer); ok {
		ai.StopThinking()
	}
	if ai, ok := g.whitePlayer.(*AIPlayer); ok {
		ai.StopThinking()
	}
}

func (g *Game) logMatchup() {
	label := func(t PlayerType) string {
		if t == PlayerAI {
			return "ai"
		}
		return "human"
	}
	g.logger.Info().
		Str("black", label(g.settings.BlackType)).
		Str("white", label(g.settings.WhiteType)).
		Msg("game reset")
}

func (g *Game) logMovePlayed(entry HistoryEntry) {
	black, white := g.state.Score()
	g.logger.Info().
		Str("player", entry.Player.String()).
		Int("x", entry.Move.X).
		Int("y", entry.Move.Y).
		Int("flipped", len(entry.Flipped)).
		Bool("ai", entry.IsAi).
		Int("black", black).
		Int("white", white).
		Msg("move played")
}

func (g *Game) logPass(passed PlayerColor) {
	g.logger.Info().
		Str("player", passed.String()).
		Msg("forced pass")
}

func (g *Game) logGameOver(black, white int) {
	event := g.logger.Info().
		Int("black", black).
		Int("white", white)
	if winner, ok := g.state.Winner(); ok {
		event.Str("winner", winner.String()).Msg("game over")
		return
	}
	event.Str("winner", "tie").Msg("game over")
}
