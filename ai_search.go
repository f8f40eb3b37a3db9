package main

import "time"

// scoreInf bounds the alpha-beta window; it only needs to dominate every
// reachable evaluation, including the +-winScore terminals.
const scoreInf = 1 << 30

type SearchStats struct {
	Start   time.Time
	Nodes   int64
	Leaves  int64
	Cutoffs int64
}

type AISearchSettings struct {
	Depth  int
	Player PlayerColor
	Config Config
	Stats  *SearchStats
}

type searchContext struct {
	rules    Rules
	settings AISearchSettings
}

// GetMove selects a move for settings.Player, who must be the side to move
// on state. ok is false when the player has no legal move at all; callers
// treat that as a forced pass, not an error. With a single legal move the
// search is skipped entirely and no position is evaluated.
func GetMove(state GameState, rules Rules, settings AISearchSettings) (Move, bool) {
	candidates := rules.FindValidMoves(state.Board, settings.Player)
	if len(candidates) == 0 {
		return Move{}, false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}
	ctx := searchContext{rules: rules, settings: settings}
	bestMove := candidates[0]
	bestScore := -scoreInf
	for _, move := range candidates {
		next := state.Clone()
		applySearchMove(&next, rules, move, settings.Player)
		score := minimax(next, ctx, settings.Depth-1, -scoreInf, scoreInf)
		// Strict comparison: the first move reaching the best score wins,
		// which makes tie-breaking follow the row-major scan order.
		if score > bestScore {
			bestScore = score
			bestMove = move
		}
	}
	return bestMove, true
}

func minimax(state GameState, ctx searchContext, depth int, alpha, beta int) int {
	if depth <= 0 || state.IsOver() {
		if ctx.settings.Stats != nil {
			ctx.settings.Stats.Leaves++
		}
		return EvaluateState(state, ctx.rules, ctx.settings.Player)
	}
	if ctx.settings.Stats != nil {
		ctx.settings.Stats.Nodes++
	}
	current := state.ToMove
	moves := state.ValidMoves
	if len(moves) == 0 {
		// The side to move has no reply. The position is scored as it
		// stands; the search does not hand the turn back and explore the
		// passing side's continuation.
		if ctx.settings.Stats != nil {
			ctx.settings.Stats.Leaves++
		}
		return EvaluateState(state, ctx.rules, ctx.settings.Player)
	}
	maximizing := current == ctx.settings.Player
	best := -scoreInf
	if !maximizing {
		best = scoreInf
	}
	for _, move := range moves {
		next := state.Clone()
		applySearchMove(&next, ctx.rules, move, current)
		value := minimax(next, ctx, depth-1, alpha, beta)
		if maximizing {
			if value > best {
				best = value
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
			}
			if best < beta {
				beta = best
			}
		}
		if beta <= alpha {
			if ctx.settings.Stats != nil {
				ctx.settings.Stats.Cutoffs++
			}
			break
		}
	}
	return best
}

// applySearchMove plays move for player on a search clone. Unlike the live
// game's turn advance, the side to move always alternates; a player left
// without a reply surfaces as an empty ValidMoves cache at the next node.
// When neither side can move the status is settled by disc count so leaf
// evaluation sees the finished game.
func applySearchMove(state *GameState, rules Rules, move Move, player PlayerColor) {
	cell := CellFromPlayer(player)
	flips := rules.FindFlips(state.Board, move, player)
	state.Board.Set(move.X, move.Y, cell)
	for _, flip := range flips {
		state.Board.Set(flip.X, flip.Y, cell)
	}
	state.LastMove = move
	state.HasLastMove = true
	state.LastFlipped = flips

	opponent := otherPlayer(player)
	state.ToMove = opponent
	state.ValidMoves = rules.FindValidMoves(state.Board, opponent)
	if len(state.ValidMoves) == 0 && !rules.HasAnyMove(state.Board, player) {
		black, white := state.Score()
		switch {
		case black > white:
			state.Status = StatusBlackWon
		case white > black:
			state.Status = StatusWhiteWon
		default:
			state.Status = StatusDraw
		}
	}
}
