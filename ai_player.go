package main

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// AIPlayer runs the move search on a background goroutine so the caller's
// tick loop is never stalled. The search itself is deterministic and
// side-effect free; stopping only discards the pending result.
type AIPlayer struct {
	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	stopSignal atomic.Bool
	readyMove  Move
	readyOk    bool
}

func NewAIPlayer() *AIPlayer {
	return &AIPlayer{}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

// ChooseMove searches synchronously for the side to move on state.
func (a *AIPlayer) ChooseMove(state GameState, rules Rules) (Move, bool) {
	config := GetConfig()
	stats := &SearchStats{Start: time.Now()}
	settings := AISearchSettings{
		Depth:  config.AiDepth,
		Player: state.ToMove,
		Config: config,
		Stats:  stats,
	}
	move, ok := GetMove(state, rules, settings)
	if config.AiLogSearchStats {
		logSearchStats("choose", stats, settings)
	}
	if ok {
		move.Depth = settings.Depth
	}
	return move, ok
}

func (a *AIPlayer) StartThinking(state GameState, rules Rules) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)
	a.stopSignal.Store(false)

	stateCopy := state.Clone()
	rulesCopy := rules
	done := make(chan struct{})
	a.workerDone = done
	config := GetConfig()
	go func() {
		defer close(done)
		stats := &SearchStats{Start: time.Now()}
		settings := AISearchSettings{
			Depth:  config.AiDepth,
			Player: stateCopy.ToMove,
			Config: config,
			Stats:  stats,
		}
		move, ok := GetMove(stateCopy, rulesCopy, settings)
		if a.stopSignal.Load() {
			a.moveReady.Store(false)
			a.thinking.Store(false)
			return
		}
		if config.AiLogSearchStats {
			logSearchStats("think", stats, settings)
		}
		a.moveMutex.Lock()
		a.readyMove = move
		a.readyOk = ok
		if ok {
			a.readyMove.Depth = settings.Depth
		}
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

// TakeMove hands over the prepared move; ok is false when the searched
// position offered no legal move (forced pass).
func (a *AIPlayer) TakeMove() (Move, bool) {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyMove, a.readyOk
}

// StopThinking discards whatever the in-flight search produces. The search
// still runs to completion; its depth bounds the wait.
func (a *AIPlayer) StopThinking() {
	a.stopSignal.Store(true)
}

func logSearchStats(tag string, stats *SearchStats, settings AISearchSettings) {
	if stats == nil {
		return
	}
	elapsed := time.Since(stats.Start)
	nps := 0.0
	if elapsed > 0 {
		nps = float64(stats.Nodes) / elapsed.Seconds()
	}
	log.Info().
		Str("tag", tag).
		Int("depth", settings.Depth).
		Str("player", settings.Player.String()).
		Int64("nodes", stats.Nodes).
		Int64("leaves", stats.Leaves).
		Int64("cutoffs", stats.Cutoffs).
		Dur("elapsed", elapsed).
		Float64("nps", nps).
		Msg("search finished")
}
