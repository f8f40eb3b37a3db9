package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type GameSettings struct {
	BlackType PlayerType `json:"-"`
	WhiteType PlayerType `json:"-"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		BlackType: PlayerHuman,
		WhiteType: PlayerAI,
	}
}
