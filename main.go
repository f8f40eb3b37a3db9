package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type StatusResponse struct {
	GameID          string            `json:"game_id"`
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	Board           [][]int           `json:"board"`
	BoardSize       int               `json:"board_size"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	BlackScore      int               `json:"black_score"`
	WhiteScore      int               `json:"white_score"`
	ValidMoves      []Move            `json:"valid_moves"`
	History         []historyEntryDTO `json:"history"`
	AiThinking      bool              `json:"ai_thinking"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode        string `json:"mode" validate:"omitempty,oneof=ai_vs_ai human_vs_human ai_vs_human"`
	HumanPlayer int    `json:"human_player" validate:"min=0,max=2"`
}

type apiMove struct {
	X int `json:"x" validate:"min=0,max=7"`
	Y int `json:"y" validate:"min=0,max=7"`
}

type historyEntryDTO struct {
	X         int          `json:"x"`
	Y         int          `json:"y"`
	Player    int          `json:"player"`
	ElapsedMs float64      `json:"elapsed_ms"`
	IsAi      bool         `json:"is_ai"`
	Flipped   []Move       `json:"flipped"`
	Changes   []cellChange `json:"changes"`
	Depth     int          `json:"depth"`
}

type cellChange struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Value int `json:"value"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type resetPayload struct {
	GameID          string            `json:"game_id"`
	History         []historyEntryDTO `json:"history"`
	Board           [][]int           `json:"board"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	BoardSize       int               `json:"board_size"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

type validMovesResponse struct {
	NextPlayer int    `json:"next_player"`
	Moves      []Move `json:"moves"`
}

type gameCreatedResponse struct {
	GameID string `json:"game_id"`
}

type gameListResponse struct {
	Games []string `json:"games"`
}

var validate = validator.New()

func main() {
	manager := NewGameManager()
	defaultController := manager.Create(DefaultGameSettings())
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, id := range manager.TickAll() {
					if id != defaultController.ID() {
						continue
					}
					if entry, ok := defaultController.LatestHistoryEntry(); ok {
						hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
					}
					hub.broadcastStatus <- controllerStatus(defaultController)
				}
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(defaultController))
	})

	r.Get("/api/valid-moves", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerValidMoves(defaultController))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if err := validate.Struct(payload.Settings); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		defaultController.StartGame(settings)
		writeJSON(w, http.StatusOK, controllerStatus(defaultController))
		hub.broadcastReset <- resetFromController(defaultController)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		settings := defaultController.Settings()
		defaultController.Reset(settings)
		writeJSON(w, http.StatusOK, controllerStatus(defaultController))
		hub.broadcastReset <- resetFromController(defaultController)
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		applyMoveHandler(hub, defaultController, true)(w, r)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			if err := validate.Struct(payload.Config); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			configStore.Update(*payload.Config)
		}
		if payload.Settings != nil {
			if err := validate.Struct(payload.Settings); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			settings := settingsFromDTO(*payload.Settings, defaultController.Settings())
			defaultController.UpdateSettings(settings, false)
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: controllerSettingsDTO(defaultController.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(defaultController))
	})

	r.Route("/api/games", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, gameListResponse{Games: manager.IDs()})
		})
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var payload struct {
				Settings GameSettingsDTO `json:"settings"`
			}
			if r.ContentLength > 0 {
				if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
					writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
					return
				}
				if err := validate.Struct(payload.Settings); err != nil {
					writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
					return
				}
			}
			settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
			controller := manager.Create(settings)
			writeJSON(w, http.StatusCreated, gameCreatedResponse{GameID: controller.ID()})
		})
		r.Route("/{id}", func(r chi.Router) {
			withGame := func(next func(http.ResponseWriter, *http.Request, *GameController)) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					id := chi.URLParam(r, "id")
					if _, err := uuid.Parse(id); err != nil {
						writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid game id"})
						return
					}
					controller, ok := manager.Get(id)
					if !ok {
						writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
						return
					}
					next(w, r, controller)
				}
			}
			r.Get("/status", withGame(func(w http.ResponseWriter, r *http.Request, controller *GameController) {
				writeJSON(w, http.StatusOK, controllerStatus(controller))
			}))
			r.Get("/valid-moves", withGame(func(w http.ResponseWriter, r *http.Request, controller *GameController) {
				writeJSON(w, http.StatusOK, controllerValidMoves(controller))
			}))
			r.Post("/start", withGame(func(w http.ResponseWriter, r *http.Request, controller *GameController) {
				var payload struct {
					Settings GameSettingsDTO `json:"settings"`
				}
				if r.ContentLength > 0 {
					if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
						writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
						return
					}
				}
				controller.StartGame(settingsFromDTO(payload.Settings, controller.Settings()))
				writeJSON(w, http.StatusOK, controllerStatus(controller))
			}))
			r.Post("/stop", withGame(func(w http.ResponseWriter, r *http.Request, controller *GameController) {
				controller.Reset(controller.Settings())
				writeJSON(w, http.StatusOK, controllerStatus(controller))
			}))
			r.Post("/move", withGame(func(w http.ResponseWriter, r *http.Request, controller *GameController) {
				applyMoveHandler(hub, controller, false)(w, r)
			}))
			r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
				id := chi.URLParam(r, "id")
				if id == defaultController.ID() {
					writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot remove default game"})
					return
				}
				if !manager.Remove(id) {
					writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
					return
				}
				writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
			})
		})
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, defaultController, w, r)
	})

	server := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Info().Str("addr", server.Addr).Msg("backend listening")
	select {
	case <-sigCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			log.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("graceful shutdown failed")
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Error().Err(closeErr).Msg("forced close failed")
		}
	}
	cancel()
}

func applyMoveHandler(hub *Hub, controller *GameController, broadcast bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if err := validate.Struct(payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(Move{X: payload.X, Y: payload.Y})
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		if broadcast {
			if entry, ok := controller.LatestHistoryEntry(); ok {
				hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
			}
			hub.broadcastStatus <- controllerStatus(controller)
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	}
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	status := controllerStatus(controller)
	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(status)})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			status := controllerStatus(controller)
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(status)})
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	black, white := state.Score()
	return StatusResponse{
		GameID:          controller.ID(),
		Settings:        controllerSettingsDTO(controller.Settings()),
		Config:          GetConfig(),
		Board:           boardToSlice(state.Board),
		BoardSize:       BoardSize,
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		BlackScore:      black,
		WhiteScore:      white,
		ValidMoves:      append([]Move(nil), state.ValidMoves...),
		History:         historyToDTO(controller.History()),
		AiThinking:      controller.AiThinking(),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func controllerValidMoves(controller *GameController) validMovesResponse {
	state := controller.State()
	return validMovesResponse{
		NextPlayer: playerToInt(state.ToMove),
		Moves:      append([]Move(nil), state.ValidMoves...),
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	switch dto.Mode {
	case "ai_vs_ai":
		settings.BlackType = PlayerAI
		settings.WhiteType = PlayerAI
	case "human_vs_human":
		settings.BlackType = PlayerHuman
		settings.WhiteType = PlayerHuman
	case "ai_vs_human":
		if dto.HumanPlayer == 2 {
			settings.BlackType = PlayerAI
			settings.WhiteType = PlayerHuman
		} else {
			settings.BlackType = PlayerHuman
			settings.WhiteType = PlayerAI
		}
	}
	return settings
}

func controllerSettingsDTO(settings GameSettings) GameSettingsDTO {
	mode := "ai_vs_human"
	if settings.BlackType == PlayerAI && settings.WhiteType == PlayerAI {
		mode = "ai_vs_ai"
	} else if settings.BlackType == PlayerHuman && settings.WhiteType == PlayerHuman {
		mode = "human_vs_human"
	}
	humanPlayer := 0
	if settings.BlackType == PlayerHuman {
		humanPlayer = 1
	} else if settings.WhiteType == PlayerHuman {
		humanPlayer = 2
	}
	return GameSettingsDTO{Mode: mode, HumanPlayer: humanPlayer}
}

func boardToSlice(board Board) [][]int {
	rows := make([][]int, BoardSize)
	for y := 0; y < BoardSize; y++ {
		rows[y] = make([]int, BoardSize)
		for x := 0; x < BoardSize; x++ {
			rows[y][x] = cellToInt(board.At(x, y))
		}
	}
	return rows
}

func cellToInt(cell Cell) int {
	switch cell {
	case CellBlack:
		return 1
	case CellWhite:
		return 2
	default:
		return 0
	}
}

func playerToInt(player PlayerColor) int {
	if player == PlayerBlack {
		return 1
	}
	return 2
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusBlackWon:
		return 1
	case StatusWhiteWon:
		return 2
	default:
		return 0
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		X:         entry.Move.X,
		Y:         entry.Move.Y,
		Player:    playerToInt(entry.Player),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		Flipped:   append([]Move(nil), entry.Flipped...),
		Changes:   changesFromEntry(entry),
		Depth:     entry.Depth,
	}
}

// changesFromEntry flattens a move into per-cell updates: the placed disc
// plus every flipped cell recolored to the mover.
func changesFromEntry(entry HistoryEntry) []cellChange {
	changes := []cellChange{{
		X:     entry.Move.X,
		Y:     entry.Move.Y,
		Value: playerToInt(entry.Player),
	}}
	for _, flipped := range entry.Flipped {
		changes = append(changes, cellChange{
			X:     flipped.X,
			Y:     flipped.Y,
			Value: playerToInt(entry.Player),
		})
	}
	return changes
}

func resetFromController(controller *GameController) resetPayload {
	state := controller.State()
	return resetPayload{
		GameID:          controller.ID(),
		History:         historyToDTO(controller.History()),
		Board:           boardToSlice(state.Board),
		NextPlayer:      playerToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		BoardSize:       BoardSize,
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
