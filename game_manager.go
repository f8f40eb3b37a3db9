package main

import "sync"

// GameManager keeps independent game sessions keyed by their game ID.
// Sessions share nothing; concurrent games and searches never interfere.
type GameManager struct {
	mu       sync.Mutex
	sessions map[string]*GameController
}

func NewGameManager() *GameManager {
	return &GameManager{sessions: make(map[string]*GameController)}
}

// Create registers a new session and returns its controller.
func (m *GameManager) Create(settings GameSettings) *GameController {
	controller := NewGameController(settings)
	m.mu.Lock()
	m.sessions[controller.ID()] = controller
	m.mu.Unlock()
	return controller
}

func (m *GameManager) Get(id string) (*GameController, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	controller, ok := m.sessions[id]
	return controller, ok
}

func (m *GameManager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

func (m *GameManager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// TickAll pumps every session once and returns the IDs of sessions where a
// move was applied.
func (m *GameManager) TickAll() []string {
	m.mu.Lock()
	controllers := make([]*GameController, 0, len(m.sessions))
	for _, controller := range m.sessions {
		controllers = append(controllers, controller)
	}
	m.mu.Unlock()

	moved := []string{}
	for _, controller := range controllers {
		if controller.Tick() {
			moved = append(moved, controller.ID())
		}
	}
	return moved
}
