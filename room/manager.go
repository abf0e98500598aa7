package room

import (
	"sync"

	"arena-server/config"
	"arena-server/game"
)

// Info is returned by the API for the match list.
type Info struct {
	ID      string `json:"id"`
	Tier    string `json:"tier"`
	Players int    `json:"players"`
}

// Manager holds the live rooms of this process. Rooms are independent; a
// room removes itself after its match ends.
type Manager struct {
	cfg   config.Config
	hooks Hooks

	mu      sync.RWMutex
	rooms   map[string]*Room
	drivers map[string]*BotDriver
}

// NewManager creates an empty manager. The given hooks are invoked for
// every room it creates.
func NewManager(cfg config.Config, hooks Hooks) *Manager {
	return &Manager{
		cfg:     cfg,
		hooks:   hooks,
		rooms:   make(map[string]*Room),
		drivers: make(map[string]*BotDriver),
	}
}

// CreateRoom builds, registers and starts a room for the given tier,
// including its bot driver.
func (m *Manager) CreateRoom(tier config.Tier) *Room {
	hooks := m.hooks
	outer := hooks.OnGameEnd
	hooks.OnGameEnd = func(roomID string) {
		// Room teardown runs on the room's own tick goroutine; removal
		// from the registry must not call back into the room.
		go m.remove(roomID)
		if outer != nil {
			outer(roomID)
		}
	}

	r := New(m.cfg, tier, game.SystemClock{}, hooks)
	d := NewBotDriver(r, m.cfg.BotCount)

	m.mu.Lock()
	m.rooms[r.ID] = r
	m.drivers[r.ID] = d
	m.mu.Unlock()

	r.Start()
	d.Start()
	return r
}

// Get returns the room with the given id.
func (m *Manager) Get(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// List returns every registered room with its live player count.
func (m *Manager) List() []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Info, 0, len(m.rooms))
	for id, r := range m.rooms {
		out = append(out, Info{ID: id, Tier: r.tier.Name, Players: r.LiveCount()})
	}
	return out
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.drivers[id]; ok {
		d.Stop()
		delete(m.drivers, id)
	}
	if r, ok := m.rooms[id]; ok {
		r.Stop()
		delete(m.rooms, id)
	}
}
