package main

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"arena-server/protocol"
	"arena-server/room"
)

// Conn manages a single WebSocket session.
type Conn struct {
	ID     string
	ws     *websocket.Conn
	mu     sync.Mutex // protects ws writes and closed
	closed bool
}

// NewConn creates a new connection wrapper.
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ID: uuid.New().String(),
		ws: ws,
	}
}

// Send serializes msg to JSON and writes it as a text frame.
func (c *Conn) Send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Pump forwards room messages to the socket until the subscription closes.
// Runs on its own goroutine so a slow socket never touches the tick.
func (c *Conn) Pump(ch <-chan room.Outbound) {
	for out := range ch {
		kind := websocket.TextMessage
		if out.Binary {
			kind = websocket.BinaryMessage
		}
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		err := c.ws.WriteMessage(kind, out.Data)
		c.mu.Unlock()
		if err != nil {
			return
		}
	}
}

// Close marks the connection closed.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.ws.Close()
}

// ConnManager tracks active connections for the player cap.
type ConnManager struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

// NewConnManager creates an empty connection manager.
func NewConnManager() *ConnManager {
	return &ConnManager{conns: make(map[string]*Conn)}
}

// Add registers a connection.
func (m *ConnManager) Add(c *Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[c.ID] = c
}

// Remove unregisters a connection.
func (m *ConnManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, id)
}

// Count returns the number of active connections.
func (m *ConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// ReadLoop handles incoming messages until the client disconnects. The
// first join binds this connection to a player in rm; movement and boost
// messages are forwarded onto the room's command queue.
func (c *Conn) ReadLoop(rm *room.Room, onDisconnect func(playerID string)) {
	playerID := ""
	defer func() {
		onDisconnect(playerID)
		c.Close()
	}()

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error for %s: %v", c.ID, err)
			}
			return
		}

		var msg protocol.ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("bad message from %s: %v", c.ID, err)
			continue
		}

		switch msg.Type {
		case protocol.MsgJoin:
			if playerID != "" {
				continue
			}
			name := msg.Name
			if name == "" {
				name = "Player"
			}
			playerID = rm.Join(name, c.ID, msg.Wallet, msg.Cosmetics)
			if playerID == "" {
				_ = c.Send(protocol.ErrorMsg{Type: protocol.MsgError, Message: "Match already ended."})
				return
			}
			go c.Pump(rm.Subscribe(playerID))
			w, h := rm.MapSize()
			_ = c.Send(protocol.WelcomeMsg{
				Type:      protocol.MsgWelcome,
				ID:        playerID,
				RoomID:    rm.ID,
				MapWidth:  w,
				MapHeight: h,
				Color:     rm.PlayerColor(playerID),
			})

		case protocol.MsgMove:
			if playerID != "" {
				rm.Move(playerID, msg.X, msg.Y)
			}

		case protocol.MsgBoost:
			if playerID != "" {
				rm.Boost(playerID, msg.On == 1)
			}
		}
	}
}
