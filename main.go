package main

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"arena-server/config"
	"arena-server/protocol"
	"arena-server/room"
)

// ipRateLimiter tracks last connection time per IP to prevent abuse.
type ipRateLimiter struct {
	mu       sync.Mutex
	times    map[string]time.Time
	cooldown time.Duration
}

func newIPRateLimiter(cooldown time.Duration) *ipRateLimiter {
	rl := &ipRateLimiter{times: make(map[string]time.Time), cooldown: cooldown}
	// Cleanup stale entries every 60s
	go func() {
		for range time.Tick(60 * time.Second) {
			rl.mu.Lock()
			cutoff := time.Now().Add(-cooldown)
			for ip, t := range rl.times {
				if t.Before(cutoff) {
					delete(rl.times, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

// allow returns true if this IP can connect, and records the attempt.
func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if last, ok := rl.times[ip]; ok {
		if time.Since(last) < rl.cooldown {
			return false
		}
	}
	rl.times[ip] = time.Now()
	return true
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development; tighten in production
		return true
	},
	ReadBufferSize:    1024,
	WriteBufferSize:   4096,
	EnableCompression: true,
}

// sendErrorAndClose sends an error message via WebSocket then closes the connection.
func sendErrorAndClose(ws *websocket.Conn, msg string) {
	data, _ := json.Marshal(protocol.ErrorMsg{Type: protocol.MsgError, Message: msg})
	_ = ws.WriteMessage(websocket.TextMessage, data)
	ws.Close()
}

// lobby hands out the current free-tier room, replacing it when its match
// has ended.
type lobby struct {
	mu      sync.Mutex
	manager *room.Manager
	tier    config.Tier
	current *room.Room
}

func (l *lobby) room() *room.Room {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == nil || l.current.Ended() {
		l.current = l.manager.CreateRoom(l.tier)
	}
	return l.current
}

func main() {
	cfg := config.Load()

	// External collaborators (payouts, inventory, persistence) live outside
	// the simulation; they consume these hooks.
	hooks := room.Hooks{
		OnGameEnd: func(roomID string) {
			log.Printf("match %s torn down", roomID)
		},
		OnWinnerDetermined: func(winnerID, winnerName, matchID, sessionID, tier string, playerCount int) {
			log.Printf("match %s won by %s (%s), tier=%s players=%d", matchID, winnerName, winnerID, tier, playerCount)
		},
		OnAppleReward: func(playerID, wallet, reason string) {
			log.Printf("apple reward: player=%s wallet=%s reason=%s", playerID, wallet, reason)
		},
	}

	manager := room.NewManager(cfg, hooks)
	lob := &lobby{manager: manager, tier: cfg.FreeTier}
	conns := NewConnManager()
	rateLimiter := newIPRateLimiter(time.Duration(cfg.IPCooldownSec) * time.Second)

	http.HandleFunc(cfg.WSPath, func(w http.ResponseWriter, r *http.Request) {
		// Extract client IP (handle X-Forwarded-For for reverse proxies)
		ip := r.Header.Get("X-Forwarded-For")
		if ip == "" {
			ip, _, _ = net.SplitHostPort(r.RemoteAddr)
		}

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("ws upgrade error: %v", err)
			return
		}

		// Check limits after upgrade so the client can receive error messages
		if conns.Count() >= cfg.MaxPlayers {
			sendErrorAndClose(ws, "Server full. Please try again later.")
			return
		}
		if !rateLimiter.allow(ip) {
			sendErrorAndClose(ws, "Too many connections. Please wait and retry.")
			return
		}

		ws.EnableWriteCompression(true)

		rm := lob.room()
		if id := r.URL.Query().Get("room"); id != "" {
			if requested, ok := manager.Get(id); ok {
				rm = requested
			}
		}

		conn := NewConn(ws)
		conns.Add(conn)
		log.Printf("client connected: %s", conn.ID)

		// Watchers subscribe to snapshots without joining the match.
		if r.URL.Query().Get("watch") == "1" {
			subID := uuid.New().String()
			go conn.Pump(rm.Subscribe(subID))
			defer rm.Unsubscribe(subID)
		}

		conn.ReadLoop(rm, func(playerID string) {
			conns.Remove(conn.ID)
			if playerID != "" {
				rm.Leave(playerID)
				rm.Unsubscribe(playerID)
			}
			log.Printf("client disconnected: %s", conn.ID)
		})
	})

	// Match list and paid-match creation for the lobby service.
	http.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(manager.List())
		case http.MethodPost:
			tier := cfg.FreeTier
			if r.URL.Query().Get("tier") == cfg.PaidTier.Name {
				tier = cfg.PaidTier
			}
			created := manager.CreateRoom(tier)
			_ = json.NewEncoder(w).Encode(room.Info{ID: created.ID, Tier: tier.Name, Players: created.LiveCount()})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Serve static client files
	http.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	log.Printf("server listening on %s (map %.0fx%.0f, %d Hz)", cfg.Port, cfg.MapWidth, cfg.MapHeight, cfg.TickRate)
	if err := http.ListenAndServe(cfg.Port, nil); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
