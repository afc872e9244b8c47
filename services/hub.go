package services

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/stakeroom/lobby-backend/ledger"

	"github.com/gorilla/websocket"
)

// Hub fans committed ledger events out to WebSocket subscribers, one
// subscriber set per lobby. Sends are non-blocking: a slow consumer
// drops events rather than stalling the ledger.
type Hub struct {
	mu      sync.RWMutex
	lobbies map[uint64]map[string]*Client // lobbyID -> identity -> client
}

func NewHub() *Hub {
	return &Hub{lobbies: make(map[uint64]map[string]*Client)}
}

// Subscribe registers a connection for a lobby's event stream. A second
// connection for the same identity replaces the first.
func (h *Hub) Subscribe(lobbyID uint64, identity string, conn *websocket.Conn) *Client {
	c := &Client{
		identity: identity,
		lobbyID:  lobbyID,
		conn:     conn,
		hub:      h,
		send:     make(chan []byte, 32),
	}

	h.mu.Lock()
	clients, ok := h.lobbies[lobbyID]
	if !ok {
		clients = make(map[string]*Client)
		h.lobbies[lobbyID] = clients
	}
	if old, ok := clients[identity]; ok {
		old.Close()
	}
	clients[identity] = c
	h.mu.Unlock()

	go c.writePump()
	go c.readPump()

	log.Printf("[Hub] %s subscribed to lobby %d", identity, lobbyID)
	return c
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if clients, ok := h.lobbies[c.lobbyID]; ok {
		if cur, ok := clients[c.identity]; ok && cur == c {
			delete(clients, c.identity)
		}
	}
	h.mu.Unlock()
	c.Close()
}

// Emit implements ledger.Sink.
func (h *Hub) Emit(e ledger.Event) {
	b, err := json.Marshal(e)
	if err != nil {
		log.Printf("[Hub] marshal event for lobby %d: %v", e.LobbyID, err)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.lobbies[e.LobbyID]))
	for _, c := range h.lobbies[e.LobbyID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		func(c *Client) {
			// A concurrent Close can race the send; recover like any
			// other dropped delivery.
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Hub] recovered send to %s (lobby %d): %v", c.identity, e.LobbyID, r)
				}
			}()
			select {
			case c.send <- b:
			default:
				log.Printf("[Hub] dropping event %s for slow subscriber %s (lobby %d)", e.Type, c.identity, e.LobbyID)
			}
		}(c)
	}
}
