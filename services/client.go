package services

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one WebSocket subscription to a lobby's event stream. The
// stream is one-way: operations go through the REST API, the socket
// only delivers events, so the read pump exists to notice disconnects.
type Client struct {
	identity string
	lobbyID  uint64
	conn     *websocket.Conn
	hub      *Hub
	send     chan []byte
	once     sync.Once
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

func (c *Client) readPump() {
	defer c.hub.remove(c)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[Client %s] disconnected from lobby %d", c.identity, c.lobbyID)
			} else {
				log.Printf("[Client %s] read error on lobby %d: %v", c.identity, c.lobbyID, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("[Client %s] write error on lobby %d: %v", c.identity, c.lobbyID, err)
			return
		}
	}
}
