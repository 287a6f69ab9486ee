package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/rigkit/internal/rig"
)

const (
	// writeWait is the time allowed to write one message to a client.
	writeWait = 2 * time.Second
	// sendBuffer is how many results may queue per client. A client that
	// falls further behind drops results rather than stalling the feed.
	sendBuffer = 8
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// RigFeed broadcasts rig results to WebSocket clients.
type RigFeed struct {
	clients map[*feedClient]bool
	mu      sync.RWMutex
	closed  bool
}

// NewRigFeed creates an empty RigFeed.
func NewRigFeed() *RigFeed {
	return &RigFeed{clients: make(map[*feedClient]bool)}
}

// ServeHTTP handles WebSocket upgrade requests.
func (f *RigFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	c := &feedClient{conn: conn, send: make(chan []byte, sendBuffer)}
	if !f.add(c) {
		conn.Close()
		return
	}

	go f.writeLoop(c)

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	f.remove(c)
}

// Publish sends result to every connected client.
func (f *RigFeed) Publish(result rig.Result) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.clients) == 0 {
		return
	}

	msg, err := json.Marshal(result)
	if err != nil {
		log.Printf("encode rig result: %v", err)
		return
	}

	for c := range f.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// Clients returns how many clients are connected.
func (f *RigFeed) Clients() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

// Close disconnects every client and refuses new ones.
func (f *RigFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	for c := range f.clients {
		delete(f.clients, c)
		close(c.send)
	}
}

func (f *RigFeed) add(c *feedClient) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false
	}
	f.clients[c] = true
	return true
}

func (f *RigFeed) remove(c *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.clients[c] {
		delete(f.clients, c)
		close(c.send)
	}
}

func (f *RigFeed) writeLoop(c *feedClient) {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
