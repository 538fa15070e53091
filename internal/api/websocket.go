package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds how long a single frame write may take.
	writeWait = 10 * time.Second

	// pongWait is how long we tolerate silence from a client before
	// treating the connection as dead. Pings go out well inside it.
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	// Clients only ever send pongs, so inbound frames stay tiny.
	maxInboundSize = 512

	// sendBufferSize is the per-client outbound queue. A client that
	// falls this far behind gets disconnected rather than block the hub.
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local tool, all origins welcome
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocketMessage is the envelope every broadcast uses.
type WebSocketMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// WebSocketHub fans file-change notifications out to every connected
// browser tab. It subscribes to the FileWatcher and rebroadcasts each
// change as JSON.
type WebSocketHub struct {
	mu      sync.RWMutex
	clients map[*WebSocketClient]bool
}

// WebSocketClient is one connected browser tab.
type WebSocketClient struct {
	hub  *WebSocketHub
	conn *websocket.Conn
	send chan []byte
}

// NewWebSocketHub creates an empty hub.
func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{clients: make(map[*WebSocketClient]bool)}
}

// ClientCount returns the number of connected clients.
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// OnFileChange implements FileWatcherSubscriber.
func (h *WebSocketHub) OnFileChange(change FileChange) {
	data, err := json.Marshal(WebSocketMessage{Type: "file_change", Data: change})
	if err != nil {
		log.Printf("Failed to marshal file change: %v", err)
		return
	}
	h.broadcast(data)
}

// broadcast queues data for every connected client.
func (h *WebSocketHub) broadcast(data []byte) {
	h.mu.RLock()
	snapshot := make([]*WebSocketClient, 0, len(h.clients))
	for client := range h.clients {
		snapshot = append(snapshot, client)
	}
	h.mu.RUnlock()

	for _, client := range snapshot {
		h.trySend(client, data)
	}
}

// trySend queues data for one client. The recover covers the race where
// removeClient closed the channel after the snapshot was taken; a full
// queue means the client is too slow and gets dropped.
func (h *WebSocketHub) trySend(client *WebSocketClient, data []byte) {
	defer func() {
		_ = recover()
	}()

	select {
	case client.send <- data:
	default:
		h.removeClient(client)
	}
}

func (h *WebSocketHub) addClient(client *WebSocketClient) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
}

// removeClient drops a client and closes its queue. Safe to call more
// than once for the same client; only the first call closes the channel.
func (h *WebSocketHub) removeClient(client *WebSocketClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

// ServeWS upgrades an HTTP request and registers the resulting client.
func (h *WebSocketHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &WebSocketClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	h.addClient(client)

	go client.writePump()
	go client.readPump()

	welcome := WebSocketMessage{
		Type: "connected",
		Data: map[string]any{"message": "Palette sync enabled"},
	}
	if data, err := json.Marshal(welcome); err == nil {
		h.trySend(client, data)
	}
}

// readPump drains inbound frames. Clients never send application data;
// reading exists to process pongs and to notice disconnects. On exit it
// unregisters the client, which closes the send channel and lets
// writePump tear down the connection.
func (c *WebSocketClient) readPump() {
	defer c.hub.removeClient(c)

	c.conn.SetReadLimit(maxInboundSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
	}
}

// writePump owns the connection's write side: queued messages, periodic
// pings, and the final close. Each queued message goes out as its own
// text frame so the frontend always sees one JSON document per frame.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
