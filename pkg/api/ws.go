package api

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fdot3/camwatch/pkg/health"
)

const (
	wsWriteTimeout = 5 * time.Second

	// Per-client send buffer. A client that cannot drain this is dropped
	// rather than allowed to stall the broadcast.
	wsSendBuffer = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// The API already allows any origin via CORS.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Hub streams check outcomes to connected websocket clients. It plugs into
// the monitor as an outcome handler.
type Hub struct {
	mu      sync.Mutex
	clients map[*wsClient]struct{}
	closed  bool
}

type wsClient struct {
	conn *websocket.Conn
	send chan *health.CheckOutcome
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*wsClient]struct{}),
	}
}

// HandleOutcome implements health.OutcomeHandler.
func (h *Hub) HandleOutcome(outcome *health.CheckOutcome) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- outcome:
		default:
			// Slow client: drop it instead of blocking the check loop.
			h.dropLocked(client)
		}
	}
}

// ServeWS upgrades the connection and streams outcomes until the client
// goes away or the hub closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan *health.CheckOutcome, wsSendBuffer),
	}

	h.mu.Lock()

	if h.closed {
		h.mu.Unlock()

		_ = conn.Close()

		return
	}

	h.clients[client] = struct{}{}
	h.mu.Unlock()

	go h.readLoop(client)
	go h.writeLoop(client)
}

// readLoop discards inbound frames and detects the client closing.
func (h *Hub) readLoop(client *wsClient) {
	defer h.drop(client)

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(client *wsClient) {
	defer h.drop(client)

	for outcome := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))

		if err := client.conn.WriteJSON(outcome); err != nil {
			return
		}
	}

	_ = client.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	_ = client.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
}

func (h *Hub) drop(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropLocked(client)
}

func (h *Hub) dropLocked(client *wsClient) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.send)

	_ = client.conn.Close()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	for client := range h.clients {
		h.dropLocked(client)
	}
}
