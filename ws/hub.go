package ws

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

var ErrNoClient = errors.New("no connected client for token")

type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Hub tracks live websocket connections. Each connection registers with the
// notification token of its account. Connections without a token only
// receive broadcasts; addressed sends require a matching token.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]string
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, token string) {
	h.mu.Lock()
	h.clients[conn] = token
	h.mu.Unlock()
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// SendToToken delivers the message to every connection registered with the
// token. Returns ErrNoClient when no connection holds the token.
func (h *Hub) SendToToken(token string, message Message) error {
	if token == "" {
		return ErrNoClient
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := false
	var sendErr error
	for conn, registered := range h.clients {
		if registered != token {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Println("websocket write failed, dropping client:", err)
			conn.Close()
			delete(h.clients, conn)
			sendErr = err
			continue
		}
		delivered = true
	}
	if delivered {
		return nil
	}
	if sendErr != nil {
		return sendErr
	}
	return ErrNoClient
}

// Broadcast sends the message to every connection.
func (h *Hub) Broadcast(message Message) {
	payload, err := json.Marshal(message)
	if err != nil {
		log.Println("failed to marshal broadcast message:", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Println("websocket write failed, dropping client:", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
