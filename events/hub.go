package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub menampung semua client websocket (admin, staff) dan menyiarkan
// event lifecycle ke semuanya. Implementasi Sink.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
	}
}

// Register -> menambahkan connection ke set dengan role
func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

// Unregister -> melepaskan connection
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// Publish menyiarkan pesan ke semua client. Kegagalan kirim hanya
// dicatat; operasi pemicunya sudah commit dan tetap sukses.
func (h *Hub) Publish(msg Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling event %s: %v", msg.Event, err)
		return
	}

	for conn, role := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s to %s client: %v", msg.Event, role, err)
			continue
		}
	}
}
