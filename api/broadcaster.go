package api

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Broadcaster fans Event values out to every connected WebSocket client,
// mirroring the ARM teacher codebase's api.Broadcaster.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]chan Event
}

// NewBroadcaster returns an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[*websocket.Conn]chan Event)}
}

// Register adds a connection and returns the channel its writer goroutine
// should drain.
func (b *Broadcaster) Register(conn *websocket.Conn) chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan Event, 16)
	b.clients[conn] = ch
	return ch
}

// Unregister removes a connection and closes its channel.
func (b *Broadcaster) Unregister(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.clients[conn]; ok {
		close(ch)
		delete(b.clients, conn)
	}
}

// Publish sends ev to every registered client, dropping it for any client
// whose channel is full rather than blocking the emulator loop.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close disconnects every client.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn, ch := range b.clients {
		close(ch)
		conn.Close()
	}
	b.clients = make(map[*websocket.Conn]chan Event)
}

func encodeEvent(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}
