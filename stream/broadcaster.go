// Package stream pushes live population updates to WebSocket clients.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// StepEvent is one population update pushed to subscribers.
type StepEvent struct {
	Step      int `json:"step"`
	Predators int `json:"predators"`
	Prey      int `json:"prey"`
}

// JSON encodes the event for the wire.
func (e StepEvent) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Broadcaster fans step events out to all connected WebSocket clients.
type Broadcaster struct {
	mu         sync.RWMutex
	clients    map[*websocket.Conn]bool
	upgrader   websocket.Upgrader
	broadcast  chan StepEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	wg         sync.WaitGroup
}

// NewBroadcaster creates a broadcaster and starts its fan-out goroutine.
func NewBroadcaster() *Broadcaster {
	b := &Broadcaster{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan StepEvent, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	b.wg.Add(1)
	go b.run()

	return b
}

// RegisterClient registers a new WebSocket client connection.
func (b *Broadcaster) RegisterClient(conn *websocket.Conn) {
	select {
	case b.register <- conn:
	case <-b.done:
		// Broadcaster is closing, ignore
	}
}

// UnregisterClient unregisters a WebSocket client connection.
func (b *Broadcaster) UnregisterClient(conn *websocket.Conn) {
	select {
	case b.unregister <- conn:
	case <-b.done:
		// Broadcaster is closing, ignore
	}
}

// Publish queues an event for delivery to all connected clients.
func (b *Broadcaster) Publish(ctx context.Context, event StepEvent) error {
	select {
	case b.broadcast <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(1 * time.Second):
		return fmt.Errorf("broadcast queue full")
	}
}

// ClientCount reports the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// HandleWS upgrades an HTTP request to a WebSocket subscription. The
// read loop only watches for the client going away.
func (b *Broadcaster) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	b.RegisterClient(conn)

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				b.UnregisterClient(conn)
				return
			}
		}
	}()
}

// run handles client registration/unregistration and message broadcasting.
func (b *Broadcaster) run() {
	defer b.wg.Done()
	for {
		select {
		case <-b.done:
			return

		case conn := <-b.register:
			if conn == nil {
				continue
			}
			b.mu.Lock()
			b.clients[conn] = true
			b.mu.Unlock()

		case conn := <-b.unregister:
			if conn == nil {
				continue
			}
			b.mu.Lock()
			if _, ok := b.clients[conn]; ok {
				delete(b.clients, conn)
				conn.Close()
			}
			b.mu.Unlock()

		case event, ok := <-b.broadcast:
			if !ok {
				return
			}
			data, err := event.JSON()
			if err != nil {
				continue
			}

			// Collect connections first so writes happen outside the lock
			b.mu.RLock()
			conns := make([]*websocket.Conn, 0, len(b.clients))
			for conn := range b.clients {
				conns = append(conns, conn)
			}
			b.mu.RUnlock()

			var toRemove []*websocket.Conn
			for _, conn := range conns {
				conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					toRemove = append(toRemove, conn)
					conn.Close()
				}
			}

			if len(toRemove) > 0 {
				b.mu.Lock()
				for _, conn := range toRemove {
					delete(b.clients, conn)
				}
				b.mu.Unlock()
			}
		}
	}
}

// Close closes all WebSocket connections and stops the goroutine.
// Close must only be called once.
func (b *Broadcaster) Close() error {
	close(b.done)

	b.mu.Lock()
	for conn := range b.clients {
		conn.Close()
		delete(b.clients, conn)
	}
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}
