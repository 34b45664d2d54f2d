package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/jonas-koeritz/senxor"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	conn    *websocket.Conn
	remote  string
	send    chan []byte
	dropped atomic.Uint64
}

// hub fans encoded frames out to websocket clients. publish never blocks:
// a client whose buffer is full misses the frame.
type hub struct {
	log    *slog.Logger
	buffer int

	mu      sync.RWMutex
	clients map[*client]struct{}

	latest atomic.Pointer[[]byte]
}

func newHub(logger *slog.Logger, buffer int) *hub {
	if buffer < 1 {
		buffer = 1
	}
	return &hub{
		log:     logger,
		buffer:  buffer,
		clients: make(map[*client]struct{}),
	}
}

// publish is registered as a reader listener.
func (h *hub) publish(f *senxor.Frame) {
	msg, err := json.Marshal(f)
	if err != nil {
		h.log.Error("failed to encode frame", "error", err)
		return
	}
	h.latest.Store(&msg)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			if n := c.dropped.Add(1); n%100 == 1 {
				h.log.Warn("client too slow, dropping frames", "remote", c.remote, "dropped", n)
			}
		}
	}
}

func (h *hub) add(conn *websocket.Conn) *client {
	c := &client{conn: conn, remote: conn.RemoteAddr().String(), send: make(chan []byte, h.buffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.log.Info("client connected", "remote", c.remote)
	return c
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		close(c.send)
		c.conn.Close()
		h.log.Info("client disconnected", "remote", c.remote, "dropped", c.dropped.Load())
	}
}

func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *hub) handleLatest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	msg := h.latest.Load()
	if msg == nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "No frames available yet",
		})
		return
	}
	w.Write(*msg)
}

func (h *hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := h.add(conn)

	go func() {
		for msg := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.remove(c)
				return
			}
		}
	}()

	// Keep connection alive until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}
