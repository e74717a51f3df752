package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const wsPingInterval = 25 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsClient is one open reminder socket. gorilla allows a single concurrent
// writer, so pings and pushes share mu.
type wsClient struct {
	partition string
	conn      *websocket.Conn
	mu        sync.Mutex
}

func (c *wsClient) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteMessage(messageType, data)
}

// reminderPush is the frame sent when reminders fire.
type reminderPush struct {
	Type     string   `json:"type"`
	Messages []string `json:"messages"`
}

// realtimeHub tracks open sockets per partition and pushes fired reminders.
type realtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*wsClient]struct{}
}

func newRealtimeHub() *realtimeHub {
	return &realtimeHub{clients: make(map[string]map[*wsClient]struct{})}
}

func (h *realtimeHub) register(c *wsClient) {
	h.mu.Lock()
	if h.clients[c.partition] == nil {
		h.clients[c.partition] = make(map[*wsClient]struct{})
	}
	h.clients[c.partition][c] = struct{}{}
	h.mu.Unlock()
}

func (h *realtimeHub) unregister(c *wsClient) {
	h.mu.Lock()
	if set := h.clients[c.partition]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.partition)
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// connected reports how many sockets are open for partition.
func (h *realtimeHub) connected(partition string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[partition])
}

// Notify pushes messages to every socket open for partition.
func (h *realtimeHub) Notify(partition string, messages []string) {
	msg, err := json.Marshal(reminderPush{Type: "reminders", Messages: messages})
	if err != nil {
		log.Printf("[realtime] marshal: %v", err)
		return
	}

	h.mu.RLock()
	targets := make([]*wsClient, 0, len(h.clients[partition]))
	for c := range h.clients[partition] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			h.unregister(c)
		}
	}
}

// reminderSocket upgrades to a websocket that receives reminders as they
// fire. Browsers pass the token as ?token=.
// GET /api/reminders/ws.
func (h *Handler) reminderSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &wsClient{partition: partition(c), conn: conn}
	h.hub.register(cl)

	done := make(chan struct{})
	defer close(done)

	go func() {
		t := time.NewTicker(wsPingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.write(websocket.PingMessage, nil); err != nil {
					h.hub.unregister(cl)
					return
				}
			}
		}
	}()

	// The read loop ends when the client closes or the connection drops.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.hub.unregister(cl)
			return
		}
	}
}
