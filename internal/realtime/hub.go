// Package realtime pushes calendar change notifications to connected
// browsers over WebSocket.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
	EventBookingDeleted = "booking.deleted"
	EventBlockCreated   = "availability.created"
	EventBlockUpdated   = "availability.updated"
	EventBlockDeleted   = "availability.deleted"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

type Event struct {
	Type string `json:"type"`
	Unit string `json:"unit"`
	ID   int64  `json:"id"`
}

// connection is one browser. send is closed by the hub exactly once, when the
// connection leaves the map.
type connection struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

type Hub struct {
	connections map[uuid.UUID]*connection
	mutex       sync.RWMutex
	log         *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		connections: make(map[uuid.UUID]*connection),
		log:         log,
	}
}

// Serve registers conn and blocks until the client goes away. Writes happen on
// a dedicated goroutine; incoming messages are discarded.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &connection{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) register(c *connection) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.connections[c.id] = c
}

func (h *Hub) unregister(c *connection) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if existing, ok := h.connections[c.id]; ok && existing == c {
		delete(h.connections, c.id)
		close(c.send)
	}
}

// Publish queues ev for every client and never waits on a socket. A client
// whose buffer is full misses the event; the next one makes it refetch anyway.
func (h *Hub) Publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for id, c := range h.connections {
		select {
		case c.send <- data:
		default:
			h.log.Debug("websocket client too slow, event dropped", zap.String("conn_id", id.String()))
		}
	}
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

// Close disconnects every client. Their write pumps send a close frame and
// exit, which in turn ends the read loops.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, c := range h.connections {
		close(c.send)
		delete(h.connections, id)
	}
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Debug("dropping websocket client", zap.String("conn_id", c.id.String()), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
