package server

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// envelope is the wire format for server-to-client events.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// client wraps a websocket connection with a write lock; gorilla allows
// only one concurrent writer per connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// wsHub tracks which connection belongs to which room member and fans
// events out. Rooms emit while holding their own lock, so delivery order
// per room follows state-machine order.
type wsHub struct {
	mu    sync.Mutex
	rooms map[string]map[string]*client
}

func newWSHub() *wsHub {
	return &wsHub{
		rooms: make(map[string]map[string]*client),
	}
}

func (h *wsHub) Add(roomID, playerID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members := h.rooms[roomID]
	if members == nil {
		members = make(map[string]*client)
		h.rooms[roomID] = members
	}
	members[playerID] = &client{conn: conn}
}

func (h *wsHub) Remove(roomID, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members := h.rooms[roomID]
	if members == nil {
		return
	}
	if member, ok := members[playerID]; ok {
		_ = member.conn.Close()
		delete(members, playerID)
	}
	if len(members) == 0 {
		delete(h.rooms, roomID)
	}
}

func (h *wsHub) Broadcast(roomID, event string, payload any) {
	h.fanOut(roomID, "", event, payload)
}

func (h *wsHub) BroadcastExcept(roomID, exceptID, event string, payload any) {
	h.fanOut(roomID, exceptID, event, payload)
}

func (h *wsHub) Send(roomID, playerID, event string, payload any) {
	h.mu.Lock()
	member := h.rooms[roomID][playerID]
	h.mu.Unlock()
	if member == nil {
		return
	}
	data, err := json.Marshal(envelope{Type: event, Data: payload})
	if err != nil {
		return
	}
	if err := member.write(data); err != nil {
		h.Remove(roomID, playerID)
	}
}

func (h *wsHub) fanOut(roomID, exceptID, event string, payload any) {
	h.mu.Lock()
	members := make(map[string]*client, len(h.rooms[roomID]))
	for id, member := range h.rooms[roomID] {
		if id == exceptID {
			continue
		}
		members[id] = member
	}
	h.mu.Unlock()

	data, err := json.Marshal(envelope{Type: event, Data: payload})
	if err != nil {
		return
	}
	for id, member := range members {
		if err := member.write(data); err != nil {
			h.Remove(roomID, id)
		}
	}
}

// roomEmitter adapts the hub to the game package's Emitter for one room.
type roomEmitter struct {
	hub    *wsHub
	roomID string
}

func (e *roomEmitter) Broadcast(event string, payload any) {
	e.hub.Broadcast(e.roomID, event, payload)
}

func (e *roomEmitter) BroadcastExcept(playerID, event string, payload any) {
	e.hub.BroadcastExcept(e.roomID, playerID, event, payload)
}

func (e *roomEmitter) Send(playerID, event string, payload any) {
	e.hub.Send(e.roomID, playerID, event, payload)
}
