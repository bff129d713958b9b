package services

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a WebSocket client
type Client struct {
	ID   uint
	Role string
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub
}

func (c *Client) isAdmin() bool {
	return c.Role == "admin" || c.Role == "superadmin"
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.WithFields(log.Fields{"userId": client.ID, "role": client.Role}).Info("Client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.WithField("userId", client.ID).Info("Client disconnected")

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// GetConnectedClients returns the number of connected clients
func (h *Hub) GetConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// WebSocket message types
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// BookingUpdate notifies subscribers that a booking record changed.
type BookingUpdate struct {
	BookingID uint        `json:"bookingId"`
	UserID    uint        `json:"userId"`
	Status    string      `json:"status"`
	Booking   interface{} `json:"booking"`
}

// FleetUpdate notifies admin subscribers that a vehicle or driver record
// changed.
type FleetUpdate struct {
	Collection string      `json:"collection"` // "vehicles" or "drivers"
	RecordID   uint        `json:"id"`
	Status     string      `json:"status"`
	Record     interface{} `json:"record"`
}

// HandleWebSocket handles WebSocket connections
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, role string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("WebSocket upgrade error")
		return
	}

	client := &Client{
		ID:   userID,
		Role: role,
		Conn: conn,
		Send: make(chan []byte, 256),
		Hub:  hub,
	}

	client.Hub.register <- client

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump()
}

// readPump pumps messages from the websocket connection to the hub.
// Subscriptions are read-only; the client has no inbound commands, so
// the loop exists to detect disconnects and guarantee teardown.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Warn("WebSocket error")
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.WithError(err).Warn("WebSocket write error")
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// SendBookingUpdate pushes a booking change to every subscriber allowed
// to see it: admin roles get all bookings, a regular user only their own.
func (h *Hub) SendBookingUpdate(update BookingUpdate) {
	message := WebSocketMessage{
		Type: "booking_update",
		Data: update,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.WithError(err).Error("Error marshaling booking update")
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if !client.isAdmin() && client.ID != update.UserID {
			continue
		}
		select {
		case client.Send <- data:
		default:
			log.WithField("userId", client.ID).Warn("Could not send to client (channel full)")
		}
	}
}

// SendFleetUpdate pushes a vehicle or driver change to admin subscribers.
func (h *Hub) SendFleetUpdate(update FleetUpdate) {
	message := WebSocketMessage{
		Type: update.Collection + "_update",
		Data: update,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.WithError(err).Error("Error marshaling fleet update")
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if !client.isAdmin() {
			continue
		}
		select {
		case client.Send <- data:
		default:
			log.WithField("userId", client.ID).Warn("Could not send to client (channel full)")
		}
	}
}
