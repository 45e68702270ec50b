// Package api - WebSocket event stream of verified webhook deliveries
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/blaaiz/blaaiz-go/internal/auth"
	"github.com/blaaiz/blaaiz-go/internal/metrics"
	"github.com/blaaiz/blaaiz-go/pkg/blaaiz"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // subscribers are authenticated by token, not origin
	},
}

// StreamMessage is the frame sent to stream subscribers
type StreamMessage struct {
	Type       string       `json:"type"`
	DeliveryID string       `json:"delivery_id,omitempty"`
	Event      blaaiz.Event `json:"event,omitempty"`
	Payload    interface{}  `json:"payload,omitempty"`
}

// WSClient represents a WebSocket client connection
type WSClient struct {
	conn       *websocket.Conn
	send       chan []byte
	subscriber *auth.Subscriber
}

// Hub fans broadcast messages out to every connected client
type Hub struct {
	mu      sync.RWMutex
	clients map[*WSClient]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*WSClient]struct{})}
}

// Broadcast queues msg for every client and returns how many accepted it.
// Clients whose buffer is full miss the message.
func (hub *Hub) Broadcast(msg *StreamMessage) int {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to encode stream message: %v", err)
		return 0
	}

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	delivered := 0
	for c := range hub.clients {
		select {
		case c.send <- data:
			delivered++
		default:
			metrics.TickDropped()
		}
	}
	if delivered > 0 {
		metrics.TickBroadcast()
	}
	return delivered
}

// Count returns the number of connected clients
func (hub *Hub) Count() int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.clients)
}

// Close disconnects every client. Each read pump then unregisters its client.
func (hub *Hub) Close() {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	for c := range hub.clients {
		c.conn.Close()
	}
}

func (hub *Hub) add(c *WSClient) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.clients[c] = struct{}{}
	metrics.SubscriberConnected()
}

// remove unregisters c and closes its send channel. Safe to call twice.
func (hub *Hub) remove(c *WSClient) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if _, ok := hub.clients[c]; !ok {
		return
	}
	delete(hub.clients, c)
	close(c.send)
	metrics.SubscriberDisconnected()
}

// HandleEventStream handles GET /ws/events
func (h *Handler) HandleEventStream(w http.ResponseWriter, r *http.Request) {
	subscriber, ok := subscriberFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "NO_TOKEN", "Subscriber token required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &WSClient{
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
		subscriber: subscriber,
	}
	h.hub.add(client)
	log.Printf("Stream subscriber %s (%s) connected", subscriber.Name, subscriber.ID)

	go client.writePump()
	go h.readPump(client)
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *WSClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump keeps the read deadline fresh and answers client pings.
// Subscribers only listen, so anything else is rejected.
func (h *Handler) readPump(c *WSClient) {
	defer func() {
		h.hub.remove(c)
		c.conn.Close()
		log.Printf("Stream subscriber %s disconnected", c.subscriber.ID)
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Sent after registration
	c.queue(&StreamMessage{
		Type: "connected",
		Payload: map[string]interface{}{
			"subscriber_id": c.subscriber.ID,
			"message":       "Subscribed to Blaaiz events",
		},
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg StreamMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.queueError("INVALID_MESSAGE", "Invalid message format")
			continue
		}

		switch msg.Type {
		case "ping":
			c.queue(&StreamMessage{
				Type:    "pong",
				Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
			})
		default:
			c.queueError("UNKNOWN_MESSAGE", "Unknown message type: "+msg.Type)
		}
	}
}

// queue sends msg to this client only. Called from readPump, the
// goroutine that also closes send, so the channel is open here.
func (c *WSClient) queue(msg *StreamMessage) {
	data, _ := json.Marshal(msg)
	select {
	case c.send <- data:
	default:
		// Channel full, drop message
	}
}

func (c *WSClient) queueError(code, message string) {
	c.queue(&StreamMessage{
		Type: "error",
		Payload: map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
