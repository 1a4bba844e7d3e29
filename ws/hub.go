package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	apiError "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/models"
)

// MessageStore persists messages arriving over the realtime channel.
// services.MessageService satisfies it.
type MessageStore interface {
	SendMessage(senderID, receiverID uint, content, messageType string) (*models.Message, *apiError.Error)
}

const (
	EventRegister       = "register"
	EventSendMessage    = "sendMessage"
	EventReceiveMessage = "receiveMessage"
	EventTyping         = "typing"
)

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type registerPayload struct {
	UserID uint `json:"user_id"`
}

type sendMessagePayload struct {
	ReceiverID  uint   `json:"receiver_id"`
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
}

type typingPayload struct {
	ReceiverID uint `json:"receiver_id"`
}

// Hub owns the presence registry and routes newly persisted messages and
// ephemeral typing signals to the recipient's channel, if any. Offline
// recipients are skipped silently: the message is durable and retrievable
// through the history endpoints, typing signals are simply lost.
type Hub struct {
	presence *Presence
	messages MessageStore

	mu      sync.Mutex
	clients map[*Client]bool
}

func NewHub(messages MessageStore) *Hub {
	return &Hub{
		presence: NewPresence(),
		messages: messages,
		clients:  make(map[*Client]bool),
	}
}

func (h *Hub) Presence() *Presence {
	return h.presence
}

// HandleConnection adopts an upgraded websocket connection and runs its
// pumps. The channel stays unregistered until a register event arrives.
func (h *Hub) HandleConnection(conn *websocket.Conn) {
	client := newClient(h, conn)
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	go client.writePump()
	go client.readPump()
}

func (h *Hub) handleEvent(c *Client, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("ws: malformed event: %v", err)
		return
	}

	switch env.Event {
	case EventRegister:
		var payload registerPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil || payload.UserID == 0 {
			log.Printf("ws: malformed register payload")
			return
		}
		// userID is read by delivering goroutines, so the write happens
		// under the hub lock. Registration stays in the same critical
		// section: a client torn down concurrently must not reappear in
		// the registry.
		h.mu.Lock()
		if _, ok := h.clients[c]; !ok {
			h.mu.Unlock()
			return
		}
		c.userID = payload.UserID
		h.presence.Register(payload.UserID, c)
		h.mu.Unlock()

	case EventSendMessage:
		if c.userID == 0 {
			log.Printf("ws: sendMessage on unregistered channel")
			return
		}
		var payload sendMessagePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			log.Printf("ws: malformed sendMessage payload")
			return
		}
		message, apiErr := h.messages.SendMessage(c.userID, payload.ReceiverID, payload.Content, payload.MessageType)
		if apiErr != nil {
			log.Printf("ws: sendMessage rejected: %v", apiErr)
			return
		}
		h.DeliverMessage(message)

	case EventTyping:
		if c.userID == 0 {
			return
		}
		var payload typingPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return
		}
		h.Typing(c.userID, payload.ReceiverID)

	default:
		log.Printf("ws: unknown event %q", env.Event)
	}
}

// DeliverMessage pushes a persisted message to the receiver's channel if one
// is registered.
func (h *Hub) DeliverMessage(message *models.Message) {
	if message == nil {
		return
	}
	client, ok := h.presence.Lookup(message.ReceiverID)
	if !ok {
		return
	}
	h.push(client, EventReceiveMessage, message)
}

// Typing relays a transient typing signal. Never persisted.
func (h *Hub) Typing(senderID, receiverID uint) {
	client, ok := h.presence.Lookup(receiverID)
	if !ok {
		return
	}
	h.push(client, EventTyping, map[string]uint{"sender_id": senderID})
}

// push hands a frame to the client's send channel. Sends happen under the
// hub lock and teardown removes the client from the hub before closing the
// channel, so a delivery can never hit a closed channel.
func (h *Hub) push(client *Client, event string, data interface{}) {
	payload, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  data,
	})
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	select {
	case client.send <- payload:
		h.mu.Unlock()
	default:
		// slow consumer, drop the channel
		delete(h.clients, client)
		userID := client.userID
		h.mu.Unlock()
		h.teardown(client, userID)
	}
}

func (h *Hub) disconnect(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	userID := c.userID
	h.mu.Unlock()
	h.teardown(c, userID)
}

// teardown runs at most once per client: callers remove the client from the
// hub under the lock before calling it.
func (h *Hub) teardown(c *Client, userID uint) {
	h.presence.Unregister(userID, c)
	close(c.send)
	if c.conn != nil {
		c.conn.Close()
	}
}
