package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = 54 * time.Second
	maxMessageSize   = 4096
	sendBufferSize   = 256
	assistantTimeout = 30 * time.Second
)

// assistantTag is the sender label on assistant replies
const assistantTag = "GrindHub Assistant"

// Client is one websocket connection scoped to a verified user identity
type Client struct {
	conn        *websocket.Conn
	send        chan []byte
	hub         *Hub
	userID      string
	addr        string
	closed      bool
	rateLimiter *rateLimiter
}

// NewClient wraps an upgraded connection for the given user
func NewClient(conn *websocket.Conn, hub *Hub, userID, addr string) *Client {
	if conn != nil {
		conn.SetReadLimit(maxMessageSize)
	}
	return &Client{
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		hub:         hub,
		userID:      userID,
		addr:        addr,
		rateLimiter: newRateLimiter(5, time.Second),
	}
}

func (c *Client) readPump() {
	defer func() {
		// after shutdown nothing services the unregister channel
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
			log.Printf("Error closing connection in readPump: %v", err)
		}
	}()

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Error setting read deadline for %s: %v", c.addr, err)
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.logReadError(err)
			return
		}

		if !c.rateLimiter.allow() {
			log.Printf("Rate limit exceeded for user %s; discarding message", c.userID)
			continue
		}

		c.handleInbound(raw)
	}
}

// handleInbound routes one client-emitted event. Only the assistant prompt
// is accepted here; chat messages go through the REST append path so the
// durable log and the push channel can never diverge in content.
func (c *Client) handleInbound(raw []byte) {
	var event UserMessageEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		log.Printf("Invalid event from user %s: %v", c.userID, err)
		return
	}
	if event.Type != EventUserMessage || strings.TrimSpace(event.Message) == "" {
		return
	}

	if c.hub.responder == nil {
		return
	}
	go c.answerAssistant(event)
}

// answerAssistant asks the responder and pushes the reply back on this
// connection only. A reply for a connection that has since closed is dropped.
func (c *Client) answerAssistant(event UserMessageEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
	defer cancel()

	reply, err := c.hub.responder.Reply(ctx, event.Message, event.Context)
	if err != nil {
		log.Printf("Assistant reply failed for user %s: %v", c.userID, err)
		return
	}

	payload, err := json.Marshal(AssistantReplyEvent{
		Type:    EventAssistantReply,
		Sender:  assistantTag,
		Message: reply,
	})
	if err != nil {
		log.Printf("Failed to encode assistant reply: %v", err)
		return
	}
	c.hub.sendToClient(c, payload)
}

func (c *Client) logReadError(err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		log.Printf("Message from user %s exceeded %d bytes", c.userID, maxMessageSize)
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure):
		log.Printf("Client for user %s disconnected: %v", c.userID, err)
	case errors.Is(err, io.EOF), isExpectedCloseError(err):
		log.Printf("Connection for user %s closed: %v", c.userID, err)
	default:
		log.Printf("Websocket read error from user %s: %v", c.userID, err)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
			log.Printf("Error closing connection in writePump: %v", err)
		}
	}()

	for {
		select {
		case payload, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Error setting write deadline for %s: %v", c.addr, err)
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				if !isExpectedCloseError(err) {
					log.Printf("Error writing to user %s: %v", c.userID, err)
				}
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Error setting write deadline for ping to %s: %v", c.addr, err)
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// isExpectedCloseError reports errors that are routine during teardown
func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "use of closed network connection") ||
		strings.Contains(msg, "websocket: close sent") ||
		strings.Contains(msg, "broken pipe")
}
