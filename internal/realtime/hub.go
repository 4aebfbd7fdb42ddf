// Package realtime implements the best-effort push channel that mirrors new
// chat messages to connected group members and carries the non-persisted
// assistant exchange. One websocket connection is held per verified identity;
// delivery is fire-and-forget, and clients reconcile against the durable log.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub tracks connected clients by user id and fans events out to them.
// Registration, unregistration, and publishing all flow through channels
// serviced by Run; the mutex protects the maps for snapshot reads.
type Hub struct {
	clients    map[*Client]bool
	byUser     map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	publish    chan publishRequest
	responder  Responder
	mu         sync.RWMutex
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

type publishRequest struct {
	payload []byte
	userIDs []string
}

// NewHub creates a hub ready to manage connections. responder handles the
// assistant side-channel; pass nil to disable it.
func NewHub(responder Responder) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[*Client]bool),
		byUser:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan publishRequest),
		responder:  responder,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// Run services the hub's event loop. Call it in its own goroutine; it exits
// when Shutdown cancels the hub context.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeAllClients()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.addClient(client)

			h.wg.Add(2)
			go func() {
				defer h.wg.Done()
				client.writePump()
			}()
			go func() {
				defer h.wg.Done()
				client.readPump()
			}()

		case client := <-h.unregister:
			h.removeClient(client)

		case req := <-h.publish:
			h.deliver(req)
		}
	}
}

// PublishChat fans a stored chat message out to the given members.
// Members without a live connection are skipped; they catch up on pull.
func (h *Hub) PublishChat(groupID, messageID, sender, content string, userIDs []string) {
	event := ChatMessageEvent{
		Type:      EventChatMessage,
		GroupID:   groupID,
		MessageID: messageID,
		Sender:    sender,
		Message:   content,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to encode chat event for message %s: %v", messageID, err)
		return
	}
	h.Publish(payload, userIDs)
}

// Publish queues a payload for delivery to the connections of the given
// users. It is a no-op after shutdown.
func (h *Hub) Publish(payload []byte, userIDs []string) {
	select {
	case h.publish <- publishRequest{payload: payload, userIDs: userIDs}:
	case <-h.ctx.Done():
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	client.closed = false
	h.clients[client] = true
	conns, ok := h.byUser[client.userID]
	if !ok {
		conns = make(map[*Client]bool)
		h.byUser[client.userID] = conns
	}
	conns[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	log.Printf("Client registered for user %s from %s. Total clients: %d", client.userID, client.addr, total)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	client.closed = true
	if conns, ok := h.byUser[client.userID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.byUser, client.userID)
		}
	}
	total := len(h.clients)
	h.mu.Unlock()

	close(client.send)
	log.Printf("Client unregistered for user %s from %s. Total clients: %d", client.userID, client.addr, total)
}

// deliver sends the payload to every live connection of the target users.
// Clients whose send buffer is full are dropped rather than blocked on.
func (h *Hub) deliver(req publishRequest) {
	targets := h.connectionsFor(req.userIDs)

	var failed []*Client
	for _, client := range targets {
		if !h.trySend(client, req.payload) {
			failed = append(failed, client)
		}
	}

	for _, client := range failed {
		log.Printf("Dropping client for user %s: send buffer full", client.userID)
		h.removeClient(client)
	}
}

func (h *Hub) connectionsFor(userIDs []string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var targets []*Client
	for _, id := range userIDs {
		for client := range h.byUser[id] {
			targets = append(targets, client)
		}
	}
	return targets
}

// trySend attempts a non-blocking send to a client's buffer
func (h *Hub) trySend(client *Client, payload []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.clients[client]; !ok || client.closed {
		return false
	}

	select {
	case client.send <- payload:
		return true
	default:
		return false
	}
}

// sendToClient delivers a payload to a single connection, used by the
// assistant side-channel to answer only the prompting connection
func (h *Hub) sendToClient(client *Client, payload []byte) bool {
	return h.trySend(client, payload)
}

// closeAllClients tears down every connection at shutdown. Closing the send
// channels unblocks writePumps; closing the connections unblocks readPumps.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		client.closed = true
		close(client.send)
		clients = append(clients, client)
	}
	h.clients = make(map[*Client]bool)
	h.byUser = make(map[string]map[*Client]bool)
	h.mu.Unlock()

	for _, client := range clients {
		if client.conn != nil {
			if err := client.conn.Close(); err != nil && !isExpectedCloseError(err) {
				log.Printf("Error closing client connection from %s: %v", client.addr, err)
			}
		}
	}

	log.Printf("Closed %d client connections", len(clients))
}

// Shutdown stops the hub, closes every connection, and waits for the pump
// goroutines to finish or the timeout to expire.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.cancel()
	<-h.done

	finished := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		log.Println("Hub shutdown completed")
		return nil
	case <-time.After(timeout):
		log.Println("Hub shutdown timeout reached; some goroutines may still be running")
		return context.DeadlineExceeded
	}
}
