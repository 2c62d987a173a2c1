package chat

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"papochat/internal/pkg/logx"
)

const broadcastChannelBuffer = 256

// Event is the JSON document pushed to chat pages for every new message.
// Display and SentAt are already formatted for the page.
type Event struct {
	ID      string `json:"id"`
	Display string `json:"display"`
	Message string `json:"message"`
	SentAt  string `json:"sentAt"`
}

// Hub fans new chat messages out to every connected websocket client.
type Hub struct {
	// clients is the set of connected clients.
	clients map[*Client]struct{}

	// broadcast carries encoded events to deliver.
	broadcast chan []byte

	register   chan *Client
	unregister chan *Client

	// stopChan is closed by Shutdown; done is closed when Run returns.
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	// mu protects clients for readers outside the Run loop.
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a Hub. Run must be started before clients register.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, broadcastChannelBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopChan:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logx.Component("chat.hub"),
	}
}

// Run processes registrations and broadcasts until Shutdown is called.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()

			h.logger.Info().
				Str("username", client.username).
				Int("total_clients", total).
				Msg("Chat client connected.")

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.mu.RLock()
			var stale []*Client
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					stale = append(stale, client)
				}
			}
			h.mu.RUnlock()

			for _, client := range stale {
				h.logger.Warn().Str("username", client.username).Msg("Client send buffer full, dropping client.")
				h.remove(client)
			}

		case <-h.stopChan:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

			h.logger.Info().Msg("Chat hub stopped.")
			return
		}
	}
}

// remove drops client and closes its send channel, which ends its write pump.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked is remove with h.mu already held for writing.
func (h *Hub) removeLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.send)

	h.logger.Info().
		Str("username", client.username).
		Int("total_clients", len(h.clients)).
		Msg("Chat client disconnected.")
}

// DisconnectSession drops every client opened with the given session and returns how many
// were dropped. Their write pumps send a close frame and end the connection.
func (h *Hub) DisconnectSession(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	dropped := 0
	for client := range h.clients {
		if client.sessionID == sessionID {
			h.removeLocked(client)
			dropped++
		}
	}

	if dropped > 0 {
		h.logger.Info().Int("dropped", dropped).Msg("Chat clients of ended session disconnected.")
	}
	return dropped
}

// Register adds client to the hub. It returns false once the hub is shut down.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.stopChan:
		return false
	}
}

// Unregister removes client from the hub. It is a no-op after shutdown.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stopChan:
	}
}

// Broadcast queues ev for every connected client. When the queue is full the event is
// dropped; the message is still in the log and shows up on the next page load.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error().Err(err).Str("message_id", ev.ID).Msg("Error marshaling chat event.")
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.stopChan:
	default:
		h.logger.Warn().Str("message_id", ev.ID).Msg("Broadcast channel full, event dropped.")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown stops Run and closes every client's send channel. It waits for Run to return.
func (h *Hub) Shutdown() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
	<-h.done
}
