// Package realtime pushes per-user notifications over WebSocket connections.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event types delivered to clients
const (
	EventCollaborationRequested = "collaboration.requested"
	EventCollaborationResolved  = "collaboration.resolved"
)

// Event is the envelope written to every connection of a user
type Event struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers events to a user's live connections
type Publisher interface {
	Publish(userID string, event Event)
}

// Options configures a Hub
type Options struct {
	// AllowedOrigins lists browser origins accepted on upgrade; empty means same-origin only
	AllowedOrigins []string
	// SendBufferSize is the per-connection outbound queue length
	SendBufferSize int
}

// Hub maintains the set of active clients keyed by user ID
type Hub struct {
	clients map[string]map[*Client]struct{}
	stopped bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	opts   Options
	logger zerolog.Logger

	// wg tracks client pumps so Run can wait for them on shutdown
	wg sync.WaitGroup
}

var _ Publisher = (*Hub)(nil)

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger, opts Options) *Hub {
	if opts.SendBufferSize <= 0 {
		opts.SendBufferSize = 256
	}
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client, 16),
		done:       make(chan struct{}),
		opts:       opts,
		logger:     logger,
	}
}

// Run handles registrations until ctx is cancelled, then closes every client
// and waits for their pumps to exit.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			h.wg.Wait()
			h.logger.Info().Msg("Realtime hub stopped")
			return
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[client.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.userID] = set
	}
	set[client] = struct{}{}

	h.logger.Info().
		Str("userID", client.userID).
		Int("connections", len(set)).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}

	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info().
		Str("userID", client.userID).
		Msg("Client unregistered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopped = true

	for userID, set := range h.clients {
		for client := range set {
			close(client.send)
		}
		delete(h.clients, userID)
	}
}

// Publish sends an event to every connection of userID. Clients whose queue
// is full are disconnected instead of blocking the publisher.
func (h *Hub) Publish(userID string, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("type", event.Type).Msg("Failed to marshal event")
		return
	}

	h.mu.RLock()
	var slow []*Client
	delivered := 0
	for client := range h.clients[userID] {
		select {
		case client.send <- data:
			delivered++
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn().Str("userID", userID).Msg("Dropping slow realtime client")
		h.dropClient(client)
	}

	h.logger.Debug().
		Str("userID", userID).
		Str("type", event.Type).
		Int("delivered", delivered).
		Msg("Event published")
}

func (h *Hub) dropClient(client *Client) {
	select {
	case h.unregister <- client:
	default:
		// Queue full; the hub is busy, so unregister synchronously
		h.unregisterClient(client)
	}
}

// ClientCount returns the number of live connections of a user
func (h *Hub) ClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
