package sse

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dimitrije/showcase-api/internal/events"
	"go.uber.org/zap"
)

// Message is the payload written to dashboard streams.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type Client struct {
	ID string
	// Resources the client watches. Empty means every resource.
	Resources map[string]bool
	Send      chan []byte
}

func (c *Client) Watches(resource string) bool {
	return len(c.Resources) == 0 || c.Resources[resource]
}

// Hub relays change notifications to connected SSE clients.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan events.Event
	done       chan struct{}
	closeOnce  sync.Once
	mu         sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan events.Event, 256),
		done:       make(chan struct{}),
		logger:     logger.Named("sse"),
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// closes every client's Send channel.
func (h *Hub) Run(ctx context.Context) error {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.logger.Debug("client connected", zap.String("client_id", client.ID))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Debug("client disconnected", zap.String("client_id", client.ID))

		case ev := <-h.broadcast:
			h.fanOut(ev)
		}
	}
}

func (h *Hub) fanOut(ev events.Event) {
	data, err := json.Marshal(Message{Type: "change", Data: ev})
	if err != nil {
		h.logger.Error("failed to encode event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if !client.Watches(ev.Resource) {
			continue
		}
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("client buffer full, dropping event",
				zap.String("client_id", client.ID),
				zap.String("resource", ev.Resource))
		}
	}
}

func (h *Hub) shutdown() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.mu.Lock()
		for id, client := range h.clients {
			close(client.Send)
			delete(h.clients, id)
		}
		h.mu.Unlock()
	})
}

// Register adds client. It reports false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues ev for delivery without blocking; it has the shape of an
// events.Listener so the hub can subscribe to the registry directly.
func (h *Hub) Publish(ev events.Event) {
	select {
	case h.broadcast <- ev:
	default:
		h.logger.Warn("broadcast queue full, dropping event",
			zap.String("resource", ev.Resource),
			zap.String("kind", string(ev.Kind)))
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
