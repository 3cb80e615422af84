// Package sse provides Server-Sent Events support for live station streams.
package sse

import (
	"sync"

	"evmaint_backend/platform/logger"

	"github.com/google/uuid"
)

// EventType represents different types of SSE events.
type EventType string

const (
	EventConnected       EventType = "connected"
	EventTelemetry       EventType = "telemetry"
	EventReportGenerated EventType = "report_generated"
)

// Event represents an SSE event payload.
type Event struct {
	Type      EventType   `json:"type"`
	StationID string      `json:"stationId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// Client is one connected SSE stream watching a station.
type Client struct {
	ID        uuid.UUID
	StationID string
	Events    chan Event
}

// Hub manages SSE connections keyed by station and broadcasts events to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string][]*Client // stationID -> clients
	log     *logger.Logger
}

// NewHub creates a new SSE hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[string][]*Client),
		log:     log.WithComponent("sse"),
	}
}

// Subscribe registers a new client watching the given station.
// The caller must call Unsubscribe when the connection ends.
func (h *Hub) Subscribe(stationID string) *Client {
	c := &Client{
		ID:        uuid.New(),
		StationID: stationID,
		Events:    make(chan Event, 32),
	}

	h.mu.Lock()
	h.clients[stationID] = append(h.clients[stationID], c)
	h.mu.Unlock()

	h.log.Debug("sse client connected", "client_id", c.ID, "station_id", stationID)
	return c
}

// Unsubscribe removes a client and closes its event channel.
func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[c.StationID]
	for i, cl := range clients {
		if cl == c {
			h.clients[c.StationID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.clients[c.StationID]) == 0 {
		delete(h.clients, c.StationID)
	}

	close(c.Events)
	h.log.Debug("sse client disconnected", "client_id", c.ID, "station_id", c.StationID)
}

// Publish sends an event to every client watching the station.
// Slow clients with a full buffer drop the event rather than block.
func (h *Hub) Publish(stationID string, event Event) {
	h.mu.RLock()
	clients := h.clients[stationID]
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.Events <- event:
		default:
			h.log.Warn("sse event buffer full, dropping event",
				"client_id", c.ID, "station_id", stationID, "type", string(event.Type))
		}
	}
}

// Close shuts down the hub, closing every client channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for _, c := range clients {
			close(c.Events)
		}
	}
	h.clients = make(map[string][]*Client)
}
