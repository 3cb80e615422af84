// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"evmaint_backend/platform/events"
	"evmaint_backend/platform/logger"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserCreated is published when an admin provisions a new user account.
type UserCreated struct {
	BaseEvent
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (e UserCreated) EventName() string { return "auth.user.created" }

// StationGrantsChanged is published when a user's station access list changes.
type StationGrantsChanged struct {
	BaseEvent
	UserID   string   `json:"userId"`
	Stations []string `json:"stations"`
}

func (e StationGrantsChanged) EventName() string { return "auth.user.grants_changed" }

// =============================================================================
// Reports Domain Events
// =============================================================================

// ReportGenerated is published after a report PDF has been rendered. The
// telemetry module relays it to connected SSE clients watching the station.
type ReportGenerated struct {
	BaseEvent
	ReportType string `json:"reportType"`
	ReportID   string `json:"reportId"`
	IssueID    string `json:"issueId"`
	StationID  string `json:"stationId"`
	Pages      int    `json:"pages"`
}

func (e ReportGenerated) EventName() string { return "reports.generated" }
