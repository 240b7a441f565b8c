package models

import "time"

// Dashboard event types.
const (
	EventConnected      = "CONNECTED"
	EventDisconnected   = "DISCONNECTED"
	EventError          = "ERROR"
	EventCommand        = "COMMAND"
	EventProfilesLoaded = "PROFILES_LOADED"
)

// DashboardEvent is a single in-memory log entry.
type DashboardEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // CONNECTED | DISCONNECTED | ERROR | COMMAND | PROFILES_LOADED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
