// Package websocket holds the message shapes of the refresh stream and
// small deadline-aware read/write helpers.
package websocket

import "github.com/edunexus/schoolhub/internal/refresh"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
	// ActionSubscribe replaces the topic filter of the connection.
	ActionSubscribe Action = "subscribe"
)

// ClientMessage is every frame a portal may send.
type ClientMessage struct {
	Action Action          `json:"action"`
	Topics []refresh.Topic `json:"topics,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError      Event = "error"
	EventPong       Event = "pong"
	EventRefresh    Event = "refresh"
	EventSubscribed Event = "subscribed"
)

// RefreshMessage tells the portal which list to re-fetch.
type RefreshMessage struct {
	Event Event         `json:"event"`
	Data  refresh.Event `json:"data"`
}

// SubscribedMessage confirms the active topic filter. Empty means all.
type SubscribedMessage struct {
	Event  Event           `json:"event"`
	Topics []refresh.Topic `json:"topics"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
