// Package channel implements the client side of the realtime connection:
// JSON event frames over a websocket. Event payloads are opaque here; the
// caller registers a handler per event name and decodes its own payloads.
package channel

import (
	"encoding/json"
	"errors"
)

// Event names emitted by the client.
const (
	EventChatMessage   = "chatMessage"
	EventFetchPrevious = "fetchPreviousMessages"
)

// Event names delivered by the server.
const (
	EventMessage        = "message"
	EventPreviousLoaded = "previousMessagesLoaded"
	EventMessageRead    = "messageRead"
	EventSessionEnded   = "session_ended"
)

// ErrClosed is returned by Emit once the connection is gone.
var ErrClosed = errors.New("channel closed")

// Frame is the wire envelope every event travels in.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Handler consumes the raw payload of one inbound event.
type Handler func(data json.RawMessage)
