package models

import "time"

// MessageKind distinguishes plain text messages from file messages.
type MessageKind string

const (
	KindText MessageKind = "text"
	KindFile MessageKind = "file"
)

// OutboundMessage is the envelope emitted on the realtime channel when a
// draft is submitted. A file message may carry an optional caption in
// Content; a text message must have non-empty trimmed Content.
type OutboundMessage struct {
	Room     string          `json:"room"`
	Kind     MessageKind     `json:"type"`
	Content  string          `json:"content"`
	FileData *FileAttachment `json:"fileData,omitempty"`
}

// Message is a message already delivered to the room.
type Message struct {
	ID        string        `json:"id"`
	RoomID    string        `json:"room"`
	Kind      MessageKind   `json:"type"`
	Content   string        `json:"content"`
	Sender    *User         `json:"sender,omitempty"`
	File      *FileMetadata `json:"fileData,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Readers   []string      `json:"readers,omitempty"`
}

// FetchPreviousRequest asks the server for the page of messages strictly
// before a known timestamp.
type FetchPreviousRequest struct {
	RoomID string    `json:"roomId"`
	Before time.Time `json:"before"`
	Limit  int       `json:"limit"`
}
