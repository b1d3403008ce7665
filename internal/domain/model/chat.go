//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// ChatRoom represents a group chat room.
type ChatRoom struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsPrivate   bool      `json:"is_private"`
	Members     int       `json:"members,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// MessageType represents the kind of content in a chat message.
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
)

// Valid returns true if the message type is valid.
func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeFile:
		return true
	default:
		return false
	}
}

// ChatMessage represents a single message in a room or conversation.
type ChatMessage struct {
	ID          int64       `json:"id"`
	RoomID      int64       `json:"room_id,omitempty"`
	SenderID    int64       `json:"sender"`
	SenderName  string      `json:"sender_name,omitempty"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"message_type"`
	SentAt      time.Time   `json:"sent_at,omitempty"`
}

// Conversation represents a direct-message thread between two users.
type Conversation struct {
	ID            int64        `json:"id"`
	ParticipantID int64        `json:"participant"`
	Participant   string       `json:"participant_name,omitempty"`
	LastMessage   *ChatMessage `json:"last_message,omitempty"`
	UpdatedAt     time.Time    `json:"updated_at,omitempty"`
}
