package eduapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/eduhub/eduhub-go/internal/domain/model"
)

const (
	pathChatRooms     = "/chat/rooms/"
	pathConversations = "/chat/conversations/"
)

// ChatRooms lists the rooms visible to the current user.
func (c *Client) ChatRooms(ctx context.Context) ([]model.ChatRoom, error) {
	var rooms []model.ChatRoom
	err := c.get(ctx, pathChatRooms, nil, &rooms, "Could not load chat rooms.")
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateRoom creates a chat room.
func (c *Client) CreateRoom(ctx context.Context, name, description string, private bool) (model.ChatRoom, error) {
	body := map[string]any{"name": name, "description": description, "is_private": private}
	var room model.ChatRoom
	err := c.post(ctx, pathChatRooms, body, &room, "Could not create the room.")
	if err != nil {
		return model.ChatRoom{}, err
	}
	return room, nil
}

// JoinRoom adds the current user to a room.
func (c *Client) JoinRoom(ctx context.Context, roomID int64) error {
	return c.post(ctx, fmt.Sprintf("%s%d/join/", pathChatRooms, roomID), nil, nil,
		"Could not join the room.")
}

// LeaveRoom removes the current user from a room.
func (c *Client) LeaveRoom(ctx context.Context, roomID int64) error {
	return c.post(ctx, fmt.Sprintf("%s%d/leave/", pathChatRooms, roomID), nil, nil,
		"Could not leave the room.")
}

// RoomMessages lists a page of a room's message history. Page 0 means the
// server's first page.
func (c *Client) RoomMessages(ctx context.Context, roomID int64, page int) ([]model.ChatMessage, error) {
	var query url.Values
	if page > 0 {
		query = url.Values{"page": []string{strconv.Itoa(page)}}
	}
	var msgs []model.ChatMessage
	err := c.get(ctx, fmt.Sprintf("%s%d/messages/", pathChatRooms, roomID), query, &msgs,
		"Could not load messages.")
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// SendRoomMessage posts a message to a room.
func (c *Client) SendRoomMessage(ctx context.Context, roomID int64, content string) (model.ChatMessage, error) {
	body := map[string]any{"content": content, "message_type": model.MessageTypeText}
	var msg model.ChatMessage
	err := c.post(ctx, fmt.Sprintf("%s%d/messages/", pathChatRooms, roomID), body, &msg,
		"Could not send the message.")
	if err != nil {
		return model.ChatMessage{}, err
	}
	return msg, nil
}

// Conversations lists the current user's direct-message threads.
func (c *Client) Conversations(ctx context.Context) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := c.get(ctx, pathConversations, nil, &convs,
		"Could not load conversations.")
	if err != nil {
		return nil, err
	}
	return convs, nil
}

// StartConversation opens (or returns the existing) thread with a user.
func (c *Client) StartConversation(ctx context.Context, participantID int64) (model.Conversation, error) {
	var conv model.Conversation
	err := c.post(ctx, pathConversations, map[string]any{"participant": participantID}, &conv,
		"Could not start the conversation.")
	if err != nil {
		return model.Conversation{}, err
	}
	return conv, nil
}
