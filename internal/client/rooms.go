package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/truco-front/truco/internal/game"
	"github.com/truco-front/truco/internal/truco"
)

func roomPath(roomID string, action ...string) string {
	return "/rooms/" + strings.Join(append([]string{url.PathEscape(roomID)}, action...), "/")
}

// Rooms lists the open rooms.
func (c *Client) Rooms(ctx context.Context) ([]game.Room, error) {
	var rooms []game.Room
	if err := c.do(ctx, http.MethodGet, "/rooms", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Room fetches one room, including its chairs and chat.
func (c *Client) Room(ctx context.Context, roomID string) (*game.Room, error) {
	room := &game.Room{}
	if err := c.do(ctx, http.MethodGet, roomPath(roomID), nil, room); err != nil {
		return nil, err
	}
	return room, nil
}

// CreateRoom opens a room owned by the client's identity.
func (c *Client) CreateRoom(ctx context.Context, name string) (*game.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: room name is empty", ErrInvalidInput)
	}
	req := game.CreateRoomRequest{PlayerUUID: c.id.ID}
	req.Room.Name = name
	room := &game.Room{}
	if err := c.do(ctx, http.MethodPost, "/rooms", req, room); err != nil {
		return nil, err
	}
	return room, nil
}

// JoinRoom seats the client's identity in the room.
func (c *Client) JoinRoom(ctx context.Context, roomID string) error {
	return c.do(ctx, http.MethodPost, roomPath(roomID, "join"), game.RoomPlayerRequest{PlayerUUID: c.id.ID}, nil)
}

// LeaveRoom frees the client's chair.
func (c *Client) LeaveRoom(ctx context.Context, roomID string) error {
	return c.do(ctx, http.MethodPost, roomPath(roomID, "leave"), game.RoomPlayerRequest{PlayerUUID: c.id.ID}, nil)
}

// ChangeChair moves the client's identity to seat.
func (c *Client) ChangeChair(ctx context.Context, roomID string, seat truco.Seat) error {
	chair := seat.Chair()
	if chair == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, truco.ErrUnknownSeat)
	}
	req := game.ChangeChairRequest{PlayerName: c.id.Name, ChairDestination: chair}
	return c.do(ctx, http.MethodPost, roomPath(roomID, "changechair"), req, nil)
}

// SendMessage posts to the room chat. Blank messages and messages longer
// than game.MaxChatMessageLength are rejected without a request.
func (c *Client) SendMessage(ctx context.Context, roomID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > game.MaxChatMessageLength {
		return fmt.Errorf("%w: chat message must have 1 to %d characters", ErrInvalidInput, game.MaxChatMessageLength)
	}
	return c.do(ctx, http.MethodPost, roomPath(roomID, "messages"), game.SendMessageRequest{Content: content}, nil)
}
