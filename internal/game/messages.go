package game

import (
	"encoding/json"
	"fmt"
)

// Backend request bodies.

// CreatePlayerRequest is the body of POST /players.
type CreatePlayerRequest struct {
	Name string `json:"name"`
}

// CreateRoomRequest is the body of POST /rooms.
type CreateRoomRequest struct {
	PlayerUUID string `json:"player_uuid"`
	Room       struct {
		Name string `json:"name"`
	} `json:"room"`
}

// RoomPlayerRequest is the body of POST /rooms/{id}/join and /leave.
type RoomPlayerRequest struct {
	PlayerUUID string `json:"player_uuid"`
}

// ChangeChairRequest is the body of POST /rooms/{id}/changechair.
type ChangeChairRequest struct {
	PlayerName       string `json:"player_name"`
	ChairDestination string `json:"chair_destination"`
}

// SendMessageRequest is the body of POST /rooms/{id}/messages.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// PlayMoveRequest is the body of POST {game}/play_move.
type PlayMoveRequest struct {
	Card    *string `json:"card"`
	Coverup *bool   `json:"coverup"`
}

// CallRequest is the body of POST {game}/call: either a raise (Call) or a
// response to a pending raise (Accept).
type CallRequest struct {
	Accept *bool `json:"accept"`
	Call   *int  `json:"call"`
}

// CollectRequest is the body of POST {game}/collect.
type CollectRequest struct {
	Collect bool `json:"collect"`
}

// EscapeRequest is the body of POST {game}/escape.
type EscapeRequest struct{}

// Message type for WebSocket communication between the browser and the relay.
type MessageType string

const (
	MsgTypeJoin   MessageType = "join"   // Client wants to follow a match
	MsgTypeState  MessageType = "state"  // Relay sends the latest game snapshot
	MsgTypeAction MessageType = "action" // Client submits an action
	MsgTypeError  MessageType = "error"  // Relay reports a fetch or action failure
)

// WsMessage represents a WebSocket message.
type WsMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewWsMessage creates a new WsMessage with a marshaled payload.
func NewWsMessage(msgType MessageType, payload interface{}) (WsMessage, error) {
	if payload == nil {
		return WsMessage{Type: msgType}, nil
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return WsMessage{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return WsMessage{
		Type:    msgType,
		Payload: payloadBytes,
	}, nil
}

// Parse unmarshals the message payload into one of the message types (JoinMessage, StateMessage, etc.)
func (m *WsMessage) Parse() (any, error) {
	var target any
	switch m.Type {
	case MsgTypeJoin:
		target = &JoinMessage{}
	case MsgTypeState:
		target = &StateMessage{}
	case MsgTypeAction:
		target = &ActionMessage{}
	case MsgTypeError:
		target = &ErrorMessage{}
	default:
		return nil, fmt.Errorf("unknown message type: %s", m.Type)
	}

	if len(m.Payload) == 0 {
		return target, nil
	}

	err := json.Unmarshal(m.Payload, target)
	return target, err
}

// JoinMessage is the payload for MsgTypeJoin
type JoinMessage struct {
	MatchID    string `json:"match_id"`
	TwoPlayers bool   `json:"two_players"`
	Player     Player `json:"player"`
}

// StateMessage is the payload for MsgTypeState
type StateMessage struct {
	Game Details `json:"game"`
}

// ActionKind names an outbound action.
type ActionKind string

const (
	ActionPlayCard ActionKind = "play_card"
	ActionCall     ActionKind = "call"
	ActionRespond  ActionKind = "respond"
	ActionCollect  ActionKind = "collect"
	ActionEscape   ActionKind = "escape"
)

// ActionMessage is the payload for MsgTypeAction. Only the fields relevant
// to Kind are read.
type ActionMessage struct {
	Kind    ActionKind `json:"kind"`
	Card    string     `json:"card,omitempty"`
	CoverUp bool       `json:"cover_up,omitempty"`
	Level   int        `json:"level,omitempty"`
	Accept  bool       `json:"accept,omitempty"`
}

// ErrorMessage is the payload for MsgTypeError
type ErrorMessage struct {
	Message string `json:"message"`
	// Action is set when the error comes from a failed action submission.
	Action ActionKind `json:"action,omitempty"`
	// NotFound is set when the match no longer exists.
	NotFound bool `json:"not_found,omitempty"`
}
