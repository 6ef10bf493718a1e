package server

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/truco-front/truco/internal/game"
	"github.com/truco-front/truco/internal/truco"
)

// connectAndJoin opens a relay connection following match-1 as name.
func connectAndJoin(ctx context.Context, t *testing.T, s *State, name string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.Dial(ctx, "ws://"+s.Address+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.CloseNow() })

	joinMsg, err := game.NewWsMessage(game.MsgTypeJoin, game.JoinMessage{
		MatchID: "match-1",
		Player:  game.Player{Name: name},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := wsjson.Write(ctx, conn, joinMsg); err != nil {
		t.Fatalf("Failed to send join: %v", err)
	}
	return conn
}

// readUntil reads messages until one of type want arrives.
func readUntil(ctx context.Context, t *testing.T, conn *websocket.Conn, want game.MessageType) any {
	t.Helper()
	for {
		var msg game.WsMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			t.Fatalf("Failed to read %s message: %v", want, err)
		}
		if msg.Type != want {
			continue
		}
		p, err := msg.Parse()
		if err != nil {
			t.Fatalf("Failed to parse payload: %v", err)
		}
		return p
	}
}

func sendAction(ctx context.Context, t *testing.T, conn *websocket.Conn, a truco.Action) {
	t.Helper()
	msg, err := game.NewWsMessage(game.MsgTypeAction, a.Message())
	if err != nil {
		t.Fatal(err)
	}
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		t.Fatalf("Failed to send action: %v", err)
	}
}

func TestRelayStreamsState(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s := startServer(t, newFakeBackend())
	conn := connectAndJoin(ctx, t, s, "alice")

	state, ok := readUntil(ctx, t, conn, game.MsgTypeState).(*game.StateMessage)
	if !ok {
		t.Fatalf("Expected StateMessage")
	}
	if state.Game.UUID != "match-1" || state.Game.Step.Vira != "4O" {
		t.Errorf("Unexpected state %+v", state.Game)
	}
	// Polling goes on.
	readUntil(ctx, t, conn, game.MsgTypeState)
	if s.Followers() != 1 {
		t.Errorf("Expected 1 follower, got %d", s.Followers())
	}
}

func TestRelaySubmitsValidActionsOnce(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	fb := newFakeBackend()
	s := startServer(t, fb)
	conn := connectAndJoin(ctx, t, s, "alice")
	readUntil(ctx, t, conn, game.MsgTypeState)

	// Not in alice's hand: rejected before reaching the backend.
	sendAction(ctx, t, conn, truco.PlayCard("3Z", false))
	errMsg, ok := readUntil(ctx, t, conn, game.MsgTypeError).(*game.ErrorMessage)
	if !ok || errMsg.Action != game.ActionPlayCard || !strings.Contains(errMsg.Message, "not in your hand") {
		t.Errorf("Unexpected error message %+v", errMsg)
	}

	sendAction(ctx, t, conn, truco.CallTruco(3))
	deadline := time.Now().Add(2 * time.Second)
	for len(fb.postsSnapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	posts := fb.postsSnapshot()
	if len(posts) != 1 || !strings.HasPrefix(posts[0], "/games/match-1/call") || !strings.Contains(posts[0], `"call":3`) {
		t.Errorf("Expected a single call request, got %v", posts)
	}
}

func TestRelaySpectatorCannotAct(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	fb := newFakeBackend()
	s := startServer(t, fb)
	conn := connectAndJoin(ctx, t, s, "eve")
	readUntil(ctx, t, conn, game.MsgTypeState)

	sendAction(ctx, t, conn, truco.Escape())
	errMsg, ok := readUntil(ctx, t, conn, game.MsgTypeError).(*game.ErrorMessage)
	if !ok || errMsg.Action != game.ActionEscape {
		t.Errorf("Unexpected error message %+v", errMsg)
	}
	if posts := fb.postsSnapshot(); len(posts) != 0 {
		t.Errorf("Spectator actions must not reach the backend: %v", posts)
	}
}

func TestRelayReportsMissingMatch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	fb := newFakeBackend()
	fb.gone = true
	s := startServer(t, fb)
	conn := connectAndJoin(ctx, t, s, "alice")

	errMsg, ok := readUntil(ctx, t, conn, game.MsgTypeError).(*game.ErrorMessage)
	if !ok || !errMsg.NotFound {
		t.Errorf("Expected a not found error, got %+v", errMsg)
	}
}
