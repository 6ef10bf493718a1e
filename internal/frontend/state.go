package frontend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"github.com/truco-front/truco/internal/client"
	"github.com/truco-front/truco/internal/game"
	"github.com/truco-front/truco/internal/truco"
	"k8s.io/klog/v2"
)

// EnvPollInterval is the app environment key carrying the refresh period,
// set by the server from its configuration.
const EnvPollInterval = "TRUCO_POLL_INTERVAL"

const playerCookie = "truco_player"

// GlobalClientState manages the player identity, the relay connection and
// the view of the followed match.
type GlobalClientState struct {
	Player *game.Player
	// Error is a transient message shown above the current page.
	Error string
	Conn  *websocket.Conn

	// Login State (persistent across re-renders)
	PendingName string

	// Followed match.
	MatchID    string
	TwoPlayers bool
	Tracker    *client.Tracker
	View       *truco.View
	// ActionError is the last failed action submission.
	ActionError string
	// MatchGone is set once the backend no longer knows the match.
	MatchGone bool

	SoundEnabled bool
	lastCall     int

	// Listeners for state updates
	Listeners map[string]func()
}

var State *GlobalClientState

func InitState() {
	if State == nil {
		klog.V(1).Infof("InitState: creating new state (was nil)")
		State = &GlobalClientState{
			Player:       &game.Player{},
			Listeners:    make(map[string]func()),
			SoundEnabled: true,
		}
	} else {
		klog.V(1).Infof("InitState: state already exists")
	}
}

// LoggedIn reports whether the player has a backend identity.
func (s *GlobalClientState) LoggedIn() bool {
	return s.Player != nil && s.Player.ID != "" && s.Player.Name != ""
}

// Identity of the logged in player.
func (s *GlobalClientState) Identity() truco.Identity {
	if s.Player == nil {
		return truco.Identity{}
	}
	return truco.Identity{Name: s.Player.Name, ID: s.Player.ID}
}

// API returns a backend client going through the server's /api proxy.
func (s *GlobalClientState) API() *client.Client {
	u := app.Window().URL()
	c, err := client.New(fmt.Sprintf("%s://%s/api", u.Scheme, u.Host), 10*time.Second)
	if err != nil {
		// The page URL always parses.
		panic(err)
	}
	return c.WithIdentity(s.Identity())
}

// PollInterval is the refresh period of lobby and room pages.
func PollInterval() time.Duration {
	if d, err := time.ParseDuration(app.Getenv(EnvPollInterval)); err == nil && d > 0 {
		return d
	}
	return time.Second
}

func (s *GlobalClientState) ToggleSound() {
	s.SoundEnabled = !s.SoundEnabled
	klog.Infof("ToggleSound: SoundEnabled is now %v", s.SoundEnabled)
	s.Notify()
}

func (s *GlobalClientState) PlaySound(url string) {
	if !s.SoundEnabled || app.IsServer {
		return
	}

	// Create a new Audio element for the sound effect
	audio := app.Window().Get("document").Call("createElement", "audio")
	audio.Set("src", url)

	// Play the sound (fire and forget)
	promise := audio.Call("play")
	if promise.Truthy() {
		promise.Call("catch", app.FuncOf(func(this app.Value, args []app.Value) any {
			klog.Errorf("PlaySound: Failed to play %s: %v", url, args[0])
			return nil
		}))
	}
}

func (s *GlobalClientState) Notify() {
	klog.V(1).Infof("GlobalClientState: Notifying %d listeners", len(s.Listeners))
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}

// Logout forgets the identity and stops following any match.
func (s *GlobalClientState) Logout() {
	s.Unfollow()
	s.Player = &game.Player{}
	deleteCookie(playerCookie)
}

// Follow connects to the relay and follows the match matchID. A previous
// connection is closed.
func (s *GlobalClientState) Follow(matchID string, twoPlayers bool) error {
	s.Unfollow()
	s.MatchID, s.TwoPlayers = matchID, twoPlayers
	s.Tracker = client.NewTracker(s.Identity())

	u := app.Window().URL()
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	wsURL := fmt.Sprintf("%s://%s/ws", scheme, u.Host)
	klog.Infof("Follow: Connecting to %s (Match: %s)", wsURL, matchID)

	// We use a context that lasts for the duration of the connection setup.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		klog.Errorf("Follow: Dial failed: %v", err)
		return fmt.Errorf("dial failed: %w", err)
	}
	s.Conn = conn

	joinMsg, err := game.NewWsMessage(game.MsgTypeJoin, game.JoinMessage{
		MatchID:    matchID,
		TwoPlayers: twoPlayers,
		Player:     *s.Player,
	})
	if err != nil {
		return fmt.Errorf("failed to create join message: %w", err)
	}
	if err := wsjson.Write(ctx, conn, joinMsg); err != nil {
		klog.Errorf("Follow: Failed to send join: %v", err)
		return fmt.Errorf("failed to send join: %w", err)
	}

	go s.readLoop(conn)
	return nil
}

// Unfollow closes the relay connection, which stops the polling.
func (s *GlobalClientState) Unfollow() {
	if s.Conn != nil {
		klog.Infof("Unfollow: Closing connection of match %s", s.MatchID)
		s.Conn.Close(websocket.StatusNormalClosure, "")
		s.Conn = nil
	}
	s.MatchID, s.Tracker, s.View = "", nil, nil
	s.ActionError, s.MatchGone, s.lastCall = "", false, 0
}

func (s *GlobalClientState) readLoop(conn *websocket.Conn) {
	ctx := context.Background()
	klog.Infof("readLoop: started")
	for {
		var msg game.WsMessage
		err := wsjson.Read(ctx, conn, &msg)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				klog.Errorf("readLoop: WS read error: %v", err)
			}
			break
		}
		if conn != s.Conn {
			// A newer connection replaced this one.
			return
		}
		s.handleMessage(msg)
	}
}

func (s *GlobalClientState) handleMessage(msg game.WsMessage) {
	p, err := msg.Parse()
	if err != nil {
		klog.Errorf("handleMessage: Failed to parse %s message: %v", msg.Type, err)
		return
	}
	switch m := p.(type) {
	case *game.StateMessage:
		if s.Tracker == nil {
			return
		}
		v, err := s.Tracker.Apply(&m.Game)
		s.View = v
		if err != nil {
			s.Error = err.Error()
		} else {
			s.Error = ""
			s.announceCall(v)
		}
		s.Notify()

	case *game.ErrorMessage:
		if m.Action != "" {
			s.ActionError = m.Message
		} else {
			s.Error = m.Message
		}
		s.MatchGone = s.MatchGone || m.NotFound
		s.Notify()

	default:
		klog.Warningf("handleMessage: Unexpected %s message", msg.Type)
	}
}

// announceCall plays the call sound whenever a new call waits for an answer.
func (s *GlobalClientState) announceCall(v *truco.View) {
	if v.Ladder.State == truco.PendingResponse && v.Ladder.Level > s.lastCall {
		s.PlaySound("/web/sounds/truco.mp3")
	}
	if v.Ladder.State == truco.NoCall {
		s.lastCall = 0
	} else {
		s.lastCall = v.Ladder.Level
	}
}

// SendAction checks a against the current view and sends it to the relay.
// Disabled actions are rejected here, without a request.
func (s *GlobalClientState) SendAction(a truco.Action) error {
	if s.Conn == nil || s.View == nil {
		return errors.New("not connected to a match")
	}
	if err := s.View.Actions.Validate(a); err != nil {
		s.ActionError = err.Error()
		return err
	}
	msg, err := game.NewWsMessage(game.MsgTypeAction, a.Message())
	if err != nil {
		return fmt.Errorf("failed to create action message: %w", err)
	}
	s.ActionError = ""
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
	defer cancel()
	if err := wsjson.Write(ctx, s.Conn, msg); err != nil {
		s.ActionError = err.Error()
		return fmt.Errorf("failed to send action: %w", err)
	}
	return nil
}
