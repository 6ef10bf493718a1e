package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/truco-front/truco/internal/client"
	"github.com/truco-front/truco/internal/game"
	"github.com/truco-front/truco/internal/truco"
	"k8s.io/klog/v2"
)

const writeTimeout = 5 * time.Second

// relay follows one match on behalf of one browser connection.
type relay struct {
	conn *websocket.Conn

	mu         sync.Mutex
	matchID    string
	twoPlayers bool
	backend    *client.Client
	tracker    *client.Tracker
	stop       context.CancelFunc
}

// HandleWS accepts a browser connection. The browser sends a join message
// to pick the match it follows, then action messages; the relay pushes a
// state message for every good snapshot and an error message for every
// failed poll or action.
func (s *State) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		klog.Errorf("Failed to accept websocket: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	rl := &relay{conn: conn}
	s.mu.Lock()
	s.relays[rl] = struct{}{}
	s.mu.Unlock()
	defer func() {
		rl.unfollow()
		s.mu.Lock()
		delete(s.relays, rl)
		s.mu.Unlock()
	}()

	for {
		var msg game.WsMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
				klog.V(1).Infof("Relay connection closed")
			} else {
				klog.Warningf("Relay read failed: %v", err)
			}
			return
		}

		p, err := msg.Parse()
		if err != nil {
			klog.Warningf("Relay got bad %q message: %v", msg.Type, err)
			rl.sendError(ctx, game.ErrorMessage{Message: err.Error()})
			continue
		}
		switch m := p.(type) {
		case *game.JoinMessage:
			if err := s.follow(ctx, rl, m); err != nil {
				rl.sendError(ctx, game.ErrorMessage{Message: err.Error()})
			}
		case *game.ActionMessage:
			rl.submit(ctx, truco.ActionFromMessage(*m))
		default:
			klog.Warningf("Relay ignores %q message", msg.Type)
		}
	}
}

// follow starts polling the match of m, replacing any match followed so
// far on this connection.
func (s *State) follow(ctx context.Context, rl *relay, m *game.JoinMessage) error {
	if m.MatchID == "" || m.Player.Name == "" {
		return fmt.Errorf("%w: join needs a match id and a player name", client.ErrInvalidInput)
	}
	id := truco.Identity{Name: m.Player.Name, ID: m.Player.ID}
	backend := s.backend.WithIdentity(id)
	tracker := client.NewTracker(id)

	rl.unfollow()
	pollCtx, stop := context.WithCancel(ctx)
	rl.mu.Lock()
	rl.matchID, rl.twoPlayers = m.MatchID, m.TwoPlayers
	rl.backend, rl.tracker, rl.stop = backend, tracker, stop
	rl.mu.Unlock()

	klog.Infof("Player %q follows match %q (%s)", id.Name, m.MatchID, modeName(m.TwoPlayers))
	p := &client.Poller[*game.Details]{
		Interval: s.cfg.PollInterval,
		Fetch: func(ctx context.Context) (*game.Details, error) {
			return backend.FetchGame(ctx, m.MatchID, m.TwoPlayers)
		},
		OnFetch: func(d *game.Details) {
			if _, err := tracker.Apply(d); err != nil {
				rl.sendError(pollCtx, game.ErrorMessage{Message: err.Error()})
				return
			}
			rl.send(pollCtx, game.MsgTypeState, game.StateMessage{Game: *d})
		},
		OnError: func(err error) {
			tracker.Fail(err)
			rl.sendError(pollCtx, game.ErrorMessage{
				Message:  err.Error(),
				NotFound: errors.Is(err, client.ErrMatchNotFound),
			})
		},
	}
	go func() {
		err := p.Run(pollCtx)
		klog.V(1).Infof("Stopped following match %q: %v", m.MatchID, err)
	}()
	return nil
}

func (rl *relay) unfollow() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.stop != nil {
		rl.stop()
		rl.stop = nil
	}
}

// submit validates a against the last view and sends it to the backend
// once. Failures are reported back and never retried.
func (rl *relay) submit(ctx context.Context, a truco.Action) {
	rl.mu.Lock()
	matchID, twoPlayers, backend, tracker := rl.matchID, rl.twoPlayers, rl.backend, rl.tracker
	rl.mu.Unlock()

	fail := func(err error) {
		klog.Warningf("Action %s on match %q rejected: %v", a.Kind, matchID, err)
		rl.sendError(ctx, game.ErrorMessage{Message: err.Error(), Action: a.Kind, NotFound: errors.Is(err, client.ErrMatchNotFound)})
	}
	if tracker == nil {
		fail(fmt.Errorf("%w: not following any match", truco.ErrInvalidTransition))
		return
	}
	if err := tracker.Validate(a); err != nil {
		fail(err)
		return
	}
	if err := backend.Submit(ctx, matchID, twoPlayers, a); err != nil {
		fail(err)
		return
	}
	klog.V(1).Infof("Action %s submitted to match %q", a.Kind, matchID)
}

func (rl *relay) send(ctx context.Context, t game.MessageType, payload any) {
	msg, err := game.NewWsMessage(t, payload)
	if err != nil {
		klog.Errorf("Failed to create %q message: %v", t, err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, rl.conn, msg); err != nil && ctx.Err() == nil {
		klog.Warningf("Failed to send %q message: %v", t, err)
	}
}

func (rl *relay) sendError(ctx context.Context, m game.ErrorMessage) {
	rl.send(ctx, game.MsgTypeError, m)
}

func modeName(twoPlayers bool) string {
	if twoPlayers {
		return truco.TwoPlayers.String()
	}
	return truco.FourPlayers.String()
}
