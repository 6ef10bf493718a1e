package frontend

import (
	"context"
	"errors"
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"github.com/truco-front/truco/internal/client"
	"github.com/truco-front/truco/internal/game"
	"github.com/truco-front/truco/internal/truco"
	"k8s.io/klog/v2"
)

// Room is the seating page of a room, before and between matches.
type Room struct {
	app.Compo
	RoomID string
	Room   *game.Room
	Error  string

	stop context.CancelFunc
}

func (r *Room) OnAppUpdate(ctx app.Context) {
	klog.Infof("Room component: App update available, reloading...")
	ctx.Reload()
}

func (r *Room) OnMount(ctx app.Context) {
	klog.Infof("Room component: OnMount called")
	State.Listeners["room"] = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
}

func (r *Room) OnDismount() {
	klog.Infof("Room component: OnDismount called")
	delete(State.Listeners, "room")
	r.stopPolling()
}

func (r *Room) OnNav(ctx app.Context) {
	klog.Infof("Room component: OnNav called")
	State.Unfollow()
	if !State.LoggedIn() && !restorePlayer() {
		ctx.Navigate(LoginPath(app.Window().URL().Path))
		return
	}

	id, ok := ParseRoomPath(app.Window().URL().Path)
	if !ok {
		r.Error = "No Room ID provided"
		klog.Errorf("Room component: Error: %s", r.Error)
		return
	}
	if id != r.RoomID {
		r.RoomID, r.Room, r.Error = id, nil, ""
		r.stopPolling()
	}
	r.startPolling(ctx)
}

func (r *Room) startPolling(ctx app.Context) {
	if r.stop != nil || app.IsServer {
		return
	}
	pollCtx, stop := context.WithCancel(context.Background())
	r.stop = stop
	api, roomID := State.API(), r.RoomID
	p := &client.Poller[*game.Room]{
		Interval: PollInterval(),
		Fetch: func(ctx context.Context) (*game.Room, error) {
			return api.Room(ctx, roomID)
		},
		OnFetch: func(room *game.Room) {
			ctx.Dispatch(func(ctx app.Context) {
				r.Room, r.Error = room, ""
				if room.GameUUID != "" {
					ctx.Navigate(MatchPath(room.GameUUID, room.IsTwoPlayers))
				}
			})
		},
		OnError: func(err error) {
			ctx.Dispatch(func(ctx app.Context) {
				if errors.Is(err, client.ErrMatchNotFound) {
					r.Error = "This room does not exist anymore."
					return
				}
				State.Error = "Failed to load room: " + err.Error()
			})
		},
	}
	go p.Run(pollCtx)
}

func (r *Room) stopPolling() {
	if r.stop != nil {
		r.stop()
		r.stop = nil
	}
}

// do runs a room request and reports its failure.
func (r *Room) do(ctx app.Context, what string, req func(context.Context, *client.Client) error, then func(ctx app.Context)) {
	api := State.API()
	ctx.Async(func() {
		err := req(context.Background(), api)
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				klog.Errorf("Room component: %s failed: %v", what, err)
				State.Error = fmt.Sprintf("Failed to %s: %v", what, err)
				return
			}
			State.Error = ""
			if then != nil {
				then(ctx)
			}
		})
	})
}

func (r *Room) onSit(seat truco.Seat) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		roomID := r.RoomID
		r.do(ctx, "change chair", func(c context.Context, api *client.Client) error {
			return api.ChangeChair(c, roomID, seat)
		}, nil)
	}
}

func (r *Room) onLeave(ctx app.Context, e app.Event) {
	roomID := r.RoomID
	r.do(ctx, "leave room", func(c context.Context, api *client.Client) error {
		return api.LeaveRoom(c, roomID)
	}, func(ctx app.Context) { ctx.Navigate("/") })
}

func (r *Room) onCopyURL(ctx app.Context, e app.Event) {
	url := app.Window().URL().String()
	app.Window().Get("navigator").Get("clipboard").Call("writeText", url)
	app.Window().Call("alert", "URL copied to clipboard!")
}

func (r *Room) renderChairs(mode truco.Mode, seats truco.Seats, mine truco.Seat) app.UI {
	var chairs []app.UI
	for seat := truco.SeatA; seat <= truco.SeatD; seat++ {
		if !mode.Active(seat) {
			continue
		}
		name := seats.Player(seat)
		var body app.UI
		switch {
		case name == "":
			body = app.Button().Class("outline").Text("Sit here").OnClick(r.onSit(seat))
		case seat == mine:
			body = app.Strong().Text(name + " (you)")
		default:
			body = app.Span().Text(name)
		}
		chairs = append(chairs, app.Article().Class("chair", "team-"+teamClass(truco.TeamOf(seat))).Body(
			app.Header().Text(fmt.Sprintf("Chair %s · team %s", seat, truco.TeamOf(seat))),
			body,
		))
	}
	return app.Div().Class("grid").Body(chairs...)
}

func (r *Room) Render() app.UI {
	if !State.LoggedIn() {
		return app.Main().Class("container").Body(
			app.Div().Aria("busy", "true").Text("Redirecting to login..."),
		)
	}

	if r.Error != "" {
		return app.Main().Class("container").Body(
			app.Article().Body(
				app.H2().Text("Room Closed"),
				app.P().Style("color", "red").Text(r.Error),
				app.A().Href("/").Text("Return to Lobby"),
			),
		)
	}

	var content app.UI
	if r.Room == nil {
		content = app.Div().Aria("busy", "true").Text("Loading room...")
	} else {
		mode := truco.FourPlayers
		if r.Room.IsTwoPlayers {
			mode = truco.TwoPlayers
		}
		seats := truco.SeatsFromChairs(r.Room.Chairs)
		mine, err := seats.SeatOf(State.Player.Name)
		seated := err == nil && mode.Active(mine)

		content = app.Div().Body(
			app.Div().Class("grid").Body(
				app.Div().Body(
					app.H3().Text(r.Room.Name),
					app.P().Text(fmt.Sprintf("Owner: %s · %d players · %s", r.Room.Owner.Name, r.Room.PlayersCount, mode)),
					app.Div().Style("display", "flex").Style("gap", "0.5rem").Body(
						app.Button().Class("secondary").Text("Copy URL").OnClick(r.onCopyURL),
						app.Button().Class("outline contrast").Text("Leave Room").OnClick(r.onLeave),
					),
				),
			),
			r.renderChairs(mode, seats, mine),
			app.P().Text("Waiting for the owner to start the match..."),
			&Chat{RoomID: r.RoomID, Messages: r.Room.Messages, CanSend: seated},
		)
	}

	return app.Main().Class("container").Body(
		&TopBar{},
		ErrorBanner(),
		content,
	)
}
