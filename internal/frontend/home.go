package frontend

import (
	"context"
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"github.com/truco-front/truco/internal/client"
	"github.com/truco-front/truco/internal/game"
	"k8s.io/klog/v2"
)

// Home is the landing page: the login popup, or the lobby with the open
// rooms once logged in.
type Home struct {
	app.Compo
	RoomName string
	Rooms    []game.Room
	loaded   bool
	login    *Login
	stop     context.CancelFunc
}

func (h *Home) OnMount(ctx app.Context) {
	klog.V(1).Infof("Home: OnMount called")
	h.login = &Login{}
	State.Listeners["home"] = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
	if !State.LoggedIn() {
		restorePlayer()
	}
	h.startPolling(ctx)
}

func (h *Home) OnDismount() {
	delete(State.Listeners, "home")
	h.stopPolling()
}

func (h *Home) OnNav(ctx app.Context) {
	klog.V(1).Infof("Home: OnNav called, Path=%s", app.Window().URL().Path)
	State.Unfollow()
	if h.login != nil {
		h.login.OnNav(ctx)
	}
	h.startPolling(ctx)
}

func (h *Home) startPolling(ctx app.Context) {
	if h.stop != nil || !State.LoggedIn() || app.IsServer {
		return
	}
	pollCtx, stop := context.WithCancel(context.Background())
	h.stop = stop
	api := State.API()
	p := &client.Poller[[]game.Room]{
		Interval: PollInterval() * 5,
		Fetch:    api.Rooms,
		OnFetch: func(rooms []game.Room) {
			ctx.Dispatch(func(ctx app.Context) {
				h.Rooms, h.loaded = rooms, true
			})
		},
		OnError: func(err error) {
			ctx.Dispatch(func(ctx app.Context) {
				State.Error = "Failed to list rooms: " + err.Error()
			})
		},
	}
	go p.Run(pollCtx)
}

func (h *Home) stopPolling() {
	if h.stop != nil {
		h.stop()
		h.stop = nil
	}
}

func (h *Home) onRoomNameChange(ctx app.Context, e app.Event) {
	h.RoomName = ctx.JSSrc().Get("value").String()
}

func (h *Home) onCreateRoom(ctx app.Context, e app.Event) {
	e.PreventDefault()
	name := h.RoomName
	if name == "" {
		name = fmt.Sprintf("Mesa de %s", State.Player.Name)
	}
	api := State.API()
	ctx.Async(func() {
		room, err := api.CreateRoom(context.Background(), name)
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				State.Error = "Failed to create room: " + err.Error()
				return
			}
			State.Error = ""
			ctx.Navigate(RoomPath(room.UUID))
		})
	})
}

func (h *Home) onJoin(roomID string) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		e.PreventDefault()
		api := State.API()
		ctx.Async(func() {
			err := api.JoinRoom(context.Background(), roomID)
			ctx.Dispatch(func(ctx app.Context) {
				if err != nil {
					State.Error = "Failed to join room: " + err.Error()
					return
				}
				State.Error = ""
				ctx.Navigate(RoomPath(roomID))
			})
		})
	}
}

func (h *Home) OnAppUpdate(ctx app.Context) {
	klog.Infof("Home component: App update available, reloading...")
	ctx.Reload()
}

func (h *Home) renderRooms() app.UI {
	if !h.loaded {
		return app.Div().Aria("busy", "true").Text("Loading rooms...")
	}
	if len(h.Rooms) == 0 {
		return app.P().Text("No open rooms yet. Create one!")
	}
	rows := make([]app.UI, 0, len(h.Rooms))
	for _, r := range h.Rooms {
		mode := "4 players"
		if r.IsTwoPlayers {
			mode = "2 players"
		}
		lock := ""
		if r.Protected {
			lock = " 🔒"
		}
		rows = append(rows, app.Tr().Body(
			app.Td().Text(r.Name+lock),
			app.Td().Text(r.Owner.Name),
			app.Td().Text(mode),
			app.Td().Text(fmt.Sprintf("%d", r.PlayersCount)),
			app.Td().Body(
				app.A().Href(RoomPath(r.UUID)).OnClick(h.onJoin(r.UUID)).Text("Join"),
			),
		))
	}
	return app.Table().Class("striped").Body(
		app.THead().Body(app.Tr().Body(
			app.Th().Text("Room"),
			app.Th().Text("Owner"),
			app.Th().Text("Mode"),
			app.Th().Text("Players"),
			app.Th(),
		)),
		app.TBody().Body(rows...),
	)
}

func (h *Home) Render() app.UI {
	if !State.LoggedIn() {
		// Render login instead
		if h.login == nil {
			h.login = &Login{}
		}
		return h.login
	}

	return app.Main().Class("container").Body(
		&TopBar{ShowLogout: true},
		ErrorBanner(),
		app.Article().Body(
			app.Header().Body(
				app.H2().Text("Create a Room"),
			),
			app.Form().OnSubmit(h.onCreateRoom).Body(
				app.Label().For("roomName").Text("Room Name"),
				app.Input().
					Type("text").
					ID("roomName").
					Name("roomName").
					Placeholder("e.g. Truco de sexta").
					Value(h.RoomName).
					OnInput(h.onRoomNameChange),
				app.Button().Type("submit").Text("Create Room"),
			),
		),
		app.Article().Body(
			app.Header().Text("Open Rooms"),
			h.renderRooms(),
		),
	)
}
