package frontend

import (
	"fmt"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"github.com/truco-front/truco/internal/truco"
	"k8s.io/klog/v2"
)

// ReturnDelay is how long the final banner stays up before going back to
// the room.
const ReturnDelay = 5 * time.Second

// Game is the table of a running match.
type Game struct {
	app.Compo
	MatchID    string
	TwoPlayers bool
	View       *truco.View
	Error      string

	coverUp   bool
	pending   bool
	returning *time.Timer
}

func (g *Game) OnAppUpdate(ctx app.Context) {
	klog.Infof("Game component: App update available, not reloading not to interrupt the match...")
}

func (g *Game) OnMount(ctx app.Context) {
	klog.Infof("Game component: OnMount called")
	State.Listeners["game"] = func() {
		ctx.Dispatch(func(ctx app.Context) {
			if State.View != g.View || State.ActionError != "" {
				// A new snapshot or a rejection answers whatever was submitted.
				g.pending = false
			}
			g.View = State.View
			g.coverUp = playCovered(g.coverUp, g.View)
			g.followView(ctx)
		})
	}
}

func (g *Game) OnDismount() {
	klog.Infof("Game component: OnDismount called")
	delete(State.Listeners, "game")
	if g.returning != nil {
		g.returning.Stop()
		g.returning = nil
	}
	State.Unfollow()
}

func (g *Game) OnNav(ctx app.Context) {
	klog.Infof("Game component: OnNav called")
	path := app.Window().URL().Path
	if !State.LoggedIn() && !restorePlayer() {
		ctx.Navigate(LoginPath(path))
		return
	}

	id, twoPlayers, ok := ParseMatchPath(path)
	if !ok {
		g.Error = "No Match ID provided"
		klog.Errorf("Game component: Error: %s", g.Error)
		return
	}
	if app.IsServer {
		return
	}
	g.MatchID, g.TwoPlayers, g.Error = id, twoPlayers, ""
	if State.Conn != nil && State.MatchID == id && State.TwoPlayers == twoPlayers {
		g.View = State.View
		return
	}
	g.View, g.pending = nil, false
	if err := State.Follow(id, twoPlayers); err != nil {
		g.Error = fmt.Sprintf("Failed to connect to match: %v", err)
		klog.Errorf("Game component: Error connecting: %v", err)
	}
}

// followView navigates away when the view says this page is the wrong one:
// the match is gone, it runs in the other mode, or it is over.
func (g *Game) followView(ctx app.Context) {
	if State.MatchGone {
		State.Error = "The match no longer exists."
		ctx.Navigate("/")
		return
	}
	v := g.View
	if v == nil {
		return
	}
	if twoPlayers := v.Mode == truco.TwoPlayers; twoPlayers != g.TwoPlayers {
		klog.Infof("Game component: match %s is %s, switching page", v.MatchID, v.Mode)
		ctx.Navigate(MatchPath(g.MatchID, twoPlayers))
		return
	}
	if returnsToRoom(v) && g.returning == nil {
		roomID := v.RoomID
		g.returning = time.AfterFunc(ReturnDelay, func() {
			ctx.Dispatch(func(ctx app.Context) {
				ctx.Navigate(RoomPath(roomID))
			})
		})
	}
}

// returnsToRoom reports whether the viewer goes back to the room once the
// match in v is over. Spectators stay on the final table.
func returnsToRoom(v *truco.View) bool {
	return v.MatchWinner != truco.Unset && !v.Spectator && v.RoomID != ""
}

// playCovered is whether a card played now goes face down: only while v
// still allows covering.
func playCovered(want bool, v *truco.View) bool {
	return want && v != nil && v.Actions.CoverUp.Enabled
}

func (g *Game) send(a truco.Action) {
	if g.pending {
		return
	}
	if err := State.SendAction(a); err != nil {
		klog.Warningf("Game component: %s not sent: %v", a.Kind, err)
		return
	}
	g.pending = true
}

func (g *Game) onPlay(code string) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		e.PreventDefault()
		g.send(truco.PlayCard(code, playCovered(g.coverUp, g.View)))
		g.coverUp = false
	}
}

func (g *Game) onCoverUp(ctx app.Context, e app.Event) {
	g.coverUp = ctx.JSSrc().Get("checked").Bool()
}

func (g *Game) onCall(ctx app.Context, e app.Event) {
	e.PreventDefault()
	g.send(truco.CallTruco(g.View.Actions.CallLevel))
}

func (g *Game) onRespond(accept bool) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		e.PreventDefault()
		g.send(truco.Respond(accept))
	}
}

func (g *Game) onCollect(ctx app.Context, e app.Event) {
	e.PreventDefault()
	g.send(truco.Collect())
}

func (g *Game) onEscape(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if !app.Window().Call("confirm", "Give up this hand?").Bool() {
		return
	}
	g.send(truco.Escape())
}

func (g *Game) renderScoreboard(v *truco.View) app.UI {
	stake := fmt.Sprintf("Hand worth %d", v.Stake)
	if v.Ladder.State == truco.PendingResponse {
		stake += fmt.Sprintf(" (%s called)", truco.CallLabel(v.Ladder.Level))
	}
	return app.Header().Class("scoreboard").Body(
		app.Div().Class("score", teamClass(truco.Us)).Body(
			app.Small().Text(truco.Us.String()),
			app.Strong().Text(fmt.Sprintf("%d", v.ScoreUs)),
		),
		app.Div().Class("hand-info").Body(
			app.Div().Text(fmt.Sprintf("%s · round %d", v.RoomName, v.Round)),
			app.Small().Text(stake),
			app.Small().Text(fmt.Sprintf("1st %s · 2nd %s · hand %s",
				resultLabel(v.FirstTrick), resultLabel(v.SecondTrick), resultLabel(v.HandWinner))),
		),
		app.Div().Class("score", teamClass(truco.Them)).Body(
			app.Small().Text(truco.Them.String()),
			app.Strong().Text(fmt.Sprintf("%d", v.ScoreThem)),
		),
	)
}

func (g *Game) renderSeat(s truco.SeatView) app.UI {
	classes := []string{"seat", "seat-" + s.Position.String(), teamClass(s.Team)}
	if s.CurrentTurn {
		classes = append(classes, "turn")
	}
	name := s.Player
	if name == "" {
		name = "(empty)"
	}
	if s.IsViewer {
		name += " (you)"
	}
	badges := []app.UI{app.Strong().Text(name)}
	if s.CallLabel != "" {
		badges = append(badges, app.Mark().Class("call-badge").Text(s.CallLabel))
	}
	if s.Answered {
		answer := "NÃO"
		if s.Accepted {
			answer = "QUERO"
		}
		badges = append(badges, app.Small().Class("answer-badge").Text(answer))
	}
	return app.Div().Class(classes...).Body(badges...)
}

func (g *Game) renderTable(v *truco.View) app.UI {
	cards := make([]app.UI, 0, len(v.Table))
	for _, pc := range v.Table {
		manilha := v.HasTurned && !pc.Card.Covered && pc.Card.IsManilha(v.Turned)
		cards = append(cards, app.Div().Class("slot", "slot-"+string(pc.Slot), teamClass(pc.Team)).Body(
			renderCard(pc.Card, manilha),
		))
	}
	var vira app.UI = app.Text("")
	if v.HasTurned {
		vira = app.Div().Class("vira").Title("Manilha: "+v.Manilha.String()).Body(
			renderCard(v.Turned, false),
			app.Small().Text("Manilha "+v.Manilha.String()),
		)
	}
	return app.Div().Class("felt").Body(
		vira,
		app.Div().Class("trick").Body(cards...),
	)
}

func (g *Game) renderHand(v *truco.View) app.UI {
	if v.Spectator {
		return app.P().Class("spectator").Text("You are watching this match.")
	}
	playable := make(map[string]bool, len(v.Actions.Cards))
	for _, code := range v.Actions.Cards {
		playable[code] = true
	}
	cards := make([]app.UI, 0, len(v.Hand))
	for _, hc := range v.Hand {
		code := hc.Card.String()
		enabled := v.Actions.Play.Enabled && playable[code] && !g.pending
		title := hint(v.Actions.Play)
		if v.Actions.Play.Enabled && !playable[code] {
			title = hint(truco.ActionState{Reason: truco.ReasonNotInHand})
		}
		cards = append(cards, app.Button().
			Class("hand-card").
			Disabled(!enabled).
			Title(title).
			OnClick(g.onPlay(code)).
			Body(renderCard(hc.Card, hc.Manilha)))
	}
	return app.Div().Class("hand").Body(
		app.Div().Class("hand-cards").Body(cards...),
		app.Label().Title(hint(v.Actions.CoverUp)).Body(
			app.Input().
				Type("checkbox").
				Checked(playCovered(g.coverUp, v)).
				Disabled(!v.Actions.CoverUp.Enabled).
				OnChange(g.onCoverUp),
			app.Text("Play covered"),
		),
	)
}

func (g *Game) actionButton(label string, st truco.ActionState, h app.EventHandler) app.UI {
	return app.Button().
		Disabled(!st.Enabled || g.pending).
		Title(hint(st)).
		OnClick(h).
		Text(label)
}

func (g *Game) renderActions(v *truco.View) app.UI {
	if v.Spectator {
		return app.Text("")
	}
	a := v.Actions
	callLabel := a.CallLabel
	if callLabel == "" {
		callLabel = truco.CallLabel(truco.MaxLevel)
	}
	var errUI app.UI = app.Text("")
	if State.ActionError != "" {
		errUI = app.Small().Class("action-error").Attr("role", "alert").Style("color", "red").Text(State.ActionError)
	}
	return app.Div().Class("actions").Body(
		app.Div().Attr("role", "group").Body(
			g.actionButton(callLabel+"!", a.Call, g.onCall),
			g.actionButton("QUERO", a.Accept, g.onRespond(true)),
			g.actionButton("NÃO QUERO", a.Decline, g.onRespond(false)),
			g.actionButton("Collect", a.Collect, g.onCollect),
			g.actionButton("Escape", a.Escape, g.onEscape),
		),
		errUI,
	)
}

func (g *Game) Render() app.UI {
	if !State.LoggedIn() {
		return app.Main().Class("container").Body(
			app.Div().Aria("busy", "true").Text("Redirecting to login..."),
		)
	}

	if g.Error != "" {
		return app.Main().Class("container").Body(
			app.Article().Body(
				app.H2().Text("Match Error"),
				app.P().Style("color", "red").Text(g.Error),
				app.A().Href("#").OnClick(func(ctx app.Context, e app.Event) {
					State.Error = ""
					ctx.Navigate("/")
				}).Text("Return to Home"),
			),
		)
	}

	v := g.View
	if v == nil {
		return app.Main().Class("container").Body(
			&TopBar{},
			ErrorBanner(),
			app.Div().Aria("busy", "true").Text("Connecting to match..."),
		)
	}

	seats := make([]app.UI, 0, len(v.Seats))
	for _, s := range v.Seats {
		seats = append(seats, g.renderSeat(s))
	}
	var banner app.UI = app.Text("")
	if v.Banner != "" {
		banner = app.Div().Class("banner").Text(v.Banner)
	}
	var chat app.UI = app.Text("")
	if v.ShowChat {
		chat = &Chat{RoomID: v.RoomID, Messages: v.Messages, CanSend: v.CanChat}
	}

	return app.Main().Class("container").Body(
		&TopBar{},
		ErrorBanner(),
		g.renderScoreboard(v),
		banner,
		app.P().Class("status").Text(v.Status),
		app.Div().Class("table", "mode-"+v.Mode.String()).Body(
			app.Div().Class("seats").Body(seats...),
			g.renderTable(v),
		),
		g.renderHand(v),
		g.renderActions(v),
		chat,
	)
}
