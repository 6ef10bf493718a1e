package frontend

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"github.com/truco-front/truco/internal/client"
	"github.com/truco-front/truco/internal/game"
	"k8s.io/klog/v2"
)

// Login asks for a player name and registers it with the backend.
type Login struct {
	app.Compo
	ReturnURL    string
	ErrorMessage string
	submitting   bool
}

func (l *Login) OnMount(ctx app.Context) {
	klog.V(1).Infof("Login: OnMount called")
	l.parseReturnURL()
	if restorePlayer() {
		l.redirect(ctx)
	}
}

func (l *Login) OnNav(ctx app.Context) {
	klog.V(1).Infof("Login: OnNav called")
	l.parseReturnURL()
}

// restorePlayer loads the identity saved in the cookie, if it is valid.
func restorePlayer() bool {
	playerStr := getCookie(playerCookie)
	if playerStr == "" {
		return false
	}
	var p game.Player
	if err := json.Unmarshal([]byte(playerStr), &p); err != nil {
		klog.Warningf("Login: Ignoring bad player cookie: %v", err)
		return false
	}
	id, err := client.ParseID(p.ID)
	if err != nil || p.Name == "" {
		klog.Warningf("Login: Ignoring player cookie without a valid identity")
		return false
	}
	p.ID = id
	State.Player = &p
	return true
}

func (l *Login) parseReturnURL() {
	// Parse URL to find the return path, if any
	u := app.Window().URL()
	l.ReturnURL = u.Query().Get("return")
	klog.V(1).Infof("Login: parseReturnURL URL=%s, ReturnURL=%s", u.String(), l.ReturnURL)
}

func (l *Login) redirect(ctx app.Context) {
	// Only local paths, never another site.
	if strings.HasPrefix(l.ReturnURL, "/") && !strings.HasPrefix(l.ReturnURL, "//") {
		ctx.Navigate(l.ReturnURL)
	} else {
		ctx.Navigate("/")
	}
}

func (l *Login) onNameChange(ctx app.Context, e app.Event) {
	State.PendingName = ctx.JSSrc().Get("value").String()
}

func (l *Login) onLogin(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if l.submitting {
		return
	}
	name := strings.TrimSpace(State.PendingName)
	if name == "" {
		l.ErrorMessage = "Name cannot be empty."
		return
	}
	l.submitting = true
	api := State.API()
	ctx.Async(func() {
		reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		id, err := api.CreatePlayer(reqCtx, name)
		ctx.Dispatch(func(ctx app.Context) {
			l.submitting = false
			if err != nil {
				klog.Errorf("Login: CreatePlayer failed: %v", err)
				l.ErrorMessage = "Could not register this name: " + err.Error()
				return
			}
			player := game.Player{ID: id.ID, Name: id.Name}
			klog.V(1).Infof("Login registered for player: %s (ID: %s)", player.Name, player.ID)
			State.Player = &player
			playerBytes, _ := json.Marshal(player)
			setCookie(playerCookie, string(playerBytes), 30) // 30 days
			l.redirect(ctx)
		})
	})
}

func (l *Login) Render() app.UI {
	var errorUI app.UI = app.Text("")
	if l.ErrorMessage != "" {
		errorUI = app.Div().Style("color", "red").Style("margin-bottom", "1rem").Text(l.ErrorMessage)
	}

	return app.Main().Class("container").Body(
		app.Dialog().Open(true).Body(
			app.Article().Body(
				app.Header().Body(
					app.H2().Style("text-align", "center").Text("Truco"),
				),
				errorUI,
				app.Form().OnSubmit(l.onLogin).Body(
					app.Label().For("name").Text("Player name"),
					app.Input().
						Type("text").
						ID("name").
						Name("name").
						Placeholder("Enter your player name").
						Required(true).
						MaxLength(game.MaxPlayerNameLength).
						Value(State.PendingName).
						AutoComplete(false).
						OnInput(l.onNameChange),
					app.Button().Type("submit").Aria("busy", boolAttr(l.submitting)).Text("Play"),
				),
			),
		),
	)
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func getCookie(name string) string {
	document := app.Window().Get("document")
	if !document.Truthy() {
		return ""
	}
	for _, kv := range strings.Split(document.Get("cookie").String(), ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(kv), "=")
		if ok && k == name {
			v, _ = url.QueryUnescape(v)
			return v
		}
	}
	return ""
}

func setCookie(name, value string, days int) {
	document := app.Window().Get("document")
	if !document.Truthy() {
		return
	}
	expires := ""
	if days > 0 {
		t := time.Now().AddDate(0, 0, days)
		expires = "; expires=" + t.UTC().Format(time.RFC1123)
	}
	encodedValue := url.QueryEscape(value)
	document.Set("cookie", name+"="+encodedValue+expires+"; path=/")
}

func deleteCookie(name string) {
	document := app.Window().Get("document")
	if !document.Truthy() {
		return
	}
	document.Set("cookie", name+"=; expires=Thu, 01 Jan 1970 00:00:00 UTC; path=/;")
}
