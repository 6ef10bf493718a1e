package frontend

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

type TopBar struct {
	app.Compo
	ShowLogout bool
}

func (t *TopBar) onToggleSound(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.ToggleSound()
}

func (t *TopBar) onLogout(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.Logout()
	ctx.Navigate("/")
}

func (t *TopBar) onBannerClick(ctx app.Context, e app.Event) {
	ctx.Navigate("/")
}

func (t *TopBar) Render() app.UI {
	soundIcon := "🔊"
	if !State.SoundEnabled {
		soundIcon = "🔇"
	}

	actions := []app.UI{
		app.Li().Body(
			app.A().
				Href("#").
				OnClick(t.onToggleSound).
				Style("text-decoration", "none").
				Body(
					app.Span().
						Class("sound-icon").
						Style("font-family", "system-ui").
						Text(soundIcon),
				),
		),
		app.Li().Body(
			app.Strong().Text(State.Player.Name),
		),
	}

	if t.ShowLogout {
		actions = append(actions, app.Li().Body(app.A().Href("#").OnClick(t.onLogout).Text("Logout")))
	}

	return app.Nav().Body(
		app.Ul().Body(
			app.Li().Body(
				app.Strong().
					Class("brand").
					Style("cursor", "pointer").
					OnClick(t.onBannerClick).
					Text("🂡 Truco"),
			),
		),
		app.Ul().Body(actions...),
	)
}

// ErrorBanner shows State.Error, if any.
func ErrorBanner() app.UI {
	if State.Error == "" {
		return app.Text("")
	}
	return app.Div().Class("error-banner").Attr("role", "alert").Style("color", "red").Text(State.Error)
}
