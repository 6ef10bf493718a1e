package frontend

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"github.com/truco-front/truco/internal/truco"
)

// teamClass is the CSS class coloring seats and scores of team t.
func teamClass(t truco.Team) string {
	switch t {
	case truco.Us:
		return "us"
	case truco.Them:
		return "them"
	}
	return "none"
}

// cardClass lists the CSS classes of card c.
func cardClass(c truco.Card, manilha bool) string {
	classes := []string{"card"}
	switch {
	case c.Covered:
		classes = append(classes, "covered")
	case c.Suit.Red():
		classes = append(classes, "red")
	default:
		classes = append(classes, "black")
	}
	if manilha {
		classes = append(classes, "manilha")
	}
	return strings.Join(classes, " ")
}

// renderCard draws a card face, or its back when covered.
func renderCard(c truco.Card, manilha bool) app.UI {
	if c.Covered {
		return app.Div().Class(cardClass(c, false)).Title("Covered card")
	}
	return app.Div().Class(cardClass(c, manilha)).Title(c.String()).Body(
		app.Span().Class("rank").Text(c.Rank.String()),
		app.Span().Class("suit").Text(c.Suit.Symbol()),
	)
}

// resultLabel is the short caption of a trick or hand outcome.
func resultLabel(r truco.Result) string {
	if r == truco.Unset {
		return "-"
	}
	return r.String()
}

// hint explains a disabled action; enabled actions get no hint.
func hint(st truco.ActionState) string {
	if st.Enabled || st.Reason == truco.ReasonNone {
		return ""
	}
	s := string(st.Reason)
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:] + "."
}
