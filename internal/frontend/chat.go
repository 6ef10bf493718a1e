package frontend

import (
	"context"
	"sort"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"github.com/truco-front/truco/internal/game"
	"k8s.io/klog/v2"
)

// Chat shows the room messages, oldest first, and lets seated players post.
type Chat struct {
	app.Compo
	RoomID   string
	Messages []game.ChatMessage
	CanSend  bool

	draft   string
	sending bool
	err     string
}

// sortedMessages orders messages by creation date. Dates are ISO 8601, so
// they sort as strings.
func sortedMessages(msgs []game.ChatMessage) []game.ChatMessage {
	sorted := append([]game.ChatMessage(nil), msgs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateCreated < sorted[j].DateCreated
	})
	return sorted
}

func (c *Chat) onInput(ctx app.Context, e app.Event) {
	c.draft = ctx.JSSrc().Get("value").String()
}

func (c *Chat) onSend(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if c.sending || c.RoomID == "" {
		return
	}
	content, roomID := c.draft, c.RoomID
	c.sending = true
	api := State.API()
	ctx.Async(func() {
		err := api.SendMessage(context.Background(), roomID, content)
		ctx.Dispatch(func(ctx app.Context) {
			c.sending = false
			if err != nil {
				klog.Errorf("Chat: SendMessage failed: %v", err)
				c.err = "Failed to send message"
				return
			}
			c.err, c.draft = "", ""
		})
	})
}

func (c *Chat) Render() app.UI {
	items := make([]app.UI, 0, len(c.Messages))
	for _, m := range sortedMessages(c.Messages) {
		class := "chat-message"
		if m.PlayerName == State.Player.Name {
			class += " own"
		}
		items = append(items, app.Li().Class(class).Body(
			app.Strong().Text(m.PlayerName+": "),
			app.Span().Text(m.Content),
		))
	}

	var form app.UI = app.Small().Text("Only seated players can chat.")
	if c.CanSend {
		var errUI app.UI = app.Text("")
		if c.err != "" {
			errUI = app.Small().Style("color", "red").Text(c.err)
		}
		form = app.Form().OnSubmit(c.onSend).Body(
			app.Input().
				Type("text").
				Placeholder("Message").
				MaxLength(game.MaxChatMessageLength).
				Value(c.draft).
				OnInput(c.onInput),
			errUI,
		)
	}

	return app.Aside().Class("chat").Body(
		app.Header().Text("Chat"),
		app.Ul().Class("chat-messages-container").Body(items...),
		form,
	)
}
