package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/truco-front/truco/internal/game"
	"github.com/truco-front/truco/internal/truco"
)

func gamePath(matchID string, twoPlayers bool, action string) string {
	base := "/games/"
	if twoPlayers {
		base = "/gamesx2/"
	}
	p := base + url.PathEscape(matchID)
	if action != "" {
		p += "/" + action
	}
	return p
}

// FetchGame fetches the current document of a match. It returns
// ErrMatchNotFound once the match is gone.
func (c *Client) FetchGame(ctx context.Context, matchID string, twoPlayers bool) (*game.Details, error) {
	d := &game.Details{}
	if err := c.do(ctx, http.MethodGet, gamePath(matchID, twoPlayers, ""), nil, d); err != nil {
		return nil, err
	}
	return d, nil
}

// PlayMove plays card, face down if coverUp.
func (c *Client) PlayMove(ctx context.Context, matchID string, twoPlayers bool, card string, coverUp bool) error {
	req := game.PlayMoveRequest{Card: &card, Coverup: &coverUp}
	return c.do(ctx, http.MethodPost, gamePath(matchID, twoPlayers, "play_move"), req, nil)
}

// Call raises the wager to level.
func (c *Client) Call(ctx context.Context, matchID string, twoPlayers bool, level int) error {
	return c.do(ctx, http.MethodPost, gamePath(matchID, twoPlayers, "call"), game.CallRequest{Call: &level}, nil)
}

// Respond accepts or declines the pending call.
func (c *Client) Respond(ctx context.Context, matchID string, twoPlayers bool, accept bool) error {
	return c.do(ctx, http.MethodPost, gamePath(matchID, twoPlayers, "call"), game.CallRequest{Accept: &accept}, nil)
}

// Collect clears the table.
func (c *Client) Collect(ctx context.Context, matchID string, twoPlayers bool) error {
	return c.do(ctx, http.MethodPost, gamePath(matchID, twoPlayers, "collect"), game.CollectRequest{Collect: true}, nil)
}

// Escape forfeits the hand.
func (c *Client) Escape(ctx context.Context, matchID string, twoPlayers bool) error {
	return c.do(ctx, http.MethodPost, gamePath(matchID, twoPlayers, "escape"), game.EscapeRequest{}, nil)
}

// Submit sends a single action. It is never retried.
func (c *Client) Submit(ctx context.Context, matchID string, twoPlayers bool, a truco.Action) error {
	switch a.Kind {
	case game.ActionPlayCard:
		return c.PlayMove(ctx, matchID, twoPlayers, a.Card, a.CoverUp)
	case game.ActionCall:
		return c.Call(ctx, matchID, twoPlayers, a.Level)
	case game.ActionRespond:
		return c.Respond(ctx, matchID, twoPlayers, a.Accept)
	case game.ActionCollect:
		return c.Collect(ctx, matchID, twoPlayers)
	case game.ActionEscape:
		return c.Escape(ctx, matchID, twoPlayers)
	}
	return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, a.Kind)
}
