package frontend

import (
	"net/url"
	"strings"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// Path prefixes of the pages.
const (
	roomPrefix      = "/room/"
	gamePrefix      = "/game/"
	gameTwoPrefix   = "/gamex2/"
	loginReturnPath = "/?return="
)

// Routes registers the pages. It must be called by both the WASM binary and
// the server, which prerenders them.
func Routes() {
	// Root route handles both Login and Lobby page logic
	app.Route("/", func() app.Composer { return &Home{} })
	app.RouteWithRegexp("^/room/.*", func() app.Composer { return &Room{} })
	app.RouteWithRegexp("^/game/.*", func() app.Composer { return &Game{} })
	app.RouteWithRegexp("^/gamex2/.*", func() app.Composer { return &Game{} })
}

// RoomPath is the page of a room.
func RoomPath(roomID string) string {
	return roomPrefix + url.PathEscape(roomID)
}

// MatchPath is the page of a match; two-player matches have their own route.
func MatchPath(matchID string, twoPlayers bool) string {
	if twoPlayers {
		return gameTwoPrefix + url.PathEscape(matchID)
	}
	return gamePrefix + url.PathEscape(matchID)
}

// LoginPath sends to the login page, coming back to path afterwards.
func LoginPath(path string) string {
	return loginReturnPath + url.QueryEscape(path)
}

// ParseMatchPath extracts the match id and mode from a match page path.
func ParseMatchPath(path string) (matchID string, twoPlayers bool, ok bool) {
	switch {
	case strings.HasPrefix(path, gameTwoPrefix):
		matchID, twoPlayers = strings.TrimPrefix(path, gameTwoPrefix), true
	case strings.HasPrefix(path, gamePrefix):
		matchID = strings.TrimPrefix(path, gamePrefix)
	default:
		return "", false, false
	}
	matchID, ok = unescapeID(matchID)
	return matchID, twoPlayers && ok, ok
}

// ParseRoomPath extracts the room id from a room page path.
func ParseRoomPath(path string) (string, bool) {
	if !strings.HasPrefix(path, roomPrefix) {
		return "", false
	}
	return unescapeID(strings.TrimPrefix(path, roomPrefix))
}

func unescapeID(s string) (string, bool) {
	s, _, _ = strings.Cut(s, "/")
	id, err := url.PathUnescape(s)
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}
