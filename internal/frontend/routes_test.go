package frontend

import (
	"testing"

	"github.com/truco-front/truco/internal/game"
	"github.com/truco-front/truco/internal/truco"
)

func TestParseMatchPath(t *testing.T) {
	tests := []struct {
		path       string
		id         string
		twoPlayers bool
		ok         bool
	}{
		{"/game/abc", "abc", false, true},
		{"/gamex2/abc", "abc", true, true},
		{"/game/a%20b/extra", "a b", false, true},
		{"/gamex2/", "", false, false},
		{"/game/", "", false, false},
		{"/room/abc", "", false, false},
		{"/", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			id, twoPlayers, ok := ParseMatchPath(tt.path)
			if id != tt.id || twoPlayers != tt.twoPlayers || ok != tt.ok {
				t.Errorf("ParseMatchPath(%q) = (%q, %v, %v), want (%q, %v, %v)",
					tt.path, id, twoPlayers, ok, tt.id, tt.twoPlayers, tt.ok)
			}
		})
	}
}

func TestMatchPathRoundTrip(t *testing.T) {
	for _, twoPlayers := range []bool{false, true} {
		path := MatchPath("m 1", twoPlayers)
		id, gotTwo, ok := ParseMatchPath(path)
		if !ok || id != "m 1" || gotTwo != twoPlayers {
			t.Errorf("ParseMatchPath(%q) = (%q, %v, %v)", path, id, gotTwo, ok)
		}
	}
	if got := MatchPath("m", true); got != "/gamex2/m" {
		t.Errorf("MatchPath two players = %q", got)
	}
}

func TestParseRoomPath(t *testing.T) {
	if id, ok := ParseRoomPath(RoomPath("room-1")); !ok || id != "room-1" {
		t.Errorf("ParseRoomPath(RoomPath) = (%q, %v)", id, ok)
	}
	if _, ok := ParseRoomPath("/game/room-1"); ok {
		t.Error("ParseRoomPath accepted a match path")
	}
	if got := LoginPath("/room/x"); got != "/?return=%2Froom%2Fx" {
		t.Errorf("LoginPath = %q", got)
	}
}

func TestSortedMessages(t *testing.T) {
	msgs := []game.ChatMessage{
		{PlayerName: "bob", Content: "second", DateCreated: "2024-05-01T10:00:02Z"},
		{PlayerName: "alice", Content: "first", DateCreated: "2024-05-01T10:00:01Z"},
		{PlayerName: "carol", Content: "third", DateCreated: "2024-05-01T10:00:03Z"},
	}
	got := sortedMessages(msgs)
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Content != want {
			t.Errorf("message %d = %q, want %q", i, got[i].Content, want)
		}
	}
	if msgs[0].Content != "second" {
		t.Error("sortedMessages modified its input")
	}
}

func TestHint(t *testing.T) {
	if got := hint(truco.ActionState{Enabled: true}); got != "" {
		t.Errorf("hint(enabled) = %q, want empty", got)
	}
	got := hint(truco.ActionState{Reason: truco.ReasonNotYourTurn})
	if want := "Not your turn."; got != want {
		t.Errorf("hint = %q, want %q", got, want)
	}
}

func TestCardClasses(t *testing.T) {
	tests := []struct {
		code    string
		manilha bool
		want    string
	}{
		{"AO", false, "card red"},
		{"4Z", true, "card black manilha"},
		{truco.CoveredCode, true, "card covered"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c, err := truco.ParseCard(tt.code)
			if err != nil {
				t.Fatalf("ParseCard(%q): %v", tt.code, err)
			}
			if got := cardClass(c, tt.manilha); got != tt.want {
				t.Errorf("cardClass = %q, want %q", got, tt.want)
			}
		})
	}
	if teamClass(truco.Us) != "us" || teamClass(truco.Them) != "them" || teamClass(truco.NoTeam) != "none" {
		t.Error("unexpected team classes")
	}
}

func TestResultLabel(t *testing.T) {
	if got := resultLabel(truco.Unset); got != "-" {
		t.Errorf("resultLabel(Unset) = %q", got)
	}
	if got := resultLabel(truco.WonByUs); got != game.TeamUs {
		t.Errorf("resultLabel(WonByUs) = %q", got)
	}
}
