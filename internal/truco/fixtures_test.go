package truco

import (
	"testing"

	"github.com/truco-front/truco/internal/game"
)

var (
	alice = Identity{Name: "alice", ID: "0b6e2c8e-6a8f-4a43-9c0a-8f0f3f1f0a01"}
	bob   = Identity{Name: "bob"}
	carol = Identity{Name: "carol"}
	dave  = Identity{Name: "dave"}
	eve   = Identity{Name: "eve"}
)

// newDetails returns a fresh four-player hand: vira 4O, alice (seat A, room
// owner) to play, and alice's hand filled in as the backend does for her.
func newDetails() *game.Details {
	return &game.Details{
		UUID:      "match-1",
		RoomID:    "room-1",
		RoomName:  "Sala",
		ScoreUs:   2,
		ScoreThem: 4,
		Chairs:    game.Chairs{ChairA: "alice", ChairB: "bob", ChairC: "carol", ChairD: "dave"},
		Owner:     game.Owner{Name: "alice"},
		Step: game.Step{
			Number:      3,
			Vira:        "4O",
			TableCards:  []string{},
			PlayerTime:  game.Ptr("alice"),
			CardsChairA: []string{"5Z", "AO", "KC"},
		},
	}
}

// newTwoPlayerDetails is newDetails for a two-player match between alice
// (seat A) and carol (seat C).
func newTwoPlayerDetails() *game.Details {
	d := newDetails()
	d.IsTwoPlayers = true
	d.Chairs = game.Chairs{ChairA: "alice", ChairC: "carol"}
	return d
}

func decode(t *testing.T, d *game.Details) *Snapshot {
	t.Helper()
	s, err := Decode(d)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return s
}

// withPendingCall sets a call of level by player of team, waiting for an
// answer.
func withPendingCall(d *game.Details, level int, player, team string) *game.Details {
	rec := game.Ptr(player + game.RecordSeparator + team)
	switch level {
	case 3:
		d.Step.PlayerCall3 = rec
	case 6:
		d.Step.PlayerCall6 = rec
	case 9:
		d.Step.PlayerCall9 = rec
	case 12:
		d.Step.PlayerCall12 = rec
	}
	d.Step.PlayerTime = nil
	return d
}
