package truco

import (
	"strings"
	"testing"

	"github.com/truco-front/truco/internal/game"
)

func TestBuildViewPlayer(t *testing.T) {
	d := newDetails()
	d.Step.TableCards = []string{"7C"}
	d.Step.FirstCardOrigin = game.Ptr("dave---chair_d---ELES")
	d.Step.CardsChairA = []string{"5Z", "AO", "KC"}
	v := BuildView(decode(t, d), alice)

	if v.Spectator || v.Seat != SeatA || v.Team != Us {
		t.Fatalf("Unexpected viewer: %+v", v)
	}
	if v.Manilha != Five {
		t.Errorf("Manilha under 4O must be Five, got %s", v.Manilha)
	}
	if len(v.Hand) != 3 || !v.Hand[0].Manilha || v.Hand[1].Manilha {
		t.Errorf("Only 5Z is a manilha: %+v", v.Hand)
	}
	if len(v.Seats) != 4 {
		t.Fatalf("Expected 4 drawn seats, got %d", len(v.Seats))
	}
	want := map[Position]string{Bottom: "alice", Left: "carol", Top: "bob", Right: "dave"}
	for _, sv := range v.Seats {
		if sv.Player != want[sv.Position] {
			t.Errorf("At %s: got %q, want %q", sv.Position, sv.Player, want[sv.Position])
		}
		if sv.IsViewer != (sv.Player == "alice") || sv.CurrentTurn != (sv.Player == "alice") {
			t.Errorf("Wrong flags on %s: %+v", sv.Player, sv)
		}
	}
	// dave sits on alice's right, so his lead card goes top-right.
	if len(v.Table) != 1 || v.Table[0].Slot != TopRight {
		t.Errorf("Unexpected table placement %+v", v.Table)
	}
	if v.Stake != BaseStake || v.Collecting {
		t.Errorf("Unexpected stake %d or collecting %v", v.Stake, v.Collecting)
	}
	if !strings.Contains(v.Status, "alice") || v.Banner != "" {
		t.Errorf("Unexpected status %q / banner %q", v.Status, v.Banner)
	}
	if !v.ShowChat || !v.CanChat {
		t.Errorf("Seated players chat")
	}
}

func TestBuildViewCallBadges(t *testing.T) {
	d := withPendingCall(newDetails(), 6, "carol", game.TeamThem)
	d.Step.PlayerCall3 = game.Ptr("bob---NOS")
	v := BuildView(decode(t, d), alice)

	if v.Ladder.State != PendingResponse || v.Ladder.Level != 6 || v.Stake != 3 {
		t.Errorf("Unexpected ladder %+v stake %d", v.Ladder, v.Stake)
	}
	for _, sv := range v.Seats {
		wantLabel := ""
		if sv.Team == Them {
			wantLabel = "SEIS"
		}
		if sv.CallLabel != wantLabel {
			t.Errorf("%s: call label %q, want %q", sv.Player, sv.CallLabel, wantLabel)
		}
	}
	if !strings.Contains(v.Status, "SEIS") {
		t.Errorf("Status must mention the pending call, got %q", v.Status)
	}
	if !v.Actions.Accept.Enabled {
		t.Errorf("Alice answers the call, got %q", v.Actions.Accept.Reason)
	}
}

func TestBuildViewSpectator(t *testing.T) {
	d := newTwoPlayerDetails()
	d.Protected = true
	d.Step.TableCards = []string{"AE"}
	d.Step.FirstCardOrigin = game.Ptr("carol---chair_c---ELES")
	v := BuildView(decode(t, d), eve)

	if !v.Spectator || len(v.Hand) != 0 {
		t.Errorf("Spectators see no hand: %+v", v.Hand)
	}
	if v.Layout != ProjectSeats(SeatA, TwoPlayers) || len(v.Seats) != 2 {
		t.Errorf("Spectators get the seat A view: %+v", v.Layout)
	}
	if len(v.Table) != 1 || v.Table[0].Slot != TopLeft {
		t.Errorf("Unexpected table placement %+v", v.Table)
	}
	if v.ShowChat || v.CanChat {
		t.Errorf("Spectators of protected matches do not see the chat")
	}
}

func TestBuildViewBanner(t *testing.T) {
	d := newDetails()
	d.Step.Win = game.Ptr("EMPT")
	v := BuildView(decode(t, d), alice)
	if v.Banner != "The hand is tied" || !v.Collecting {
		t.Errorf("Unexpected banner %q collecting %v", v.Banner, v.Collecting)
	}
	if !strings.Contains(v.Status, "collects") {
		t.Errorf("Status must ask the owner to collect, got %q", v.Status)
	}

	d.EndGameWin = game.Ptr("ELES")
	d.ScoreThem = 12
	v = BuildView(decode(t, d), alice)
	if v.Banner != "Team ELES won the match" || v.Status != "" {
		t.Errorf("Unexpected banner %q status %q", v.Banner, v.Status)
	}
}
