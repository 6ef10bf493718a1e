package truco

import "testing"

func TestReconstructLadder(t *testing.T) {
	call3 := Call{Level: 3, Player: "alice", Team: Us}
	call6 := Call{Level: 6, Player: "carol", Team: Them}

	tests := []struct {
		name        string
		calls       []Call
		decisions   []Decision
		turnPending bool
		want        LadderState
		level       int
		stake       int
		next        int
	}{
		{"no call", nil, nil, true, NoCall, 0, 1, 3},
		{"pending truco", []Call{call3}, nil, false, PendingResponse, 3, 1, 0},
		{"accepted by answer", []Call{call3}, []Decision{{"carol", true}}, true, Accepted, 3, 3, 6},
		{"partner still to answer", []Call{call3}, []Decision{{"carol", true}}, false, PendingResponse, 3, 1, 0},
		{"raise with earlier yes", []Call{call3, call6}, []Decision{{"carol", true}}, false, PendingResponse, 6, 3, 0},
		{"accepted by resumed play", []Call{call3}, nil, true, Accepted, 3, 3, 6},
		{"declined truco", []Call{call3}, []Decision{{"carol", false}}, false, Declined, 3, 1, 0},
		{"pending six", []Call{call6, call3}, nil, false, PendingResponse, 6, 3, 0},
		{"declined six", []Call{call3, call6}, []Decision{{"alice", false}}, false, Declined, 6, 3, 0},
		{"accepted twelve", []Call{{Level: 12, Team: Us}}, nil, true, Accepted, 12, 12, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := ReconstructLadder(tc.calls, tc.decisions, tc.turnPending)
			if l.State != tc.want || l.Level != tc.level {
				t.Errorf("Got %s at %d, want %s at %d", l.State, l.Level, tc.want, tc.level)
			}
			if got := l.Stake(); got != tc.stake {
				t.Errorf("Stake() = %d, want %d", got, tc.stake)
			}
			if got := l.Next(); got != tc.next {
				t.Errorf("Next() = %d, want %d", got, tc.next)
			}
		})
	}
}

func TestCanCall(t *testing.T) {
	accepted3 := Ladder{State: Accepted, Level: 3, Caller: Call{Level: 3, Team: Us}}
	tests := []struct {
		name     string
		ladder   Ladder
		team     Team
		tableLen int
		us, them int
		want     Reason
	}{
		{"open", Ladder{}, Us, 0, 0, 0, ReasonNone},
		{"one card on table", Ladder{}, Them, 1, 5, 3, ReasonNone},
		{"two cards on table", Ladder{}, Us, 2, 0, 0, ReasonTooLateToCall},
		{"hand of eleven us", Ladder{}, Us, 0, 11, 4, ReasonHandOfEleven},
		{"hand of eleven them", accepted3, Them, 0, 2, 11, ReasonHandOfEleven},
		{"same team raises again", accepted3, Us, 0, 0, 0, ReasonSameTeamRaised},
		{"opponents raise to six", accepted3, Them, 0, 0, 0, ReasonNone},
		{"pending", Ladder{State: PendingResponse, Level: 3, Caller: Call{Team: Us}}, Them, 0, 0, 0, ReasonCallPending},
		{"top of ladder", Ladder{State: Accepted, Level: 12, Caller: Call{Team: Us}}, Them, 0, 0, 0, ReasonLadderTop},
		{"spectator", Ladder{}, NoTeam, 0, 0, 0, ReasonSpectator},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ladder.CanCall(tc.team, tc.tableLen, tc.us, tc.them); got != tc.want {
				t.Errorf("CanCall() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCanRespond(t *testing.T) {
	pending := Ladder{State: PendingResponse, Level: 6, Caller: Call{Level: 6, Team: Them}}
	if r := pending.CanRespond(Us); r != ReasonNone {
		t.Errorf("Us must answer a call from Them, got %q", r)
	}
	if r := pending.CanRespond(Them); r != ReasonOwnCall {
		t.Errorf("Them must not answer their own call, got %q", r)
	}
	if r := (Ladder{}).CanRespond(Us); r != ReasonNoPendingCall {
		t.Errorf("Nothing to answer, got %q", r)
	}
}

func TestLevels(t *testing.T) {
	want := map[int]int{0: 3, 3: 6, 6: 9, 9: 12, 12: 0}
	for level, next := range want {
		if got := NextLevel(level); got != next {
			t.Errorf("NextLevel(%d) = %d, want %d", level, got, next)
		}
	}
	for _, l := range Levels {
		if CallLabel(l) == "" {
			t.Errorf("Level %d has no label", l)
		}
	}
}
