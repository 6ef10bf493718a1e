package truco

// LadderState is the phase of the wager for the current hand.
type LadderState int

const (
	NoCall LadderState = iota
	PendingResponse
	Accepted
	Declined
)

func (s LadderState) String() string {
	switch s {
	case NoCall:
		return "no call"
	case PendingResponse:
		return "pending response"
	case Accepted:
		return "accepted"
	case Declined:
		return "declined"
	}
	return "unknown"
}

// Levels of the call ladder, lowest first.
var Levels = []int{3, 6, 9, 12}

// MaxLevel is the last rung of the ladder.
const MaxLevel = 12

// BaseStake is what a hand is worth when no call was accepted.
const BaseStake = 1

// HandOfEleven is the score at which nobody may call.
const HandOfEleven = 11

// CallLabel is the shout of each level.
func CallLabel(level int) string {
	switch level {
	case 3:
		return "TRUCO"
	case 6:
		return "SEIS"
	case 9:
		return "NOVE"
	case 12:
		return "DOZE"
	}
	return ""
}

// NextLevel returns the rung after level (0 means no call yet), or 0
// when level is the top of the ladder.
func NextLevel(level int) int {
	if level == 0 {
		return Levels[0]
	}
	for i, l := range Levels[:len(Levels)-1] {
		if l == level {
			return Levels[i+1]
		}
	}
	return 0
}

// previousLevel returns the rung before level, or 0 for the first rung.
func previousLevel(level int) int {
	for i, l := range Levels {
		if l == level && i > 0 {
			return Levels[i-1]
		}
	}
	return 0
}

// Call is one call record of the hand.
type Call struct {
	Level  int
	Player string
	Team   Team
}

// Decision is one accept/decline record for the current call.
type Decision struct {
	Player string
	Accept bool
}

// Ladder is the wager state reconstructed from one snapshot. It holds no
// history beyond what the snapshot carries.
type Ladder struct {
	State LadderState
	// Level is the highest call made so far, 0 with NoCall.
	Level int
	// Caller is who made the highest call.
	Caller Call
}

// ReconstructLadder derives the wager state. calls may be in any order and
// are keyed by level; decisions are the acceptance records of the current
// call; turnPending is true when the snapshot awaits a card from some seat.
//
// A decline ends the call. Otherwise the highest call is accepted once play
// resumed and pending until then: while nobody has the turn the call waits
// for an answer, whatever yes records are present. Those may come from a
// partner who answered first or from the previous level.
func ReconstructLadder(calls []Call, decisions []Decision, turnPending bool) Ladder {
	var highest *Call
	for i := range calls {
		if highest == nil || calls[i].Level > highest.Level {
			highest = &calls[i]
		}
	}
	if highest == nil {
		return Ladder{State: NoCall}
	}

	l := Ladder{Level: highest.Level, Caller: *highest}
	for _, d := range decisions {
		if !d.Accept {
			l.State = Declined
			return l
		}
	}
	if turnPending {
		l.State = Accepted
	} else {
		l.State = PendingResponse
	}
	return l
}

// Stake returns what the hand is worth in the current state. A declined
// call awards the previous accepted level, or BaseStake.
func (l Ladder) Stake() int {
	switch l.State {
	case Accepted:
		return l.Level
	case Declined:
		if p := previousLevel(l.Level); p > 0 {
			return p
		}
	case PendingResponse:
		if p := previousLevel(l.Level); p > 0 {
			return p
		}
	}
	return BaseStake
}

// Next returns the level a new call would raise to, or 0 if none.
func (l Ladder) Next() int {
	switch l.State {
	case NoCall:
		return Levels[0]
	case Accepted:
		return NextLevel(l.Level)
	}
	return 0
}

// CanCall reports whether team may make a call now, given how many cards
// are on the table and the scores. It does not check the turn.
func (l Ladder) CanCall(team Team, tableLen, scoreUs, scoreThem int) Reason {
	switch {
	case team == NoTeam:
		return ReasonSpectator
	case scoreUs == HandOfEleven || scoreThem == HandOfEleven:
		return ReasonHandOfEleven
	case l.State == PendingResponse:
		return ReasonCallPending
	case l.State == Declined:
		return ReasonCallDeclined
	case l.State == Accepted && l.Level >= MaxLevel:
		return ReasonLadderTop
	case l.State == Accepted && l.Caller.Team == team:
		return ReasonSameTeamRaised
	case tableLen >= 2:
		return ReasonTooLateToCall
	}
	return ReasonNone
}

// CanRespond reports whether team may accept or decline the pending call.
func (l Ladder) CanRespond(team Team) Reason {
	switch {
	case team == NoTeam:
		return ReasonSpectator
	case l.State != PendingResponse:
		return ReasonNoPendingCall
	case l.Caller.Team == team:
		return ReasonOwnCall
	}
	return ReasonNone
}
