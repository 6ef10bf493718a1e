package truco

import (
	"fmt"
	"slices"

	"github.com/truco-front/truco/internal/game"
)

// Identity is the viewer as known by the backend.
type Identity struct {
	Name string
	ID   string
}

// ActionState tells whether an action is offered, and why not.
type ActionState struct {
	Enabled bool
	Reason  Reason
}

func stateFor(r Reason) ActionState {
	return ActionState{Enabled: r == ReasonNone, Reason: r}
}

// ActionSet is every action the viewer could take on a snapshot.
type ActionSet struct {
	Seat      Seat
	Team      Team
	Spectator bool

	Play ActionState
	// Cards are the codes the viewer may play when Play is enabled.
	Cards   []string
	CoverUp ActionState

	Call      ActionState
	CallLevel int
	CallLabel string

	Accept  ActionState
	Decline ActionState
	Collect ActionState
	Escape  ActionState
}

// ResolveActions computes the actions of the viewer on s. Viewers not seated
// at an active seat are spectators and get nothing. The result is advisory:
// the backend remains the authority.
func ResolveActions(s *Snapshot, id Identity) ActionSet {
	set := ActionSet{Seat: NoSeat}
	seat, err := s.Seats.SeatOf(id.Name)
	if err != nil || !s.Mode.Active(seat) {
		set.Spectator = true
		set.disableAll(ReasonSpectator)
		return set
	}
	set.Seat, set.Team = seat, TeamOf(seat)

	ladder := s.Ladder()
	if next := ladder.Next(); next > 0 {
		set.CallLevel, set.CallLabel = next, CallLabel(next)
	}
	if s.MatchWinner != Unset {
		set.disableAll(ReasonMatchOver)
		return set
	}

	// The trick is closed once it is full or the hand has a winner; from then
	// on only collecting makes sense.
	closed := ReasonNone
	switch {
	case s.HandWinner != Unset:
		closed = ReasonHandDecided
	case s.TrickFull():
		closed = ReasonTrickFull
	}
	myTurn := s.TurnSeat == seat

	hand := s.Hands[seat]
	play := first(
		closed,
		when(ladder.State == PendingResponse, ReasonCallPending),
		when(!myTurn, ReasonNotYourTurn),
		when(len(hand) == 0, ReasonNoCards),
	)
	set.Play = stateFor(play)
	if set.Play.Enabled {
		for _, c := range hand {
			if !c.Covered {
				set.Cards = append(set.Cards, c.String())
			}
		}
	}
	set.CoverUp = stateFor(first(
		play,
		when(s.FirstTrick == Unset, ReasonFirstTrickOpen),
		when(len(s.Table) == 0, ReasonLeadFaceUp),
	))

	set.Call = stateFor(first(
		closed,
		ladder.CanCall(set.Team, len(s.Table), s.ScoreUs, s.ScoreThem),
		when(!myTurn, ReasonNotYourTurn),
	))

	respond := first(closed, ladder.CanRespond(set.Team))
	set.Accept = stateFor(respond)
	set.Decline = stateFor(respond)

	set.Collect = stateFor(first(
		when(id.Name != s.Owner, ReasonNotOwner),
		when(closed == ReasonNone, ReasonTrickNotDone),
	))

	set.Escape = stateFor(first(
		closed,
		when(ladder.State != NoCall, ReasonAlreadyCalled),
	))
	return set
}

func (set *ActionSet) disableAll(r Reason) {
	off := stateFor(r)
	set.Play, set.CoverUp, set.Call = off, off, off
	set.Accept, set.Decline, set.Collect, set.Escape = off, off, off, off
}

func when(cond bool, r Reason) Reason {
	if cond {
		return r
	}
	return ReasonNone
}

// first returns the first reason that is set.
func first(reasons ...Reason) Reason {
	for _, r := range reasons {
		if r != ReasonNone {
			return r
		}
	}
	return ReasonNone
}

// Action is a request the viewer wants to submit.
type Action struct {
	Kind    game.ActionKind
	Card    string
	CoverUp bool
	Level   int
	Accept  bool
}

// PlayCard plays code from the viewer's hand, face down if coverUp.
func PlayCard(code string, coverUp bool) Action {
	return Action{Kind: game.ActionPlayCard, Card: code, CoverUp: coverUp}
}

// CallTruco raises the wager to level.
func CallTruco(level int) Action {
	return Action{Kind: game.ActionCall, Level: level}
}

// Respond accepts or declines the pending call.
func Respond(accept bool) Action {
	return Action{Kind: game.ActionRespond, Accept: accept}
}

// Collect clears the table for the next trick.
func Collect() Action {
	return Action{Kind: game.ActionCollect}
}

// Escape forfeits the hand.
func Escape() Action {
	return Action{Kind: game.ActionEscape}
}

// Message converts the action to its relay payload.
func (a Action) Message() game.ActionMessage {
	return game.ActionMessage{Kind: a.Kind, Card: a.Card, CoverUp: a.CoverUp, Level: a.Level, Accept: a.Accept}
}

// ActionFromMessage is the inverse of Action.Message.
func ActionFromMessage(m game.ActionMessage) Action {
	return Action{Kind: m.Kind, Card: m.Card, CoverUp: m.CoverUp, Level: m.Level, Accept: m.Accept}
}

// Validate rejects an action the set does not offer, wrapping
// ErrInvalidTransition and the Reason.
func (set ActionSet) Validate(a Action) error {
	var r Reason
	switch a.Kind {
	case game.ActionPlayCard:
		r = first(
			set.Play.Reason,
			when(!slices.Contains(set.Cards, a.Card), ReasonNotInHand),
			when(a.CoverUp, set.CoverUp.Reason),
		)
	case game.ActionCall:
		r = first(set.Call.Reason, when(a.Level != set.CallLevel, ReasonWrongLevel))
	case game.ActionRespond:
		if a.Accept {
			r = set.Accept.Reason
		} else {
			r = set.Decline.Reason
		}
	case game.ActionCollect:
		r = set.Collect.Reason
	case game.ActionEscape:
		r = set.Escape.Reason
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, a.Kind)
	}
	if r != ReasonNone {
		return fmt.Errorf("%w: %s: %w", ErrInvalidTransition, a.Kind, r)
	}
	return nil
}
