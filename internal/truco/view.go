package truco

import (
	"fmt"

	"github.com/truco-front/truco/internal/game"
)

// SeatView is one drawn seat of the table.
type SeatView struct {
	Seat        Seat
	Position    Position
	Player      string
	Team        Team
	IsViewer    bool
	CurrentTurn bool
	// CallLabel is the shout shown on every seat of the team holding the
	// highest call, e.g. "TRUCO".
	CallLabel string
	// Answered is set when this player accepted or declined the call.
	Answered bool
	Accepted bool
}

// HandCard is a card of the viewer's hand.
type HandCard struct {
	Card    Card
	Manilha bool
}

// View is everything the presentation layer draws for one snapshot.
type View struct {
	MatchID  string
	RoomID   string
	RoomName string
	Mode     Mode
	Viewer   Identity

	Spectator bool
	Seat      Seat
	Team      Team

	Round     int
	ScoreUs   int
	ScoreThem int

	Turned    Card
	HasTurned bool
	Manilha   Rank

	Layout Layout
	Seats  []SeatView
	Hand   []HandCard
	Table  []PlacedCard

	Ladder Ladder
	Stake  int

	FirstTrick  Result
	SecondTrick Result
	HandWinner  Result
	MatchWinner Result

	TurnPlayer string
	Owner      string
	// Collecting is true when the table waits for the owner to collect.
	Collecting bool
	Status     string
	Banner     string

	Actions ActionSet

	Messages []game.ChatMessage
	// ShowChat is false for spectators of protected matches.
	ShowChat bool
	CanChat  bool
}

// BuildView projects a snapshot for the viewer.
func BuildView(s *Snapshot, id Identity) *View {
	actions := ResolveActions(s, id)
	ladder := s.Ladder()
	layout := ProjectSeats(actions.Seat, s.Mode)

	v := &View{
		MatchID:     s.MatchID,
		RoomID:      s.RoomID,
		RoomName:    s.RoomName,
		Mode:        s.Mode,
		Viewer:      id,
		Spectator:   actions.Spectator,
		Seat:        actions.Seat,
		Team:        actions.Team,
		Round:       s.Round,
		ScoreUs:     s.ScoreUs,
		ScoreThem:   s.ScoreThem,
		Turned:      s.Turned,
		HasTurned:   s.HasTurned,
		Layout:      layout,
		Table:       OrderTableCards(s.Table, s.LeadSeat(), actions.Seat, s.Mode),
		Ladder:      ladder,
		Stake:       ladder.Stake(),
		FirstTrick:  s.FirstTrick,
		SecondTrick: s.SecondTrick,
		HandWinner:  s.HandWinner,
		MatchWinner: s.MatchWinner,
		TurnPlayer:  s.TurnPlayer,
		Owner:       s.Owner,
		Collecting:  s.TrickFull() || s.HandWinner != Unset,
		Actions:     actions,
		Messages:    s.Messages,
		ShowChat:    !s.Protected || !actions.Spectator,
		CanChat:     !actions.Spectator,
	}
	if s.HasTurned {
		v.Manilha = ManilhaRank(s.Turned)
	}

	if !actions.Spectator {
		for _, c := range s.Hands[actions.Seat] {
			v.Hand = append(v.Hand, HandCard{Card: c, Manilha: s.HasTurned && c.IsManilha(s.Turned)})
		}
	}

	positions := []Position{Bottom, Left, Top, Right}
	if s.Mode == TwoPlayers {
		positions = []Position{Bottom, Top}
	}
	for _, p := range positions {
		seat := layout.At(p)
		sv := SeatView{
			Seat:        seat,
			Position:    p,
			Player:      s.Seats.Player(seat),
			Team:        TeamOf(seat),
			IsViewer:    seat == actions.Seat,
			CurrentTurn: seat == s.TurnSeat,
		}
		if ladder.State != NoCall && ladder.Caller.Team == sv.Team {
			sv.CallLabel = CallLabel(ladder.Level)
		}
		for _, d := range s.Decisions {
			if d.Player != "" && d.Player == sv.Player {
				sv.Answered, sv.Accepted = true, d.Accept
			}
		}
		v.Seats = append(v.Seats, sv)
	}

	v.Status = statusLine(s, v.Collecting)
	v.Banner = banner(s)
	return v
}

func teamOfPlayer(s *Snapshot, name string) Team {
	seat, err := s.Seats.SeatOf(name)
	if err != nil {
		return NoTeam
	}
	return TeamOf(seat)
}

func statusLine(s *Snapshot, collecting bool) string {
	switch {
	case s.MatchWinner != Unset:
		return ""
	case collecting:
		return fmt.Sprintf("Room owner %s of team %s collects the cards.", s.Owner, teamOfPlayer(s, s.Owner))
	case s.TurnPlayer != "":
		return fmt.Sprintf("Turn of %s of team %s.", s.TurnPlayer, teamOfPlayer(s, s.TurnPlayer))
	}
	if l := s.Ladder(); l.State == PendingResponse {
		return fmt.Sprintf("Team %s called %s, waiting for team %s.", l.Caller.Team, CallLabel(l.Level), l.Caller.Team.Opponent())
	}
	return ""
}

// banner announces the match winner, or else the hand winner.
func banner(s *Snapshot) string {
	switch s.MatchWinner {
	case WonByUs, WonByThem:
		return fmt.Sprintf("Team %s won the match", s.MatchWinner)
	}
	switch s.HandWinner {
	case WonByUs, WonByThem:
		return fmt.Sprintf("Team %s won the hand", s.HandWinner)
	case Tied:
		return "The hand is tied"
	}
	return ""
}
