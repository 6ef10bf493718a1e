package truco

import (
	"fmt"
	"strings"

	"github.com/truco-front/truco/internal/game"
)

// Result is the recorded winner of a trick, a hand or the match.
type Result int

const (
	Unset Result = iota
	WonByUs
	WonByThem
	Tied
)

func (r Result) String() string {
	switch r {
	case WonByUs:
		return game.TeamUs
	case WonByThem:
		return game.TeamThem
	case Tied:
		return game.TieTag
	}
	return ""
}

// Team returns the winning team, or NoTeam for Unset and Tied.
func (r Result) Team() Team {
	switch r {
	case WonByUs:
		return Us
	case WonByThem:
		return Them
	}
	return NoTeam
}

// ParseResult reads a backend outcome tag. Tags varied across backend
// revisions: "NOS"/"US", "ELES"/"THEM" and "EMPATE"/"EMPACHE"/"EMPT" are
// each the same outcome. Nil, empty and unknown tags are Unset.
func ParseResult(tag *string) Result {
	if tag == nil {
		return Unset
	}
	switch strings.ToUpper(strings.TrimSpace(*tag)) {
	case game.TeamUs, "US", "NÓS":
		return WonByUs
	case game.TeamThem, "THEM":
		return WonByThem
	case game.TieTag, "EMPACHE", "EMPT", "TIE":
		return Tied
	}
	return Unset
}

// TableCard is a card already played in the current trick.
type TableCard struct {
	Card Card
	// Seat and Team of whoever played it; NoSeat and NoTeam when the
	// backend sent no origin record.
	Seat   Seat
	Team   Team
	Player string
}

// Snapshot is one normalised poll of a match. It is never mutated.
type Snapshot struct {
	MatchID   string
	RoomID    string
	RoomName  string
	Mode      Mode
	Protected bool

	Round     int
	ScoreUs   int
	ScoreThem int

	// Turned is the vira; HasTurned is false before the first hand is dealt.
	Turned    Card
	HasTurned bool

	Table []TableCard
	// Hands holds each seat's cards; only the viewer's own seat is filled.
	Hands [numSeats][]Card

	Calls     []Call
	Decisions []Decision

	FirstTrick  Result
	SecondTrick Result
	HandWinner  Result
	MatchWinner Result

	// TurnSeat is the seat whose card is awaited, NoSeat while a call waits
	// for an answer or the table waits to be collected.
	TurnSeat   Seat
	TurnPlayer string

	Seats    Seats
	Owner    string
	Messages []game.ChatMessage
}

// Decode normalises a backend game document. It fails with ErrMalformedCard
// on any unparseable card and with ErrStaleSnapshot when the document breaks
// the trick size.
func Decode(d *game.Details) (*Snapshot, error) {
	s := &Snapshot{
		MatchID:     d.UUID,
		RoomID:      d.RoomID,
		RoomName:    d.RoomName,
		Protected:   d.Protected,
		Round:       d.Step.Number,
		ScoreUs:     d.ScoreUs,
		ScoreThem:   d.ScoreThem,
		FirstTrick:  ParseResult(d.Step.First),
		SecondTrick: ParseResult(d.Step.Second),
		HandWinner:  ParseResult(d.Step.Win),
		MatchWinner: ParseResult(d.EndGameWin),
		TurnSeat:    NoSeat,
		Seats:       SeatsFromChairs(d.Chairs),
		Owner:       d.Owner.Name,
		Messages:    d.Messages,
	}
	if d.IsTwoPlayers {
		s.Mode = TwoPlayers
	}

	if d.Step.Vira != "" {
		turned, err := ParseCard(d.Step.Vira)
		if err != nil {
			return nil, fmt.Errorf("vira: %w", err)
		}
		s.Turned, s.HasTurned = turned, true
	}

	if len(d.Step.TableCards) > s.Mode.TrickSize() {
		return nil, fmt.Errorf("%w: %d cards on a %s table", ErrStaleSnapshot, len(d.Step.TableCards), s.Mode)
	}
	origins := []*string{d.Step.FirstCardOrigin, d.Step.SecondCardOrigin, d.Step.ThirdCardOrigin, d.Step.FourthCardOrigin}
	for i, code := range d.Step.TableCards {
		c, err := ParseCard(code)
		if err != nil {
			return nil, fmt.Errorf("table card %d: %w", i, err)
		}
		tc := TableCard{Card: c, Seat: NoSeat}
		if i < len(origins) {
			tc.Player, tc.Seat, tc.Team = parseOrigin(origins[i])
		}
		s.Table = append(s.Table, tc)
	}

	hands := [numSeats][]string{d.Step.CardsChairA, d.Step.CardsChairB, d.Step.CardsChairC, d.Step.CardsChairD}
	for seat, codes := range hands {
		cards, err := ParseCards(codes)
		if err != nil {
			return nil, fmt.Errorf("hand of seat %s: %w", Seat(seat), err)
		}
		s.Hands[seat] = cards
	}

	calls := []struct {
		level  int
		record *string
	}{{3, d.Step.PlayerCall3}, {6, d.Step.PlayerCall6}, {9, d.Step.PlayerCall9}, {12, d.Step.PlayerCall12}}
	for _, c := range calls {
		if c.record == nil || *c.record == "" {
			continue
		}
		player, team := splitRecord(*c.record)
		call := Call{Level: c.level, Player: player, Team: ParseTeam(team)}
		if call.Team == NoTeam {
			if seat, err := s.Seats.SeatOf(player); err == nil {
				call.Team = TeamOf(seat)
			}
		}
		s.Calls = append(s.Calls, call)
	}

	for _, rec := range []*string{d.Step.IsAcceptFirst, d.Step.IsAcceptSecond} {
		if rec == nil || *rec == "" {
			continue
		}
		player, answer := splitRecord(*rec)
		s.Decisions = append(s.Decisions, Decision{Player: player, Accept: strings.EqualFold(answer, "yes")})
	}

	if d.Step.PlayerTime != nil && *d.Step.PlayerTime != "" {
		s.TurnPlayer = *d.Step.PlayerTime
		if seat, err := s.Seats.SeatOf(s.TurnPlayer); err == nil {
			s.TurnSeat = seat
		}
	}
	return s, nil
}

// splitRecord splits "a---b" into its two leading fields.
func splitRecord(rec string) (string, string) {
	parts := strings.SplitN(rec, game.RecordSeparator, 3)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// parseOrigin reads a card origin "player---chair_x---TEAM".
func parseOrigin(rec *string) (string, Seat, Team) {
	if rec == nil || *rec == "" {
		return "", NoSeat, NoTeam
	}
	parts := strings.Split(*rec, game.RecordSeparator)
	player, seat, team := parts[0], NoSeat, NoTeam
	if len(parts) > 1 {
		if s, ok := SeatFromChair(parts[1]); ok {
			seat = s
		}
	}
	if len(parts) > 2 {
		team = ParseTeam(parts[2])
	}
	if team == NoTeam && seat != NoSeat {
		team = TeamOf(seat)
	}
	return player, seat, team
}

// Ladder reconstructs the call ladder of the snapshot.
func (s *Snapshot) Ladder() Ladder {
	return ReconstructLadder(s.Calls, s.Decisions, s.TurnSeat != NoSeat)
}

// LeadSeat returns the seat that opened the current trick, SeatA when unknown.
func (s *Snapshot) LeadSeat() Seat {
	if len(s.Table) > 0 && s.Table[0].Seat != NoSeat {
		return s.Table[0].Seat
	}
	return SeatA
}

// TrickFull reports whether every active seat has played in this trick.
func (s *Snapshot) TrickFull() bool {
	return len(s.Table) >= s.Mode.TrickSize()
}

// CheckProgress verifies that next can follow prev. Scores and the round
// number never go down within a match; a different match id or both scores
// back to zero is a reset and always accepted.
func CheckProgress(prev, next *Snapshot) error {
	if prev == nil || next == nil || prev.MatchID != next.MatchID {
		return nil
	}
	if next.ScoreUs == 0 && next.ScoreThem == 0 {
		return nil
	}
	switch {
	case next.ScoreUs < prev.ScoreUs:
		return fmt.Errorf("%w: score %s went from %d to %d", ErrStaleSnapshot, Us, prev.ScoreUs, next.ScoreUs)
	case next.ScoreThem < prev.ScoreThem:
		return fmt.Errorf("%w: score %s went from %d to %d", ErrStaleSnapshot, Them, prev.ScoreThem, next.ScoreThem)
	case next.Round < prev.Round:
		return fmt.Errorf("%w: round went from %d to %d", ErrStaleSnapshot, prev.Round, next.Round)
	}
	return nil
}
