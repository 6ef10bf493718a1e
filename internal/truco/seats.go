package truco

import (
	"fmt"

	"github.com/truco-front/truco/internal/game"
)

// Seat is one of the four absolute table positions.
type Seat int

const (
	SeatA Seat = iota
	SeatB
	SeatC
	SeatD

	numSeats = 4
)

// NoSeat marks a missing seat, e.g. the turn of a match waiting on a call.
const NoSeat Seat = -1

var seatChairs = [numSeats]string{game.ChairA, game.ChairB, game.ChairC, game.ChairD}

func (s Seat) String() string {
	if s < 0 || s >= numSeats {
		return "none"
	}
	return string(rune('A' + s))
}

// Chair returns the backend key of the seat ("chair_a", ...).
func (s Seat) Chair() string {
	if s < 0 || s >= numSeats {
		return ""
	}
	return seatChairs[s]
}

// SeatFromChair parses a backend chair key.
func SeatFromChair(chair string) (Seat, bool) {
	for i, c := range seatChairs {
		if c == chair {
			return Seat(i), true
		}
	}
	return NoSeat, false
}

// Team is one of the two fixed partnerships.
type Team int

const (
	NoTeam Team = iota
	Us          // seats A and B, "NOS"
	Them        // seats C and D, "ELES"
)

func (t Team) String() string {
	switch t {
	case Us:
		return game.TeamUs
	case Them:
		return game.TeamThem
	}
	return ""
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	switch t {
	case Us:
		return Them
	case Them:
		return Us
	}
	return NoTeam
}

// ParseTeam parses a backend team tag. "US" and "THEM" are accepted as
// legacy spellings.
func ParseTeam(tag string) Team {
	switch tag {
	case game.TeamUs, "US", "NÓS":
		return Us
	case game.TeamThem, "THEM":
		return Them
	}
	return NoTeam
}

// TeamOf returns the partnership of a seat.
func TeamOf(s Seat) Team {
	switch s {
	case SeatA, SeatB:
		return Us
	case SeatC, SeatD:
		return Them
	}
	return NoTeam
}

// Mode is the number of players of a match.
type Mode int

const (
	FourPlayers Mode = iota
	TwoPlayers
)

// TrickSize is how many cards make a full trick.
func (m Mode) TrickSize() int {
	if m == TwoPlayers {
		return 2
	}
	return 4
}

// playOrder lists the seats that play, clockwise.
func (m Mode) playOrder() []Seat {
	if m == TwoPlayers {
		return []Seat{SeatA, SeatC}
	}
	return []Seat{SeatA, SeatC, SeatB, SeatD}
}

// Active reports whether s plays in this mode.
func (m Mode) Active(s Seat) bool {
	for _, p := range m.playOrder() {
		if p == s {
			return true
		}
	}
	return false
}

func (m Mode) String() string {
	if m == TwoPlayers {
		return "x2"
	}
	return "x4"
}

// Seats maps each absolute seat to the name of the player sitting there;
// empty names are free seats.
type Seats [numSeats]string

// SeatsFromChairs converts the backend chairs document.
func SeatsFromChairs(c game.Chairs) Seats {
	return Seats{c.ChairA, c.ChairB, c.ChairC, c.ChairD}
}

// SeatOf returns the seat taken by name, or ErrUnknownSeat.
func (s Seats) SeatOf(name string) (Seat, error) {
	if name != "" {
		for i, n := range s {
			if n == name {
				return Seat(i), nil
			}
		}
	}
	return NoSeat, fmt.Errorf("%w: %q", ErrUnknownSeat, name)
}

// Player returns the name sitting on seat, or "".
func (s Seats) Player(seat Seat) string {
	if seat < 0 || seat >= numSeats {
		return ""
	}
	return s[seat]
}

// Position is a viewer-relative place around the table.
type Position int

const (
	Bottom Position = iota
	Left
	Top
	Right
)

func (p Position) String() string {
	switch p {
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Top:
		return "top"
	case Right:
		return "right"
	}
	return ""
}

// Layout is the seat shown at each position. Two-player layouts only use
// Bottom and Top; Left and Right are NoSeat.
type Layout struct {
	Bottom, Left, Top, Right Seat
}

// At returns the seat at position p.
func (l Layout) At(p Position) Seat {
	switch p {
	case Bottom:
		return l.Bottom
	case Left:
		return l.Left
	case Top:
		return l.Top
	case Right:
		return l.Right
	}
	return NoSeat
}

// PositionOf returns where seat is drawn, and false if it is not drawn.
func (l Layout) PositionOf(s Seat) (Position, bool) {
	for _, p := range []Position{Bottom, Left, Top, Right} {
		if l.At(p) == s && s != NoSeat {
			return p, true
		}
	}
	return Bottom, false
}

// Rotation tables keyed by the viewer's seat. Play goes A -> C -> B -> D, so
// the next player sits on the viewer's left and the partner faces them.
var (
	fourPlayerLayouts = map[Seat]Layout{
		SeatA: {Bottom: SeatA, Left: SeatC, Top: SeatB, Right: SeatD},
		SeatC: {Bottom: SeatC, Left: SeatB, Top: SeatD, Right: SeatA},
		SeatB: {Bottom: SeatB, Left: SeatD, Top: SeatA, Right: SeatC},
		SeatD: {Bottom: SeatD, Left: SeatA, Top: SeatC, Right: SeatB},
	}
	twoPlayerLayouts = map[Seat]Layout{
		SeatA: {Bottom: SeatA, Left: NoSeat, Top: SeatC, Right: NoSeat},
		SeatC: {Bottom: SeatC, Left: NoSeat, Top: SeatA, Right: NoSeat},
	}
)

// ProjectSeats places the viewer at the bottom of the table. Spectators, or
// viewers on a seat that does not play in mode, get the seat A view.
func ProjectSeats(viewer Seat, mode Mode) Layout {
	layouts := fourPlayerLayouts
	if mode == TwoPlayers {
		layouts = twoPlayerLayouts
	}
	if l, ok := layouts[viewer]; ok {
		return l
	}
	return layouts[SeatA]
}

// Project is ProjectSeats for the seat taken by viewerName.
func (s Seats) Project(viewerName string, mode Mode) Layout {
	seat, err := s.SeatOf(viewerName)
	if err != nil {
		return ProjectSeats(NoSeat, mode)
	}
	return ProjectSeats(seat, mode)
}
