package truco

// Slot is where a played card is drawn on the table.
type Slot string

const (
	BottomRight Slot = "bottom-right"
	BottomLeft  Slot = "bottom-left"
	TopLeft     Slot = "top-left"
	TopRight    Slot = "top-right"
)

// PlacedCard is a table card with its drawing slot.
type PlacedCard struct {
	TableCard
	Slot Slot
}

type seatPair struct {
	viewer, lead Seat
}

// Slot sequences per (viewer, lead): the i-th card of the trick goes to the
// i-th slot. Slots run clockwise from whoever led and the viewer's own card
// always lands bottom-right.
var (
	fourPlayerSlots = map[seatPair][]Slot{
		{SeatA, SeatA}: {BottomRight, BottomLeft, TopLeft, TopRight},
		{SeatA, SeatC}: {BottomLeft, TopLeft, TopRight, BottomRight},
		{SeatA, SeatB}: {TopLeft, TopRight, BottomRight, BottomLeft},
		{SeatA, SeatD}: {TopRight, BottomRight, BottomLeft, TopLeft},

		{SeatC, SeatA}: {TopRight, BottomRight, BottomLeft, TopLeft},
		{SeatC, SeatC}: {BottomRight, BottomLeft, TopLeft, TopRight},
		{SeatC, SeatB}: {BottomLeft, TopLeft, TopRight, BottomRight},
		{SeatC, SeatD}: {TopLeft, TopRight, BottomRight, BottomLeft},

		{SeatB, SeatA}: {TopLeft, TopRight, BottomRight, BottomLeft},
		{SeatB, SeatC}: {TopRight, BottomRight, BottomLeft, TopLeft},
		{SeatB, SeatB}: {BottomRight, BottomLeft, TopLeft, TopRight},
		{SeatB, SeatD}: {BottomLeft, TopLeft, TopRight, BottomRight},

		{SeatD, SeatA}: {BottomLeft, TopLeft, TopRight, BottomRight},
		{SeatD, SeatC}: {TopLeft, TopRight, BottomRight, BottomLeft},
		{SeatD, SeatB}: {TopRight, BottomRight, BottomLeft, TopLeft},
		{SeatD, SeatD}: {BottomRight, BottomLeft, TopLeft, TopRight},
	}
	twoPlayerSlots = map[seatPair][]Slot{
		{SeatA, SeatA}: {BottomRight, TopLeft},
		{SeatA, SeatC}: {TopLeft, BottomRight},
		{SeatC, SeatA}: {TopLeft, BottomRight},
		{SeatC, SeatC}: {BottomRight, TopLeft},
	}
)

// TrickSlots returns the slot sequence for a trick led by lead, seen by
// viewer. Viewers and leads that do not play in mode are read as seat A.
func TrickSlots(viewer, lead Seat, mode Mode) []Slot {
	table := fourPlayerSlots
	if mode == TwoPlayers {
		table = twoPlayerSlots
	}
	if !mode.Active(viewer) {
		viewer = SeatA
	}
	if !mode.Active(lead) {
		lead = SeatA
	}
	return table[seatPair{viewer, lead}]
}

// OrderTableCards assigns a slot to each card of the trick, in play order.
// Cards beyond the trick size are dropped.
func OrderTableCards(cards []TableCard, lead, viewer Seat, mode Mode) []PlacedCard {
	slots := TrickSlots(viewer, lead, mode)
	placed := make([]PlacedCard, 0, len(cards))
	for i, c := range cards {
		if i >= len(slots) {
			break
		}
		placed = append(placed, PlacedCard{TableCard: c, Slot: slots[i]})
	}
	return placed
}
