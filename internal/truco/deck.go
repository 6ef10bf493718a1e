package truco

// Deck represents the 40 cards used in Truco: the Spanish-suited deck
// without 8s, 9s and 10s.
type Deck []Card

// NewDeck returns every card once, ordered by rank and then by suit, so
// that for a fixed turned card the non-manilha part of the deck is already
// sorted by strength.
func NewDeck() Deck {
	deck := make(Deck, 0, numRanks*numSuits)
	for r := Four; r <= Three; r++ {
		for s := Diamonds; s <= Clubs; s++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// Codes returns the card codes of the deck, in order.
func (d Deck) Codes() []string {
	codes := make([]string, len(d))
	for i, c := range d {
		codes[i] = c.String()
	}
	return codes
}
