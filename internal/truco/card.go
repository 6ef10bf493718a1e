package truco

import (
	"fmt"
	"strings"
)

// Rank of a card, ordered by nominal strength: Four is the weakest, Three
// the strongest. The order is also the cycle used to find the manilha.
type Rank int

const (
	Four Rank = iota
	Five
	Six
	Seven
	Queen
	Jack
	King
	Ace
	Two
	Three

	numRanks = 10
)

var rankCodes = [numRanks]byte{'4', '5', '6', '7', 'Q', 'J', 'K', 'A', '2', '3'}

func (r Rank) String() string {
	if r < 0 || r >= numRanks {
		return "?"
	}
	return string(rankCodes[r])
}

// Next returns the following rank in the cycle, wrapping from Three to Four.
func (r Rank) Next() Rank {
	return (r + 1) % numRanks
}

// Suit of a card, ordered by manilha strength:
// diamonds < spades < hearts < clubs.
type Suit int

const (
	Diamonds Suit = iota // "O", ouros
	Spades               // "E", espadas
	Hearts               // "C", copas
	Clubs                // "Z", paus

	numSuits = 4
)

var suitCodes = [numSuits]byte{'O', 'E', 'C', 'Z'}
var suitSymbols = [numSuits]string{"♦", "♠", "♥", "♣"}

func (s Suit) String() string {
	if s < 0 || s >= numSuits {
		return "?"
	}
	return string(suitCodes[s])
}

// Symbol returns the suit glyph used when rendering a card.
func (s Suit) Symbol() string {
	if s < 0 || s >= numSuits {
		return ""
	}
	return suitSymbols[s]
}

// Red reports whether the suit is printed in red (diamonds and hearts).
func (s Suit) Red() bool {
	return s == Diamonds || s == Hearts
}

// CoveredCode is the code the backend uses for a card played face down.
const CoveredCode = "EC"

// Card is a parsed card code. The zero value is the four of diamonds; use
// Covered to tell face-down cards apart.
type Card struct {
	Rank    Rank
	Suit    Suit
	Covered bool
}

// CoveredCard is the sentinel for a face-down card. It has no rank and is
// never compared.
var CoveredCard = Card{Covered: true}

// ParseCard parses a two-character card code "{rank}{suit}", e.g. "4O" or
// "AZ". CoveredCode parses to CoveredCard.
func ParseCard(code string) (Card, error) {
	if code == CoveredCode {
		return CoveredCard, nil
	}
	if len(code) != 2 {
		return Card{}, fmt.Errorf("%w: %q has length %d", ErrMalformedCard, code, len(code))
	}
	rank := strings.IndexByte(string(rankCodes[:]), code[0])
	if rank < 0 {
		return Card{}, fmt.Errorf("%w: %q has unknown rank %q", ErrMalformedCard, code, code[0])
	}
	suit := strings.IndexByte(string(suitCodes[:]), code[1])
	if suit < 0 {
		return Card{}, fmt.Errorf("%w: %q has unknown suit %q", ErrMalformedCard, code, code[1])
	}
	return Card{Rank: Rank(rank), Suit: Suit(suit)}, nil
}

// ParseCards parses a list of card codes, failing on the first malformed one.
func ParseCards(codes []string) ([]Card, error) {
	cards := make([]Card, 0, len(codes))
	for _, code := range codes {
		c, err := ParseCard(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// String returns the card code, the inverse of ParseCard.
func (c Card) String() string {
	if c.Covered {
		return CoveredCode
	}
	return c.Rank.String() + c.Suit.String()
}

// Label returns the rank followed by the suit glyph, e.g. "A♣".
func (c Card) Label() string {
	if c.Covered {
		return ""
	}
	return c.Rank.String() + c.Suit.Symbol()
}

// ManilhaRank returns the trump rank for a hand whose turned card ("vira")
// is turned: the rank right after it in the cycle.
func ManilhaRank(turned Card) Rank {
	return turned.Rank.Next()
}

// IsManilha reports whether c is a trump card under turned.
func (c Card) IsManilha(turned Card) bool {
	return !c.Covered && !turned.Covered && c.Rank == ManilhaRank(turned)
}

// Outcome of comparing two cards, or of a trick.
type Outcome int

const (
	FirstWins Outcome = iota
	SecondWins
	Tie
)

func (o Outcome) String() string {
	switch o {
	case FirstWins:
		return "first"
	case SecondWins:
		return "second"
	default:
		return "tie"
	}
}

// Compare tells which of a and b wins a trick given the turned card.
// A manilha beats any other card and two manilhas are ordered by suit.
// Other cards are ordered by nominal rank only, so two cards of the same
// rank tie. Covered cards must not be compared.
func Compare(a, b, turned Card) Outcome {
	am, bm := a.IsManilha(turned), b.IsManilha(turned)
	switch {
	case am && bm:
		return byOrder(int(a.Suit), int(b.Suit))
	case am:
		return FirstWins
	case bm:
		return SecondWins
	}
	return byOrder(int(a.Rank), int(b.Rank))
}

func byOrder(a, b int) Outcome {
	switch {
	case a > b:
		return FirstWins
	case a < b:
		return SecondWins
	}
	return Tie
}
