package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in canonical deck order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Letter returns the single-letter notation used by ParseCards.
func (s Suit) Letter() byte {
	if !s.Valid() {
		return '?'
	}
	return "hdcs"[s]
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s >= Hearts && s <= Spades
}

// Rank represents a card rank, 2 through 14 (ace high)
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankNames = map[Rank][2]string{
	Two:   {"Two", "Twos"},
	Three: {"Three", "Threes"},
	Four:  {"Four", "Fours"},
	Five:  {"Five", "Fives"},
	Six:   {"Six", "Sixes"},
	Seven: {"Seven", "Sevens"},
	Eight: {"Eight", "Eights"},
	Nine:  {"Nine", "Nines"},
	Ten:   {"Ten", "Tens"},
	Jack:  {"Jack", "Jacks"},
	Queen: {"Queen", "Queens"},
	King:  {"King", "Kings"},
	Ace:   {"Ace", "Aces"},
}

// String returns the single-character notation of a rank
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string("23456789TJQKA"[r-Two])
}

// Name returns the English name of the rank ("Queen").
func (r Rank) Name() string {
	if n, ok := rankNames[r]; ok {
		return n[0]
	}
	return "Unknown"
}

// Plural returns the plural English name of the rank ("Sixes").
func (r Rank) Plural() string {
	if n, ok := rankNames[r]; ok {
		return n[1]
	}
	return "Unknown"
}

// Valid reports whether r is within 2..14.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card represents a playing card. Cards are plain values and are copied, never shared.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Notation returns the two-character ASCII form accepted by ParseCards ("As").
func (c Card) Notation() string {
	return c.Rank.String() + string(c.Suit.Letter())
}

// Valid reports whether both suit and rank are in range.
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

// Index maps the card onto 0..51 in canonical deck order.
func (c Card) Index() int {
	return int(c.Suit)*13 + int(c.Rank-Two)
}
