package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Size is the number of cards in a standard deck.
const Size = 52

var (
	// ErrDealUnderflow is returned when more cards are requested than remain.
	ErrDealUnderflow = errors.New("deal underflow")
	// ErrInvalidDeck is returned when a deck is not a permutation of the 52 cards.
	ErrInvalidDeck = errors.New("invalid deck")
)

// New returns the canonical 52-card deck, suits in Suits order and ranks ascending.
func New() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle returns a Fisher-Yates permutation of cards drawn from rng.
// The input slice is left untouched.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deal takes n cards off the top of cards and returns them together with the
// remaining deck. Neither result aliases the input.
func Deal(cards []Card, n int) ([]Card, []Card, error) {
	if n < 0 || n > len(cards) {
		return nil, nil, fmt.Errorf("%w: requested %d, %d remaining", ErrDealUnderflow, n, len(cards))
	}
	dealt := make([]Card, n)
	copy(dealt, cards[:n])
	rest := make([]Card, len(cards)-n)
	copy(rest, cards[n:])
	return dealt, rest, nil
}

// Validate checks that cards is a bijection over the 52-card deck.
func Validate(cards []Card) error {
	if len(cards) != Size {
		return fmt.Errorf("%w: %d cards", ErrInvalidDeck, len(cards))
	}
	var seen [Size]bool
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("%w: bad card %v", ErrInvalidDeck, c)
		}
		if seen[c.Index()] {
			return fmt.Errorf("%w: duplicate %s", ErrInvalidDeck, c)
		}
		seen[c.Index()] = true
	}
	return nil
}

// Stack returns a full deck with top placed first, in the given order, followed
// by the remaining cards in canonical order. Used for deterministic deals.
func Stack(top ...Card) ([]Card, error) {
	used := make(map[Card]bool, len(top))
	out := make([]Card, 0, Size)
	for _, c := range top {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: bad card %v", ErrInvalidDeck, c)
		}
		if used[c] {
			return nil, fmt.Errorf("%w: duplicate %s", ErrInvalidDeck, c)
		}
		used[c] = true
		out = append(out, c)
	}
	for _, c := range New() {
		if !used[c] {
			out = append(out, c)
		}
	}
	return out, nil
}

// MustStack is Stack for fixtures; it panics on error.
func MustStack(top ...Card) []Card {
	cards, err := Stack(top...)
	if err != nil {
		panic(err)
	}
	return cards
}
