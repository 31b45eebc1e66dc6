package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-rules/internal/deck"
)

// Category is the class of a five-card poker hand, ordered weakest to strongest.
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a hand category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Hand is an evaluated five-card poker hand.
type Hand struct {
	Category Category
	// Tiebreak holds the ranks compared, in order, between hands of the same
	// category. Its length depends on the category.
	Tiebreak []deck.Rank
	// Cards are the five cards making the hand, most significant group first.
	Cards [5]deck.Card
}

// String returns a string representation of the hand
func (h Hand) String() string {
	cardStrs := make([]string, 0, len(h.Cards))
	for _, card := range h.Cards {
		cardStrs = append(cardStrs, card.String())
	}
	return fmt.Sprintf("%s [%s]", h.Category, strings.Join(cardStrs, " "))
}

// Compare compares two hands and returns:
// -1 if a is weaker than b
//
//	0 if a equals b
//	1 if a is stronger than b
func Compare(a, b Hand) int {
	if a.Category != b.Category {
		if a.Category < b.Category {
			return -1
		}
		return 1
	}

	for i := 0; i < len(a.Tiebreak) && i < len(b.Tiebreak); i++ {
		if a.Tiebreak[i] < b.Tiebreak[i] {
			return -1
		}
		if a.Tiebreak[i] > b.Tiebreak[i] {
			return 1
		}
	}
	return 0
}

// Beats returns true if h is strictly stronger than other
func (h Hand) Beats(other Hand) bool {
	return Compare(h, other) > 0
}

// DetermineWinners returns the index of every hand achieving the maximum.
// Nil entries stand for folded or ineligible players and never win.
func DetermineWinners(hands []*Hand) []int {
	var (
		best    *Hand
		winners []int
	)
	for i, h := range hands {
		if h == nil {
			continue
		}
		if best == nil {
			best, winners = h, []int{i}
			continue
		}
		switch Compare(*h, *best) {
		case 1:
			best, winners = h, []int{i}
		case 0:
			winners = append(winners, i)
		}
	}
	return winners
}
