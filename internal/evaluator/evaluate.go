package evaluator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lox/holdem-rules/internal/deck"
)

var (
	// ErrInvalidCardCount is returned when fewer than 5 or more than 7 cards are evaluated.
	ErrInvalidCardCount = errors.New("hand evaluation needs 5 to 7 cards")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("duplicate card")
)

// Evaluate returns the best five-card hand that can be made from 5 to 7 cards.
// Every five-card subset is scored and the strongest kept.
func Evaluate(cards []deck.Card) (Hand, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Hand{}, fmt.Errorf("%w: got %d", ErrInvalidCardCount, len(cards))
	}
	seen := make(map[deck.Card]bool, len(cards))
	for _, c := range cards {
		if !c.Valid() {
			return Hand{}, fmt.Errorf("invalid card %v", c)
		}
		if seen[c] {
			return Hand{}, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = true
	}

	var (
		best  Hand
		found bool
		combo [5]deck.Card
	)
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						combo = [5]deck.Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						h := score(combo)
						if !found || h.Beats(best) {
							best, found = h, true
						}
					}
				}
			}
		}
	}
	return best, nil
}

// MustEvaluate is Evaluate for fixtures; it panics on error.
func MustEvaluate(cards []deck.Card) Hand {
	h, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return h
}

// rankGroup is a set of same-rank cards within a five-card hand.
type rankGroup struct {
	rank  deck.Rank
	cards []deck.Card
}

// score ranks exactly five cards.
func score(cards [5]deck.Card) Hand {
	byRank := make(map[deck.Rank][]deck.Card, 5)
	for _, c := range cards {
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	groups := make([]rankGroup, 0, len(byRank))
	for r, cs := range byRank {
		groups = append(groups, rankGroup{rank: r, cards: cs})
	}
	// Larger groups first, then higher rank.
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].cards) != len(groups[j].cards) {
			return len(groups[i].cards) > len(groups[j].cards)
		}
		return groups[i].rank > groups[j].rank
	})

	ordered := make([]deck.Card, 0, 5)
	ranks := make([]deck.Rank, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g.cards...)
		ranks = append(ranks, g.rank)
	}

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}
	high, straight := straightHigh(ranks)
	if straight && high == deck.Five {
		// Wheel: the ace plays low.
		ordered = append(ordered[1:], ordered[0])
	}

	h := Hand{}
	copy(h.Cards[:], ordered)

	switch {
	case straight && flush && high == deck.Ace:
		h.Category, h.Tiebreak = RoyalFlush, []deck.Rank{high}
	case straight && flush:
		h.Category, h.Tiebreak = StraightFlush, []deck.Rank{high}
	case len(groups[0].cards) == 4:
		h.Category, h.Tiebreak = FourOfAKind, ranks
	case len(groups[0].cards) == 3 && len(groups[1].cards) == 2:
		h.Category, h.Tiebreak = FullHouse, ranks
	case flush:
		h.Category, h.Tiebreak = Flush, ranks
	case straight:
		h.Category, h.Tiebreak = Straight, []deck.Rank{high}
	case len(groups[0].cards) == 3:
		h.Category, h.Tiebreak = ThreeOfAKind, ranks
	case len(groups[0].cards) == 2 && len(groups[1].cards) == 2:
		h.Category, h.Tiebreak = TwoPair, ranks
	case len(groups[0].cards) == 2:
		h.Category, h.Tiebreak = OnePair, ranks
	default:
		h.Category, h.Tiebreak = HighCard, ranks
	}
	return h
}

// straightHigh reports the high card of a straight given five distinct ranks
// sorted descending. A-5-4-3-2 is a five-high straight.
func straightHigh(ranks []deck.Rank) (deck.Rank, bool) {
	if len(ranks) != 5 {
		return 0, false
	}
	if ranks[0]-ranks[4] == 4 {
		return ranks[0], true
	}
	if ranks[0] == deck.Ace && ranks[1] == deck.Five && ranks[4] == deck.Two {
		return deck.Five, true
	}
	return 0, false
}
